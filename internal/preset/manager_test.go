package preset

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/testutil"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	t.Cleanup(cleanup)
	return NewManager(testutil.SetupTestDB(t))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "island"},
		{name: "digits and separators", input: "map_2-b"},
		{name: "max length", input: strings.Repeat("a", 64)},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 65), wantErr: true},
		{name: "upper case", input: "Island", wantErr: true},
		{name: "space", input: "my map", wantErr: true},
		{name: "path", input: "../etc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPresetName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndGet(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	cfg := terrain.DefaultGenerationConfig()
	cfg.Seed = 99
	cfg.Falloff = terrain.FalloffCircular

	saved, err := m.Save(ctx, Preset{Name: "atoll", Description: "ring", Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "atoll", saved.Name)
	assert.Equal(t, cfg, saved.Config)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := m.Get(ctx, "atoll")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveRejects(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	badConfig := terrain.DefaultGenerationConfig()
	badConfig.Width = 0

	tests := []struct {
		name   string
		preset Preset
		target error
	}{
		{name: "bad name", preset: Preset{Name: "Bad Name", Config: terrain.DefaultGenerationConfig()}, target: ErrInvalidPresetName},
		{name: "bad config", preset: Preset{Name: "flat", Config: badConfig}, target: terrain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Save(ctx, tt.preset)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetMissing(t *testing.T) {
	m := setupManager(t)

	_, err := m.Get(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestDelete(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	_, err := m.Save(ctx, Preset{Name: "island", Config: terrain.DefaultGenerationConfig()})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "island"))
	assert.ErrorIs(t, m.Delete(ctx, "island"), ErrPresetNotFound)

	_, err = m.Get(ctx, "island")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestSeedDefaults(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.SeedDefaults(ctx))
	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(DefaultPresets()))
	assert.Equal(t, "atoll", list[0].Name)

	require.NoError(t, m.Delete(ctx, "atoll"))
	require.NoError(t, m.SeedDefaults(ctx))
	list, err = m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(DefaultPresets())-1, "seeding skips a populated store")
}

func TestYAMLRoundTrip(t *testing.T) {
	src := setupManager(t)
	ctx := context.Background()
	require.NoError(t, src.SeedDefaults(ctx))

	var buf bytes.Buffer
	require.NoError(t, src.ExportYAML(ctx, &buf))
	assert.Contains(t, buf.String(), "presets:")
	assert.Contains(t, buf.String(), "falloff: circular")
	assert.NotContains(t, buf.String(), "created_at")

	dst := setupManager(t)
	n, err := dst.ImportYAML(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultPresets()), n)

	want, err := src.List(ctx)
	require.NoError(t, err)
	got, err := dst.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Config, got[i].Config)
	}
}

func TestImportYAMLIsAllOrNothing(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	doc := `
presets:
  - name: good
    config:
      width: 64
      height: 64
      octaves: 4
      frequency: 0.3
      lacunarity: 2.5
      persistence: 0.6
      domain: {x_min: 0, x_max: 1, y_min: 0, y_max: 1}
  - name: bad
    config:
      width: 64
      height: 64
      octaves: 0
      domain: {x_min: 0, x_max: 1, y_min: 0, y_max: 1}
`
	_, err := m.ImportYAML(ctx, strings.NewReader(doc))
	assert.ErrorIs(t, err, terrain.ErrInvalidConfig)

	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportYAMLRejectsUnknownFields(t *testing.T) {
	m := setupManager(t)

	_, err := m.ImportYAML(context.Background(), strings.NewReader("presets:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err)
}

func TestImportYAMLEmpty(t *testing.T) {
	m := setupManager(t)

	n, err := m.ImportYAML(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, n)
}
