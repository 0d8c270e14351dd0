package preset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/worldgen/internal/db"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

// Manager handles all preset operations
type Manager struct {
	db      *sql.DB
	queries *db.LoggingQueries
}

// NewManager creates a new preset manager
func NewManager(database *sql.DB) *Manager {
	return &Manager{
		db:      database,
		queries: db.NewLoggingQueries(database),
	}
}

// Save creates or replaces the preset called p.Name.
func (m *Manager) Save(ctx context.Context, p Preset) (*Preset, error) {
	log.Debug("Saving preset", "name", p.Name)

	if err := m.save(ctx, m.queries, p); err != nil {
		return nil, err
	}

	saved, err := m.Get(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	log.Info("Preset saved", "name", saved.Name, "seed", saved.Config.Seed)
	return saved, nil
}

func (m *Manager) save(ctx context.Context, q *db.LoggingQueries, p Preset) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}

	body, err := json.Marshal(p.Config)
	if err != nil {
		return fmt.Errorf("failed to encode preset config: %w", err)
	}

	err = q.UpsertPreset(ctx, db.UpsertPresetParams{
		Name:        p.Name,
		Description: p.Description,
		Config:      string(body),
	})
	if err != nil {
		return fmt.Errorf("failed to save preset %q: %w", p.Name, err)
	}
	return nil
}

// Get returns the preset called name.
func (m *Manager) Get(ctx context.Context, name string) (*Preset, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	row, err := m.queries.GetPreset(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %q: %w", name, err)
	}

	return fromRow(row)
}

// List returns every preset ordered by name.
func (m *Manager) List(ctx context.Context) ([]Preset, error) {
	rows, err := m.queries.ListPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	presets := make([]Preset, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}
	return presets, nil
}

// Delete removes the preset called name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	n, err := m.queries.DeletePreset(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	log.Info("Preset deleted", "name", name)
	return nil
}

// ImportYAML saves every preset in a Document read from r. Either all
// presets are stored or none are.
func (m *Manager) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to decode presets: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := m.queries.WithTx(tx)
	for _, p := range doc.Presets {
		if err := m.save(ctx, q, p); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit presets: %w", err)
	}

	log.Info("Presets imported", "count", len(doc.Presets))
	return len(doc.Presets), nil
}

// ExportYAML writes every stored preset to w as a Document.
func (m *Manager) ExportYAML(ctx context.Context, w io.Writer) error {
	presets, err := m.List(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Presets: presets}); err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return enc.Close()
}

func fromRow(row db.Preset) (*Preset, error) {
	p := &Preset{
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Config), &p.Config); err != nil {
		return nil, fmt.Errorf("preset %q has a corrupt config: %w", row.Name, err)
	}
	return p, nil
}

// DefaultPresets returns the presets seeded into an empty store.
func DefaultPresets() []Preset {
	island := terrain.DefaultGenerationConfig()

	circular := terrain.DefaultGenerationConfig()
	circular.Falloff = terrain.FalloffCircular

	perlin := terrain.DefaultGenerationConfig()
	perlin.Primitive = terrain.PrimitivePerlin
	perlin.Octaves = 6

	return []Preset{
		{Name: "island", Description: "Stock square-falloff island", Config: island},
		{Name: "atoll", Description: "Circular falloff", Config: circular},
		{Name: "perlin-island", Description: "Perlin base noise, six octaves", Config: perlin},
	}
}

// SeedDefaults stores DefaultPresets when the store is empty.
func (m *Manager) SeedDefaults(ctx context.Context) error {
	count, err := m.queries.CountPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to count presets: %w", err)
	}
	if count > 0 {
		log.Debug("Preset store already populated", "count", count)
		return nil
	}

	for _, p := range DefaultPresets() {
		if _, err := m.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
