package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/terrain"
	"github.com/VoidMesh/worldgen/internal/testutil"
)

func TestObservePass(t *testing.T) {
	m := New("test")

	m.ObservePass(100, 20*time.Millisecond, nil)
	m.ObservePass(50, 10*time.Millisecond, nil)
	m.ObservePass(0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, promtest.ToFloat64(m.passes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.passes.WithLabelValues("error")))
	assert.Equal(t, 150.0, promtest.ToFloat64(m.cells))
}

func TestGeneratorReportsStages(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	m := New("test")
	cfg := terrain.DefaultGenerationConfig()
	cfg.Width, cfg.Height, cfg.Octaves = 8, 8, 2

	_, err := terrain.NewGenerator(terrain.WithObserver(m)).Generate(&cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, promtest.CollectAndCount(m.stageDuration))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.passes.WithLabelValues("ok")))
	assert.Equal(t, 64.0, promtest.ToFloat64(m.cells))
}

func TestMiddleware(t *testing.T) {
	m := New("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{name}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") == "missing" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	})

	tests := []struct {
		path   string
		status int
	}{
		{path: "/items/a", status: http.StatusOK},
		{path: "/items/b", status: http.StatusOK},
		{path: "/items/missing", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code, tt.path)
	}

	assert.Equal(t, 2, promtest.CollectAndCount(m.reqDuration), "one series per pattern and status")
	assert.Equal(t, 1.0, promtest.ToFloat64(m.reqErrors.WithLabelValues("GET", "/items/{name}", "404")))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.reqInflight))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New("test")
	m.ObservePass(10, time.Millisecond, nil)

	var passes uint64 = 3
	m.WatchCounter("test_preview_snapshots_total", "Snapshots published.", func() float64 { return float64(passes) })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_generation_passes_total{result="ok"} 1`)
	assert.Contains(t, string(body), "test_preview_snapshots_total 3")
	assert.Contains(t, string(body), "go_goroutines")
}
