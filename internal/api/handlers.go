package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/render"

	"github.com/VoidMesh/worldgen/internal/encoder"
	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/preview"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

// RenderSettings are the defaults and limits applied to render requests.
type RenderSettings struct {
	Defaults     terrain.GenerationConfig
	MaxDimension uint32
}

type Handler struct {
	generator *terrain.Generator
	encoder   *encoder.Encoder
	preview   *preview.Worker
	settings  RenderSettings
}

// NewHandler wires the terrain endpoints. worker may be nil when the
// background preview is disabled.
func NewHandler(generator *terrain.Generator, worker *preview.Worker, settings RenderSettings) *Handler {
	return &Handler{
		generator: generator,
		encoder:   encoder.NewEncoder(png.DefaultCompression),
		preview:   worker,
		settings:  settings,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "worldgen",
		"version":   "1.0.0",
		"preview":   h.preview != nil,
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) ListBiomes(w http.ResponseWriter, r *http.Request) {
	ladder := h.generator.Ladder()

	response := BiomesResponse{
		Rules:    make([]BiomeRule, 0, len(ladder.Thresholds)),
		Fallback: biomeRule(ladder.Fallback, "otherwise"),
	}
	for _, t := range ladder.Thresholds {
		response.Rules = append(response.Rules, biomeRule(t.Biome, t.String()))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func biomeRule(b terrain.Biome, rule string) BiomeRule {
	c := b.Color()
	return BiomeRule{
		Biome: b.String(),
		Color: c.Hex(),
		RGB:   c,
		Rule:  rule,
	}
}

// RenderTerrain renders the default config with query overrides.
func (h *Handler) RenderTerrain(w http.ResponseWriter, r *http.Request) {
	cfg, err := configFromQuery(h.settings.Defaults, r.URL.Query())
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	h.renderPNG(w, r, cfg)
}

func (h *Handler) renderPNG(w http.ResponseWriter, r *http.Request, cfg terrain.GenerationConfig) {
	if err := checkDimensions(cfg, h.settings.MaxDimension); err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	start := time.Now()
	raster, err := h.generator.Generate(&cfg)
	if err != nil {
		h.renderError(w, r, statusFor(err), err.Error(), err)
		return
	}
	data, err := h.encoder.Encode(raster)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to encode image", err)
		return
	}
	elapsed := time.Since(start)

	log.Debug("Terrain rendered", "seed", cfg.Seed, "width", cfg.Width, "height", cfg.Height, "duration", elapsed)
	writePNG(w, data, "", elapsed)
}

func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.latest(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, PreviewResponse{
		ID:          snap.ID.String(),
		Config:      snap.Config,
		Hash:        fmt.Sprintf("%016x", snap.Hash),
		ETag:        snap.ETag(),
		DurationMS:  float64(snap.Duration.Microseconds()) / 1000,
		GeneratedAt: snap.GeneratedAt,
		Stats:       statsByName(snap.Stats),
		Passes:      h.preview.Passes(),
	})
}

func (h *Handler) GetPreviewPNG(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.latest(w, r)
	if !ok {
		return
	}

	etag := snap.ETag()
	if matchETag(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", etag)
		w.Header().Del("Content-Type")
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writePNG(w, snap.PNG, etag, snap.Duration)
}

// SubmitPreview queues new parameters. The body is overlaid on the latest
// snapshot's config, or on the defaults before the first pass.
func (h *Handler) SubmitPreview(w http.ResponseWriter, r *http.Request) {
	if h.preview == nil {
		h.renderError(w, r, http.StatusServiceUnavailable, "preview worker is disabled", nil)
		return
	}

	cfg := h.settings.Defaults
	if snap, err := h.preview.Latest(); err == nil {
		cfg = snap.Config
	}

	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := checkDimensions(cfg, h.settings.MaxDimension); err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.preview.Submit(cfg); err != nil {
		h.renderError(w, r, statusFor(err), err.Error(), err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, SubmitResponse{Status: "queued", Config: cfg})
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) (*preview.Snapshot, bool) {
	if h.preview == nil {
		h.renderError(w, r, http.StatusServiceUnavailable, "preview worker is disabled", nil)
		return nil, false
	}
	snap, err := h.preview.Latest()
	if err != nil {
		h.renderError(w, r, statusFor(err), "no preview has been generated yet", nil)
		return nil, false
	}
	return snap, true
}

func writePNG(w http.ResponseWriter, data []byte, etag string, elapsed time.Duration) {
	header := w.Header()
	header.Set("Content-Type", encoder.ContentType)
	header.Set("Content-Length", strconv.Itoa(len(data)))
	header.Set("X-Generation-Duration", elapsed.String())
	if etag != "" {
		header.Set("ETag", etag)
		header.Set("Cache-Control", "no-cache")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Debug("Failed to write image", "error", err)
	}
}

func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, terrain.ErrInvalidConfig), errors.Is(err, preset.ErrInvalidPresetName):
		return http.StatusBadRequest
	case errors.Is(err, preset.ErrPresetNotFound), errors.Is(err, preview.ErrNoSnapshot):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	renderError(w, r, status, message, err)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
			errorResponse.Message = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
