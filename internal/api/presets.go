package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/worldgen/internal/preset"
)

// PresetHandlers contains all HTTP handlers for preset operations
type PresetHandlers struct {
	presetManager *preset.Manager
	terrain       *Handler
}

// NewPresetHandlers creates a new preset handlers instance. Renders go
// through terrainHandler so they share its limits.
func NewPresetHandlers(presetManager *preset.Manager, terrainHandler *Handler) *PresetHandlers {
	return &PresetHandlers{
		presetManager: presetManager,
		terrain:       terrainHandler,
	}
}

// RegisterRoutes registers all preset routes
func (h *PresetHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Get("/{name}", h.Get)
		r.Delete("/{name}", h.Delete)
		r.Get("/{name}/terrain.png", h.Render)
	})
}

func (h *PresetHandlers) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.presetManager.List(r.Context())
	if err != nil {
		renderError(w, r, statusFor(err), "failed to list presets", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"presets": presets,
		"count":   len(presets),
	})
}

// Save creates or replaces a preset. A missing config saves the defaults.
func (h *PresetHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var req preset.SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	cfg := h.terrain.settings.Defaults
	if req.Config != nil {
		cfg = *req.Config
	}
	if err := checkDimensions(cfg, h.terrain.settings.MaxDimension); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	saved, err := h.presetManager.Save(r.Context(), preset.Preset{
		Name:        req.Name,
		Description: req.Description,
		Config:      cfg,
	})
	if err != nil {
		log.Error("Failed to save preset", "error", err, "name", req.Name)
		renderError(w, r, statusFor(err), err.Error(), err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, saved)
}

func (h *PresetHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.presetManager.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		renderError(w, r, statusFor(err), err.Error(), err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, p)
}

func (h *PresetHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.presetManager.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		renderError(w, r, statusFor(err), err.Error(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Render draws a stored preset; query parameters override its fields.
func (h *PresetHandlers) Render(w http.ResponseWriter, r *http.Request) {
	p, err := h.presetManager.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		renderError(w, r, statusFor(err), err.Error(), err)
		return
	}

	cfg, err := configFromQuery(p.Config, r.URL.Query())
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	h.terrain.renderPNG(w, r, cfg)
}
