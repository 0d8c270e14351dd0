package api

import (
	"time"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BiomeRule is one rung of the classification ladder.
type BiomeRule struct {
	Biome string   `json:"biome"`
	Color string   `json:"color"`
	RGB   [3]uint8 `json:"rgb"`
	Rule  string   `json:"rule"`
}

// BiomesResponse describes the active ladder.
type BiomesResponse struct {
	Rules    []BiomeRule `json:"rules"`
	Fallback BiomeRule   `json:"fallback"`
}

// PreviewResponse is the metadata of the latest preview snapshot.
type PreviewResponse struct {
	ID          string                   `json:"id"`
	Config      terrain.GenerationConfig `json:"config"`
	Hash        string                   `json:"hash"`
	ETag        string                   `json:"etag"`
	DurationMS  float64                  `json:"duration_ms"`
	GeneratedAt time.Time                `json:"generated_at"`
	Stats       map[string]int           `json:"stats"`
	Passes      uint64                   `json:"passes"`
}

// SubmitResponse acknowledges a queued preview request.
type SubmitResponse struct {
	Status string                   `json:"status"`
	Config terrain.GenerationConfig `json:"config"`
}

func statsByName(stats terrain.Stats) map[string]int {
	out := make(map[string]int, len(stats))
	for b, n := range stats {
		out[b.String()] = n
	}
	return out
}
