package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingQueries wraps the generated Queries struct to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// UpsertPreset with logging. The config body is not logged.
func (lq *LoggingQueries) UpsertPreset(ctx context.Context, arg UpsertPresetParams) error {
	start := time.Now()
	log.Debug("Executing UpsertPreset", "name", arg.Name, "config_bytes", len(arg.Config))

	err := lq.Queries.UpsertPreset(ctx, arg)
	lq.logQuery("UpsertPreset", start, err, arg.Name)
	return err
}

// GetPreset with logging
func (lq *LoggingQueries) GetPreset(ctx context.Context, name string) (Preset, error) {
	start := time.Now()
	log.Debug("Executing GetPreset", "name", name)

	result, err := lq.Queries.GetPreset(ctx, name)
	lq.logQuery("GetPreset", start, err, name)

	if err == nil {
		log.Debug("GetPreset result", "id", result.ID, "updated_at", result.UpdatedAt)
	}

	return result, err
}

// ListPresets with logging
func (lq *LoggingQueries) ListPresets(ctx context.Context) ([]Preset, error) {
	start := time.Now()
	log.Debug("Executing ListPresets")

	result, err := lq.Queries.ListPresets(ctx)
	lq.logQuery("ListPresets", start, err)

	if err == nil {
		log.Debug("ListPresets result", "preset_count", len(result))
	}

	return result, err
}

// DeletePreset with logging
func (lq *LoggingQueries) DeletePreset(ctx context.Context, name string) (int64, error) {
	start := time.Now()
	log.Debug("Executing DeletePreset", "name", name)

	result, err := lq.Queries.DeletePreset(ctx, name)
	lq.logQuery("DeletePreset", start, err, name)

	if err == nil {
		log.Debug("DeletePreset result", "rows_affected", result)
	}

	return result, err
}

// CountPresets with logging
func (lq *LoggingQueries) CountPresets(ctx context.Context) (int64, error) {
	start := time.Now()

	result, err := lq.Queries.CountPresets(ctx)
	lq.logQuery("CountPresets", start, err)
	return result, err
}
