// Package pipeline implements the batch record-transformation pipeline
// shared by the exercise and gym-member dataset processors. Both
// pipelines are the same linear shape over a different schema and rule
// table:
//
//	load -> validate -> clean -> (normalize) -> enrich -> dedupe ->
//	annotate -> export
//
// Every stage is a pure function from batch to batch plus a stats
// delta; the runners below compose them sequentially. A stage failure
// aborts the run with the cause attached, and there is no partial
// result on failure.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/model"
)

// Options configures one pipeline run.
type Options struct {
	InputPath string
	Format    string // json, csv, xlsx or both
	OutDir    string
}

// Result is the outcome of a completed run: the exported files by
// format and the accumulated audit counters.
type Result struct {
	Files map[string]string
	Stats model.Stats
}

// RunExercises executes the full exercise pipeline over one raw
// ExerciseDB file.
func RunExercises(ctx context.Context, opts Options) (Result, error) {
	log := logger.WithDataset("exercises")
	log.Info("starting pipeline", "input", opts.InputPath, "format", opts.Format)

	var stats model.Stats
	rules := model.DefaultExerciseRules()

	batch, d, err := LoadExercises(opts.InputPath)
	if err != nil {
		return Result{}, err
	}
	stats.Apply(d)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	batch, d = ValidateExercises(batch, rules)
	stats.Apply(d)
	log.Debug("validated", "valid", stats.Valid, "invalid", stats.Invalid)

	batch, d = CleanExerciseFields(batch, rules)
	stats.Apply(d)

	batch, d = NormalizeMuscles(batch, rules)
	stats.Apply(d)

	batch, d = EnrichExercises(batch, rules)
	stats.Apply(d)

	batch, d = DedupeExercises(batch)
	stats.Apply(d)
	log.Debug("deduplicated", "removed", stats.DuplicatesRemoved)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := time.Now()
	batch, d = AnnotateExercises(batch, now)
	stats.Apply(d)

	files, err := ExportExercises(batch, stats, ExportRequest{Format: opts.Format, OutDir: opts.OutDir, Now: now})
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	log.Info("pipeline complete",
		"total", stats.Total, "valid", stats.Valid, "invalid", stats.Invalid,
		"duplicates_removed", stats.DuplicatesRemoved, "fields_cleaned", stats.FieldsCleaned)
	return Result{Files: files, Stats: stats}, nil
}

// RunMembers executes the full gym-member pipeline over one raw
// Kaggle CSV file.
func RunMembers(ctx context.Context, opts Options) (Result, error) {
	log := logger.WithDataset("members")
	log.Info("starting pipeline", "input", opts.InputPath, "format", opts.Format)

	var stats model.Stats
	rules := model.DefaultMemberRules()

	batch, d, err := LoadMembers(opts.InputPath)
	if err != nil {
		return Result{}, err
	}
	stats.Apply(d)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	batch, d = ValidateMembers(batch, rules)
	stats.Apply(d)
	log.Debug("validated", "valid", stats.Valid, "invalid", stats.Invalid)

	batch, d = CleanMemberFields(batch, rules)
	stats.Apply(d)

	batch, d = EnrichMembers(batch, rules)
	stats.Apply(d)

	batch, d = DedupeMembers(batch, rules)
	stats.Apply(d)
	log.Debug("deduplicated", "removed", stats.DuplicatesRemoved)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := time.Now()
	batch, d = AnnotateMembers(batch, now)
	stats.Apply(d)

	files, err := ExportMembers(batch, stats, ExportRequest{Format: opts.Format, OutDir: opts.OutDir, Now: now})
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	log.Info("pipeline complete",
		"total", stats.Total, "valid", stats.Valid, "invalid", stats.Invalid,
		"duplicates_removed", stats.DuplicatesRemoved, "fields_cleaned", stats.FieldsCleaned)
	return Result{Files: files, Stats: stats}, nil
}
