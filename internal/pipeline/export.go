package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/model"
	"fitness-data-pipeline/pkg/utils"
)

// ExportRequest selects the output formats and destination for a
// finalized batch. Format is one of json, csv, xlsx or both
// (both = json + csv).
type ExportRequest struct {
	Format string
	OutDir string
	Now    time.Time
}

// exportEnvelope is the JSON output shape: the input metadata
// augmented with processing stats, plus the processed records.
type exportEnvelope struct {
	Metadata model.Metadata `json:"metadata"`
	Records  any            `json:"records"`
}

// formats expands a format selector into concrete encodings.
func formats(selector string) ([]string, error) {
	switch strings.ToLower(selector) {
	case "", "both":
		return []string{"json", "csv"}, nil
	case "json", "csv", "xlsx":
		return []string{strings.ToLower(selector)}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", selector)
	}
}

// exportMetadata augments the source metadata with the run's stats and
// processing timestamp for the export envelope.
func exportMetadata(src model.Metadata, stats model.Stats, now time.Time, records int) model.Metadata {
	meta := src.Clone()
	meta["processing_stats"] = stats
	meta["processed_at"] = now.Format(time.RFC3339)
	meta["total_processed_records"] = records
	return meta
}

// ExportExercises writes the finalized exercise batch in the requested
// formats and returns format -> file path. List-valued fields are
// pipe-joined in tabular outputs; an empty list and an empty string
// both flatten to "".
func ExportExercises(batch model.ExerciseBatch, stats model.Stats, req ExportRequest) (map[string]string, error) {
	fmts, err := formats(req.Format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	meta := exportMetadata(batch.Metadata, stats, req.Now, len(batch.Records))
	files := make(map[string]string)
	for _, f := range fmts {
		path := filepath.Join(req.OutDir, utils.FilenameAt("exercises_processed", f, req.Now))
		switch f {
		case "json":
			err = utils.SaveJSON(path, exportEnvelope{Metadata: meta, Records: batch.Records})
		case "csv":
			err = writeCSV(path, exerciseHeader, exerciseRows(batch.Records))
		case "xlsx":
			err = writeXLSX(path, exerciseHeader, exerciseRows(batch.Records))
		}
		if err != nil {
			return nil, fmt.Errorf("export exercises as %s: %w", f, err)
		}
		logger.Info("exported exercises", "format", f, "path", path, "records", len(batch.Records))
		files[f] = path
	}
	return files, nil
}

// ExportMembers writes the finalized member batch in the requested
// formats and returns format -> file path.
func ExportMembers(batch model.MemberBatch, stats model.Stats, req ExportRequest) (map[string]string, error) {
	fmts, err := formats(req.Format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	meta := exportMetadata(model.Metadata{"source": MemberDataSource}, stats, req.Now, len(batch.Records))
	files := make(map[string]string)
	for _, f := range fmts {
		path := filepath.Join(req.OutDir, utils.FilenameAt("gym_members_processed", f, req.Now))
		switch f {
		case "json":
			err = utils.SaveJSON(path, exportEnvelope{Metadata: meta, Records: batch.Records})
		case "csv":
			err = writeCSV(path, memberHeader, memberRows(batch.Records))
		case "xlsx":
			err = writeXLSX(path, memberHeader, memberRows(batch.Records))
		}
		if err != nil {
			return nil, fmt.Errorf("export members as %s: %w", f, err)
		}
		logger.Info("exported members", "format", f, "path", path, "records", len(batch.Records))
		files[f] = path
	}
	return files, nil
}

var exerciseHeader = []string{
	"name", "id", "category", "equipment", "force", "mechanic", "level",
	"primaryMuscles", "secondaryMuscles", "instructions", "images",
	"all_muscles", "muscle_count", "exercise_type", "difficulty_score",
	"instruction_count", "complexity_score", "requires_equipment",
	"movement_type", "data_source", "scraped_at", "processed_at",
}

func exerciseRows(records []model.ExerciseRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strptr(r.Name), strptr(r.ID), strptr(r.Category), strptr(r.Equipment),
			strptr(r.Force), strptr(r.Mechanic), strptr(r.Level),
			strings.Join(r.PrimaryMuscles, "|"),
			strings.Join(r.SecondaryMuscles, "|"),
			strings.Join(r.Instructions, "|"),
			strings.Join(r.Images, "|"),
			strings.Join(r.AllMuscles, "|"),
			strconv.Itoa(r.MuscleCount),
			r.ExerciseType,
			strconv.Itoa(r.DifficultyScore),
			strconv.Itoa(r.InstructionCount),
			utils.FormatFloat(r.ComplexityScore),
			strconv.FormatBool(r.RequiresEquipment),
			r.MovementType,
			r.DataSource, r.ScrapedAt, r.ProcessedAt,
		}
	}
	return rows
}

var memberHeader = []string{
	"age", "gender", "weight_kg", "height_m", "max_bpm", "avg_bpm",
	"resting_bpm", "session_duration_hours", "calories_burned",
	"workout_type", "fat_percentage", "water_intake_liters",
	"workout_frequency_days_per_week", "experience_level", "bmi",
	"bmi_category", "age_group", "fitness_score", "heart_rate_reserve",
	"calorie_burn_rate", "body_fat_category", "experience_score",
	"data_source", "processed_at",
}

func memberRows(records []model.MemberRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			floatptr(r.Age), r.Gender, floatptr(r.WeightKg), floatptr(r.HeightM),
			floatptr(r.MaxBPM), floatptr(r.AvgBPM), floatptr(r.RestingBPM),
			floatptr(r.SessionDuration), floatptr(r.CaloriesBurned),
			r.WorkoutType, floatptr(r.FatPercentage), floatptr(r.WaterIntakeLiters),
			floatptr(r.WorkoutFrequency), r.ExperienceLevel, floatptr(r.BMI),
			r.BMICategory, r.AgeGroup, floatptr(r.FitnessScore),
			floatptr(r.HeartRateReserve), floatptr(r.CalorieBurnRate),
			r.BodyFatCategory, intptr(r.ExperienceScore),
			r.DataSource, r.ProcessedAt,
		}
	}
	return rows
}

func strptr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatptr(p *float64) string {
	if p == nil {
		return ""
	}
	return utils.FormatFloat(*p)
}

func intptr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
