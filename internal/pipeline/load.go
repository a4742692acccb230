package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/model"
	"fitness-data-pipeline/pkg/utils"
)

// rawExerciseFile is the envelope of a raw ExerciseDB dump:
// {"metadata": {...}, "exercises": [...]}.
type rawExerciseFile struct {
	Metadata  model.Metadata         `json:"metadata"`
	Exercises []model.ExerciseRecord `json:"exercises"`
}

// LoadExercises reads a raw ExerciseDB JSON file into a batch. The
// file's metadata block is attached to the batch for propagation into
// the export.
func LoadExercises(path string) (model.ExerciseBatch, model.Delta, error) {
	var raw rawExerciseFile
	if err := utils.LoadJSON(path, &raw); err != nil {
		return model.ExerciseBatch{}, model.Delta{}, fmt.Errorf("load exercises: %w", err)
	}
	if raw.Metadata == nil {
		raw.Metadata = model.Metadata{}
	}

	logger.Info("loaded raw exercises", "path", path, "records", len(raw.Exercises))
	batch := model.ExerciseBatch{Records: raw.Exercises, Metadata: raw.Metadata}
	return batch, model.Delta{Total: len(raw.Exercises)}, nil
}

// columnAliases maps normalized CSV headers to canonical column names.
// The Kaggle export writes units in parentheses ("Weight (kg)"); later
// exports of this pipeline use the canonical names directly, and both
// must load.
var columnAliases = map[string]string{
	"age":                             model.ColAge,
	"gender":                          model.ColGender,
	"weight_(kg)":                     model.ColWeightKg,
	"weight_kg":                       model.ColWeightKg,
	"height_(m)":                      model.ColHeightM,
	"height_m":                        model.ColHeightM,
	"max_bpm":                         model.ColMaxBPM,
	"avg_bpm":                         model.ColAvgBPM,
	"resting_bpm":                     model.ColRestingBPM,
	"session_duration_(hours)":        model.ColSessionDuration,
	"session_duration_hours":          model.ColSessionDuration,
	"calories_burned":                 model.ColCaloriesBurned,
	"workout_type":                    model.ColWorkoutType,
	"fat_percentage":                  model.ColFatPercentage,
	"body_fat_%":                      model.ColFatPercentage,
	"body_fat_percentage":             model.ColFatPercentage,
	"water_intake_(liters)":           model.ColWaterIntake,
	"water_intake_liters":             model.ColWaterIntake,
	"workout_frequency_(days/week)":   model.ColWorkoutFrequency,
	"workout_frequency_days_per_week": model.ColWorkoutFrequency,
	"experience_level":                model.ColExperienceLevel,
	"bmi":                             model.ColBMI,
}

// normalizeColumn lower-cases a header, replaces spaces with
// underscores and resolves it through the alias table. Unknown columns
// come back as "".
func normalizeColumn(header string) string {
	h := strings.TrimSpace(header)
	h = strings.ReplaceAll(h, `"`, "")
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "_")
	return columnAliases[h]
}

// LoadMembers reads a raw gym-members CSV file into a batch, recording
// which canonical columns the header supplied. Cells that do not parse
// as numbers load as nil, which the validator treats like any other
// missing value.
func LoadMembers(path string) (model.MemberBatch, model.Delta, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.MemberBatch{}, model.Delta{}, fmt.Errorf("load members: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return model.MemberBatch{}, model.Delta{}, fmt.Errorf("load members: read header: %w", err)
	}

	columns := make(map[string]bool)
	canonical := make([]string, len(header))
	for i, h := range header {
		col := normalizeColumn(h)
		canonical[i] = col
		if col == "" {
			logger.Debug("ignoring unknown column", "header", h)
			continue
		}
		columns[col] = true
	}

	batch := model.MemberBatch{Columns: columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.MemberBatch{}, model.Delta{}, fmt.Errorf("load members: read row: %w", err)
		}
		var rec model.MemberRecord
		for i, cell := range row {
			if i >= len(canonical) || canonical[i] == "" {
				continue
			}
			setMemberField(&rec, canonical[i], cell)
		}
		batch.Records = append(batch.Records, rec)
	}

	logger.Info("loaded raw members", "path", path, "records", len(batch.Records))
	return batch, model.Delta{Total: len(batch.Records)}, nil
}

// setMemberField assigns one CSV cell to its typed field.
func setMemberField(rec *model.MemberRecord, col, cell string) {
	numeric := func() *float64 {
		if f, ok := utils.ParseFloat(cell); ok {
			return &f
		}
		return nil
	}
	switch col {
	case model.ColAge:
		rec.Age = numeric()
	case model.ColGender:
		rec.Gender = strings.TrimSpace(cell)
	case model.ColWeightKg:
		rec.WeightKg = numeric()
	case model.ColHeightM:
		rec.HeightM = numeric()
	case model.ColMaxBPM:
		rec.MaxBPM = numeric()
	case model.ColAvgBPM:
		rec.AvgBPM = numeric()
	case model.ColRestingBPM:
		rec.RestingBPM = numeric()
	case model.ColSessionDuration:
		rec.SessionDuration = numeric()
	case model.ColCaloriesBurned:
		rec.CaloriesBurned = numeric()
	case model.ColWorkoutType:
		rec.WorkoutType = strings.TrimSpace(cell)
	case model.ColFatPercentage:
		rec.FatPercentage = numeric()
	case model.ColWaterIntake:
		rec.WaterIntakeLiters = numeric()
	case model.ColWorkoutFrequency:
		rec.WorkoutFrequency = numeric()
	case model.ColExperienceLevel:
		rec.ExperienceLevel = strings.TrimSpace(cell)
	case model.ColBMI:
		rec.BMI = numeric()
	}
}
