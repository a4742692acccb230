package pipeline

import (
	"slices"

	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/model"
)

// ValidateExercises enforces the exercise schema rules:
//
//   - a required field absent from every record is a structural warning,
//     not a per-record error;
//   - records missing either identity field (name, id) are dropped;
//   - list fields are coerced to empty slices;
//   - unknown level/category values are coerced to the schema defaults,
//     keeping the record. Data retention is preferred over strictness
//     here on purpose.
func ValidateExercises(batch model.ExerciseBatch, rules model.ExerciseRules) (model.ExerciseBatch, model.Delta) {
	initial := len(batch.Records)

	for _, field := range rules.RequiredFields {
		if initial > 0 && !exerciseFieldPresent(batch.Records, field) {
			logger.Warn("required field missing from input", "field", field)
		}
	}

	out := make([]model.ExerciseRecord, 0, initial)
	for _, rec := range batch.Records {
		if rec.Name == nil || rec.ID == nil {
			continue
		}
		if rec.PrimaryMuscles == nil {
			rec.PrimaryMuscles = []string{}
		}
		if rec.SecondaryMuscles == nil {
			rec.SecondaryMuscles = []string{}
		}
		if rec.Instructions == nil {
			rec.Instructions = []string{}
		}
		if rec.Level == nil || !slices.Contains(rules.ValidLevels, *rec.Level) {
			level := rules.DefaultLevel
			rec.Level = &level
		}
		if rec.Category == nil || !slices.Contains(rules.ValidCategories, *rec.Category) {
			category := rules.DefaultCategory
			rec.Category = &category
		}
		out = append(out, rec)
	}

	batch.Records = out
	return batch, model.Delta{Valid: len(out), Invalid: initial - len(out)}
}

// exerciseFieldPresent reports whether any record carries a value for
// the named source field.
func exerciseFieldPresent(records []model.ExerciseRecord, field string) bool {
	for _, rec := range records {
		switch field {
		case "name":
			if rec.Name != nil {
				return true
			}
		case "id":
			if rec.ID != nil {
				return true
			}
		case "category":
			if rec.Category != nil {
				return true
			}
		case "equipment":
			if rec.Equipment != nil {
				return true
			}
		case "force":
			if rec.Force != nil {
				return true
			}
		case "mechanic":
			if rec.Mechanic != nil {
				return true
			}
		case "level":
			if rec.Level != nil {
				return true
			}
		case "primaryMuscles":
			if rec.PrimaryMuscles != nil {
				return true
			}
		}
	}
	return false
}

// ValidateMembers drops records whose value in any present range column
// is nil or out of range. Columns absent from the file are skipped
// (and warned about when required); there is no coercion for numeric
// fields.
func ValidateMembers(batch model.MemberBatch, rules model.MemberRules) (model.MemberBatch, model.Delta) {
	initial := len(batch.Records)

	for _, col := range rules.RequiredColumns {
		if !batch.HasColumn(col) {
			logger.Warn("required column missing from input", "column", col)
		}
	}

	out := make([]model.MemberRecord, 0, initial)
	for _, rec := range batch.Records {
		if memberInRange(batch, rec, rules) {
			out = append(out, rec)
		}
	}

	batch.Records = out
	return batch, model.Delta{Valid: len(out), Invalid: initial - len(out)}
}

func memberInRange(batch model.MemberBatch, rec model.MemberRecord, rules model.MemberRules) bool {
	for _, col := range rules.RangeOrder {
		if !batch.HasColumn(col) {
			continue
		}
		r := rules.Ranges[col]
		v := memberNumericValue(rec, col)
		if v == nil || *v < r.Min || *v > r.Max {
			return false
		}
	}
	return true
}

// memberNumericValue returns the numeric field behind a canonical
// column name, nil for categorical columns.
func memberNumericValue(rec model.MemberRecord, col string) *float64 {
	switch col {
	case model.ColAge:
		return rec.Age
	case model.ColWeightKg:
		return rec.WeightKg
	case model.ColHeightM:
		return rec.HeightM
	case model.ColBMI:
		return rec.BMI
	case model.ColMaxBPM:
		return rec.MaxBPM
	case model.ColAvgBPM:
		return rec.AvgBPM
	case model.ColRestingBPM:
		return rec.RestingBPM
	case model.ColSessionDuration:
		return rec.SessionDuration
	case model.ColCaloriesBurned:
		return rec.CaloriesBurned
	case model.ColFatPercentage:
		return rec.FatPercentage
	case model.ColWaterIntake:
		return rec.WaterIntakeLiters
	case model.ColWorkoutFrequency:
		return rec.WorkoutFrequency
	default:
		return nil
	}
}
