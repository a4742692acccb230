package pipeline

import (
	"math"
	"slices"
	"strings"

	"fitness-data-pipeline/internal/model"
)

// EnrichExercises computes the derived exercise fields from validated,
// cleaned records:
//
//   - difficulty_score: 1-3 from the level;
//   - instruction_count and complexity_score = difficulty + count/10;
//   - requires_equipment: false for "body only", "none" and null;
//   - movement_type: push indicators are checked before pull ones, and
//     name substrings before the category fallback. The ordering is a
//     deliberate tie-break.
func EnrichExercises(batch model.ExerciseBatch, rules model.ExerciseRules) (model.ExerciseBatch, model.Delta) {
	out := make([]model.ExerciseRecord, len(batch.Records))
	copy(out, batch.Records)

	for i := range out {
		rec := &out[i]
		if rec.Level != nil {
			rec.DifficultyScore = rules.LevelScores[*rec.Level]
		}
		rec.InstructionCount = len(rec.Instructions)
		rec.ComplexityScore = float64(rec.DifficultyScore) + float64(rec.InstructionCount)/10

		rec.RequiresEquipment = rec.Equipment != nil && !slices.Contains(rules.NoEquipment, *rec.Equipment)
		rec.MovementType = classifyMovement(rec, rules)
	}

	batch.Records = out
	return batch, model.Delta{}
}

func classifyMovement(rec *model.ExerciseRecord, rules model.ExerciseRules) string {
	name := ""
	if rec.Name != nil {
		name = strings.ToLower(*rec.Name)
	}
	for _, word := range rules.PushIndicators {
		if strings.Contains(name, word) {
			return "push"
		}
	}
	for _, word := range rules.PullIndicators {
		if strings.Contains(name, word) {
			return "pull"
		}
	}
	if rec.Category != nil && slices.Contains(rules.MovementFallbackCategories, *rec.Category) {
		return *rec.Category
	}
	return "other"
}

// EnrichMembers computes the derived member fields. Every derivation
// requires its source columns to be present in the file and the
// per-record values to be non-nil; otherwise the field is skipped for
// that record. Partial schemas never cause an error.
func EnrichMembers(batch model.MemberBatch, rules model.MemberRules) (model.MemberBatch, model.Delta) {
	out := make([]model.MemberRecord, len(batch.Records))
	copy(out, batch.Records)

	for i := range out {
		rec := &out[i]

		if batch.HasColumn(model.ColBMI) && rec.BMI != nil {
			rec.BMICategory = bmiCategory(*rec.BMI)
		}
		if batch.HasColumn(model.ColAge) && rec.Age != nil {
			rec.AgeGroup = ageGroup(*rec.Age)
		}
		if batch.HasColumn(model.ColMaxBPM) && batch.HasColumn(model.ColCaloriesBurned) &&
			batch.HasColumn(model.ColWorkoutFrequency) &&
			rec.MaxBPM != nil && rec.CaloriesBurned != nil && rec.WorkoutFrequency != nil {
			score := round2(*rec.MaxBPM/220*20 + *rec.CaloriesBurned/100*30 + *rec.WorkoutFrequency*10)
			rec.FitnessScore = &score
		}
		if batch.HasColumn(model.ColMaxBPM) && batch.HasColumn(model.ColAvgBPM) &&
			rec.MaxBPM != nil && rec.AvgBPM != nil {
			hrr := *rec.MaxBPM - *rec.AvgBPM
			rec.HeartRateReserve = &hrr
		}
		if batch.HasColumn(model.ColCaloriesBurned) && batch.HasColumn(model.ColSessionDuration) &&
			rec.CaloriesBurned != nil && rec.SessionDuration != nil && *rec.SessionDuration != 0 {
			rate := round2(*rec.CaloriesBurned / *rec.SessionDuration)
			rec.CalorieBurnRate = &rate
		}
		if batch.HasColumn(model.ColFatPercentage) && batch.HasColumn(model.ColGender) &&
			rec.FatPercentage != nil && rec.Gender != "" {
			rec.BodyFatCategory = bodyFatCategory(*rec.FatPercentage, rec.Gender)
		}
		if batch.HasColumn(model.ColExperienceLevel) {
			if score, ok := rules.ExperienceScores[rec.ExperienceLevel]; ok {
				rec.ExperienceScore = &score
			}
		}
	}

	batch.Records = out
	return batch, model.Delta{}
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

func ageGroup(age float64) string {
	switch {
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	case age < 55:
		return "45-54"
	default:
		return "55+"
	}
}

// bodyFatCategory applies gender-conditioned thresholds; anything
// other than M uses the female thresholds.
func bodyFatCategory(bf float64, gender string) string {
	if gender == "M" {
		switch {
		case bf < 6:
			return "essential"
		case bf < 14:
			return "athletic"
		case bf < 18:
			return "fit"
		case bf < 25:
			return "average"
		default:
			return "obese"
		}
	}
	switch {
	case bf < 14:
		return "essential"
	case bf < 21:
		return "athletic"
	case bf < 25:
		return "fit"
	case bf < 32:
		return "average"
	default:
		return "obese"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
