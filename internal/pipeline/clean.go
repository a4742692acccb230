package pipeline

import (
	"strings"

	"fitness-data-pipeline/internal/model"
)

// CleanExerciseFields trims and lower-cases the textual exercise
// fields. Null values pass through unchanged. The fields_cleaned
// counter increments once per field kind that appears in the batch,
// not per record. Re-running the cleaner on its own output changes
// nothing.
func CleanExerciseFields(batch model.ExerciseBatch, rules model.ExerciseRules) (model.ExerciseBatch, model.Delta) {
	cleaned := 0
	out := make([]model.ExerciseRecord, len(batch.Records))
	copy(out, batch.Records)

	for _, field := range rules.TextFields {
		if !exerciseFieldPresent(out, field) {
			continue
		}
		for i := range out {
			if p := exerciseTextField(&out[i], field); p != nil && *p != nil {
				v := strings.ToLower(strings.TrimSpace(**p))
				*p = &v
			}
		}
		cleaned++
	}

	batch.Records = out
	return batch, model.Delta{FieldsCleaned: cleaned}
}

// exerciseTextField returns the address of the pointer field named by
// the cleaner's rule table.
func exerciseTextField(rec *model.ExerciseRecord, field string) **string {
	switch field {
	case "name":
		return &rec.Name
	case "equipment":
		return &rec.Equipment
	case "force":
		return &rec.Force
	case "mechanic":
		return &rec.Mechanic
	case "category":
		return &rec.Category
	default:
		return nil
	}
}

// CleanMemberFields canonicalizes the categorical member columns:
// gender to M/F, workout type to lower case, numeric experience codes
// to level names. Only columns present in the file are touched, and
// each touched column bumps fields_cleaned once.
func CleanMemberFields(batch model.MemberBatch, rules model.MemberRules) (model.MemberBatch, model.Delta) {
	cleaned := 0
	out := make([]model.MemberRecord, len(batch.Records))
	copy(out, batch.Records)

	if batch.HasColumn(model.ColGender) {
		for i := range out {
			g := strings.ToLower(strings.TrimSpace(out[i].Gender))
			if mapped, ok := rules.GenderMap[g]; ok {
				g = mapped
			}
			out[i].Gender = g
		}
		cleaned++
	}

	if batch.HasColumn(model.ColWorkoutType) {
		for i := range out {
			out[i].WorkoutType = strings.ToLower(strings.TrimSpace(out[i].WorkoutType))
		}
		cleaned++
	}

	if batch.HasColumn(model.ColExperienceLevel) {
		for i := range out {
			e := strings.ToLower(strings.TrimSpace(out[i].ExperienceLevel))
			if mapped, ok := rules.ExperienceMap[e]; ok {
				e = mapped
			}
			out[i].ExperienceLevel = e
		}
		cleaned++
	}

	batch.Records = out
	return batch, model.Delta{FieldsCleaned: cleaned}
}
