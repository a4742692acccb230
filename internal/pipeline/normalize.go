package pipeline

import (
	"sort"
	"strings"

	"fitness-data-pipeline/internal/model"
)

// NormalizeMuscles standardizes muscle names through the synonym table
// and derives the combined muscle fields:
//
//   - all_muscles: set union of primary and secondary muscles;
//   - muscle_count: cardinality of that set;
//   - exercise_type: compound when more than two muscles are involved,
//     isolation otherwise (exactly two is isolation).
//
// The union is emitted sorted; its order carries no meaning.
func NormalizeMuscles(batch model.ExerciseBatch, rules model.ExerciseRules) (model.ExerciseBatch, model.Delta) {
	out := make([]model.ExerciseRecord, len(batch.Records))
	copy(out, batch.Records)

	for i := range out {
		out[i].PrimaryMuscles = normalizeMuscleList(out[i].PrimaryMuscles, rules.MuscleSynonyms)
		out[i].SecondaryMuscles = normalizeMuscleList(out[i].SecondaryMuscles, rules.MuscleSynonyms)

		seen := make(map[string]bool)
		all := make([]string, 0, len(out[i].PrimaryMuscles)+len(out[i].SecondaryMuscles))
		for _, m := range out[i].PrimaryMuscles {
			if !seen[m] {
				seen[m] = true
				all = append(all, m)
			}
		}
		for _, m := range out[i].SecondaryMuscles {
			if !seen[m] {
				seen[m] = true
				all = append(all, m)
			}
		}
		sort.Strings(all)

		out[i].AllMuscles = all
		out[i].MuscleCount = len(all)
		if out[i].MuscleCount > 2 {
			out[i].ExerciseType = "compound"
		} else {
			out[i].ExerciseType = "isolation"
		}
	}

	batch.Records = out
	return batch, model.Delta{}
}

// normalizeMuscleList lower-cases each muscle and resolves it through
// the synonym table; unmapped names pass through lower-cased.
func normalizeMuscleList(muscles []string, synonyms map[string]string) []string {
	out := make([]string, len(muscles))
	for i, m := range muscles {
		m = strings.ToLower(m)
		if mapped, ok := synonyms[m]; ok {
			m = mapped
		}
		out[i] = m
	}
	return out
}
