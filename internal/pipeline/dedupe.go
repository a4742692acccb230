package pipeline

import (
	"strings"

	"fitness-data-pipeline/internal/model"
	"fitness-data-pipeline/pkg/utils"
)

// DedupeExercises removes duplicate exercises in two passes: first
// collapsing records sharing an id, then collapsing the remainder
// sharing a name. Each pass keeps the first occurrence in batch order.
// Keep-first is the verified historical behavior; a record removed by
// the id pass is never also counted by the name pass.
func DedupeExercises(batch model.ExerciseBatch) (model.ExerciseBatch, model.Delta) {
	initial := len(batch.Records)

	byID := make(map[string]bool)
	pass1 := make([]model.ExerciseRecord, 0, initial)
	for _, rec := range batch.Records {
		if rec.ID != nil && byID[*rec.ID] {
			continue
		}
		if rec.ID != nil {
			byID[*rec.ID] = true
		}
		pass1 = append(pass1, rec)
	}

	byName := make(map[string]bool)
	pass2 := make([]model.ExerciseRecord, 0, len(pass1))
	for _, rec := range pass1 {
		if rec.Name != nil && byName[*rec.Name] {
			continue
		}
		if rec.Name != nil {
			byName[*rec.Name] = true
		}
		pass2 = append(pass2, rec)
	}

	batch.Records = pass2
	return batch, model.Delta{DuplicatesRemoved: initial - len(pass2)}
}

// DedupeMembers removes duplicates on the composite of whichever of
// age, gender, weight and height columns the file supplies, keeping
// the first occurrence. With none of the key columns present the batch
// passes through unchanged.
func DedupeMembers(batch model.MemberBatch, rules model.MemberRules) (model.MemberBatch, model.Delta) {
	keyCols := make([]string, 0, len(rules.DuplicateKey))
	for _, col := range rules.DuplicateKey {
		if batch.HasColumn(col) {
			keyCols = append(keyCols, col)
		}
	}
	if len(keyCols) == 0 {
		return batch, model.Delta{}
	}

	initial := len(batch.Records)
	seen := make(map[string]bool)
	out := make([]model.MemberRecord, 0, initial)
	for _, rec := range batch.Records {
		key := memberKey(rec, keyCols)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}

	batch.Records = out
	return batch, model.Delta{DuplicatesRemoved: initial - len(out)}
}

func memberKey(rec model.MemberRecord, cols []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		if col == model.ColGender {
			parts[i] = rec.Gender
			continue
		}
		if v := memberNumericValue(rec, col); v != nil {
			parts[i] = utils.FormatFloat(*v)
		}
	}
	return strings.Join(parts, "|")
}
