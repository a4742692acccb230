package pipeline

import (
	"time"

	"fitness-data-pipeline/internal/model"
)

// MemberDataSource is the fixed provenance label for the gym-member
// pipeline; CSV input carries no upstream metadata to propagate.
const MemberDataSource = "Kaggle - Gym Members Exercise Dataset"

// AnnotateExercises stamps per-record source lineage: the source name
// and fetch timestamp propagated from the input metadata (with
// defaults when absent) and the processing timestamp.
func AnnotateExercises(batch model.ExerciseBatch, now time.Time) (model.ExerciseBatch, model.Delta) {
	source := batch.Metadata.String("source", "ExerciseDB")
	scrapedAt := batch.Metadata.String("scraped_at", now.Format(time.RFC3339))
	processedAt := now.Format(time.RFC3339)

	out := make([]model.ExerciseRecord, len(batch.Records))
	copy(out, batch.Records)
	for i := range out {
		out[i].DataSource = source
		out[i].ScrapedAt = scrapedAt
		out[i].ProcessedAt = processedAt
	}

	batch.Records = out
	return batch, model.Delta{}
}

// AnnotateMembers stamps the fixed source label and the processing
// timestamp onto every record.
func AnnotateMembers(batch model.MemberBatch, now time.Time) (model.MemberBatch, model.Delta) {
	processedAt := now.Format(time.RFC3339)

	out := make([]model.MemberRecord, len(batch.Records))
	copy(out, batch.Records)
	for i := range out {
		out[i].DataSource = MemberDataSource
		out[i].ProcessedAt = processedAt
	}

	batch.Records = out
	return batch, model.Delta{}
}
