package model

// ExerciseRecord is a single exercise from the ExerciseDB dataset.
// Source fields that may be legitimately null in the raw JSON are
// pointers; list fields default to empty slices after validation.
// Derived and provenance fields are populated by the pipeline stages.
type ExerciseRecord struct {
	Name             *string  `json:"name"`
	ID               *string  `json:"id"`
	Category         *string  `json:"category"`
	Equipment        *string  `json:"equipment"`
	Force            *string  `json:"force,omitempty"`
	Mechanic         *string  `json:"mechanic,omitempty"`
	Level            *string  `json:"level"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Images           []string `json:"images,omitempty"`

	// Derived fields.
	AllMuscles        []string `json:"all_muscles,omitempty"`
	MuscleCount       int      `json:"muscle_count"`
	ExerciseType      string   `json:"exercise_type,omitempty"`
	DifficultyScore   int      `json:"difficulty_score"`
	InstructionCount  int      `json:"instruction_count"`
	ComplexityScore   float64  `json:"complexity_score"`
	RequiresEquipment bool     `json:"requires_equipment"`
	MovementType      string   `json:"movement_type,omitempty"`

	// Provenance, stamped by the annotator.
	DataSource  string `json:"data_source,omitempty"`
	ScrapedAt   string `json:"scraped_at,omitempty"`
	ProcessedAt string `json:"processed_at,omitempty"`
}

// ExerciseBatch is an ordered collection of exercise records together
// with the provenance metadata of the raw file they were loaded from.
// Order only matters for the keep-first deduplication policy.
type ExerciseBatch struct {
	Records  []ExerciseRecord
	Metadata Metadata
}
