package model

// ExerciseRules is the immutable rule table for the exercise pipeline.
// Stages receive it by value and never modify it, so a single table can
// drive any number of concurrent runs.
type ExerciseRules struct {
	RequiredFields             []string          // structural presence is checked batch-wide
	ValidLevels                []string          // whitelist for the level enum
	DefaultLevel               string            // coercion target for unknown levels
	ValidCategories            []string          // whitelist for the category enum
	DefaultCategory            string            // coercion target for unknown categories
	TextFields                 []string          // fields the cleaner trims and case-folds
	MuscleSynonyms             map[string]string // muscle name standardization
	LevelScores                map[string]int    // level -> difficulty score
	NoEquipment                []string          // equipment values meaning "no equipment"
	PushIndicators             []string          // name substrings classified as push
	PullIndicators             []string          // name substrings classified as pull
	MovementFallbackCategories []string          // categories usable as movement type
}

// DefaultExerciseRules returns the rule table for the ExerciseDB schema.
func DefaultExerciseRules() ExerciseRules {
	return ExerciseRules{
		RequiredFields: []string{"name", "id", "category", "equipment", "primaryMuscles"},
		ValidLevels:    []string{"beginner", "intermediate", "expert"},
		DefaultLevel:   "intermediate",
		ValidCategories: []string{
			"cardio", "olympic weightlifting", "plyometrics",
			"powerlifting", "strength", "stretching", "strongman",
		},
		DefaultCategory: "strength",
		TextFields:      []string{"name", "equipment", "force", "mechanic", "category"},
		MuscleSynonyms: map[string]string{
			"abs":   "abdominals",
			"quads": "quadriceps",
			"lats":  "lats",
			"traps": "trapezius",
		},
		LevelScores: map[string]int{
			"beginner":     1,
			"intermediate": 2,
			"expert":       3,
		},
		NoEquipment:                []string{"body only", "none"},
		PushIndicators:             []string{"push", "press", "chest", "triceps", "shoulders"},
		PullIndicators:             []string{"pull", "row", "back", "biceps", "lats"},
		MovementFallbackCategories: []string{"cardio", "stretching"},
	}
}

// Range bounds one numeric member column, inclusive at both ends.
type Range struct {
	Min float64
	Max float64
}

// MemberRules is the immutable rule table for the gym-member pipeline.
type MemberRules struct {
	RequiredColumns  []string          // columns whose absence is a structural warning
	RangeOrder       []string          // deterministic range-check order
	Ranges           map[string]Range  // numeric validity ranges per column
	GenderMap        map[string]string // gender value canonicalization
	ExperienceMap    map[string]string // numeric experience codes -> names
	ExperienceScores map[string]int    // experience name -> score
	DuplicateKey     []string          // composite dedup key, present columns only
}

// DefaultMemberRules returns the rule table for the Kaggle gym-member schema.
func DefaultMemberRules() MemberRules {
	return MemberRules{
		RequiredColumns: []string{
			ColAge, ColGender, ColWeightKg, ColHeightM, ColBMI,
			ColMaxBPM, ColAvgBPM, ColWorkoutType, ColExperienceLevel,
		},
		RangeOrder: []string{ColAge, ColWeightKg, ColHeightM, ColBMI, ColMaxBPM, ColAvgBPM},
		Ranges: map[string]Range{
			ColAge:      {Min: 15, Max: 100},
			ColWeightKg: {Min: 30, Max: 200},
			ColHeightM:  {Min: 1.2, Max: 2.2},
			ColBMI:      {Min: 10, Max: 50},
			ColMaxBPM:   {Min: 40, Max: 220},
			ColAvgBPM:   {Min: 40, Max: 220},
		},
		GenderMap: map[string]string{
			"male":   "M",
			"m":      "M",
			"female": "F",
			"f":      "F",
		},
		ExperienceMap: map[string]string{
			"1": "beginner",
			"2": "intermediate",
			"3": "expert",
		},
		ExperienceScores: map[string]int{
			"beginner":     1,
			"intermediate": 2,
			"expert":       3,
		},
		DuplicateKey: []string{ColAge, ColGender, ColWeightKg, ColHeightM},
	}
}
