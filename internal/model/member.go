package model

// Canonical gym-member column names as produced by the loader's header
// normalization. All stages address columns through these constants.
const (
	ColAge              = "age"
	ColGender           = "gender"
	ColWeightKg         = "weight_kg"
	ColHeightM          = "height_m"
	ColMaxBPM           = "max_bpm"
	ColAvgBPM           = "avg_bpm"
	ColRestingBPM       = "resting_bpm"
	ColSessionDuration  = "session_duration_hours"
	ColCaloriesBurned   = "calories_burned"
	ColWorkoutType      = "workout_type"
	ColFatPercentage    = "fat_percentage"
	ColWaterIntake      = "water_intake_liters"
	ColWorkoutFrequency = "workout_frequency_days_per_week"
	ColExperienceLevel  = "experience_level"
	ColBMI              = "bmi"
)

// MemberRecord is a single gym-member entry from the Kaggle dataset.
// Numeric fields are pointers: nil means the cell was empty or not
// parseable. Categorical fields use "" for an absent value.
type MemberRecord struct {
	Age                 *float64 `json:"age,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	WeightKg            *float64 `json:"weight_kg,omitempty"`
	HeightM             *float64 `json:"height_m,omitempty"`
	MaxBPM              *float64 `json:"max_bpm,omitempty"`
	AvgBPM              *float64 `json:"avg_bpm,omitempty"`
	RestingBPM          *float64 `json:"resting_bpm,omitempty"`
	SessionDuration     *float64 `json:"session_duration_hours,omitempty"`
	CaloriesBurned      *float64 `json:"calories_burned,omitempty"`
	WorkoutType         string   `json:"workout_type,omitempty"`
	FatPercentage       *float64 `json:"fat_percentage,omitempty"`
	WaterIntakeLiters   *float64 `json:"water_intake_liters,omitempty"`
	WorkoutFrequency    *float64 `json:"workout_frequency_days_per_week,omitempty"`
	ExperienceLevel     string   `json:"experience_level,omitempty"`
	BMI                 *float64 `json:"bmi,omitempty"`

	// Derived fields. Each is only computed when its source columns are
	// present in the input schema, so all of them are optional.
	BMICategory      string   `json:"bmi_category,omitempty"`
	AgeGroup         string   `json:"age_group,omitempty"`
	FitnessScore     *float64 `json:"fitness_score,omitempty"`
	HeartRateReserve *float64 `json:"heart_rate_reserve,omitempty"`
	CalorieBurnRate  *float64 `json:"calorie_burn_rate,omitempty"`
	BodyFatCategory  string   `json:"body_fat_category,omitempty"`
	ExperienceScore  *int     `json:"experience_score,omitempty"`

	// Provenance, stamped by the annotator.
	DataSource  string `json:"data_source,omitempty"`
	ProcessedAt string `json:"processed_at,omitempty"`
}

// MemberBatch is an ordered collection of member records plus the set
// of canonical columns the CSV header actually supplied. Range checks,
// cleaning and deduplication consult Columns so that a column missing
// from the whole file is a structural warning, not a per-record error.
type MemberBatch struct {
	Records []MemberRecord
	Columns map[string]bool
}

// HasColumn reports whether the source file carried the given column.
func (b MemberBatch) HasColumn(col string) bool {
	return b.Columns[col]
}
