package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-data-pipeline/internal/model"
)

func TestEnrichExercisesScoresDifficultyAndComplexity(t *testing.T) {
	rec := exerciseRecord("Push-Up", "Push_Up")
	rec.Level = sptr("beginner")
	rec.Instructions = []string{"step one", "step two", "step three"}
	batch := model.ExerciseBatch{Records: []model.ExerciseRecord{rec}}

	out, _ := EnrichExercises(batch, model.DefaultExerciseRules())

	assert.Equal(t, 1, out.Records[0].DifficultyScore)
	assert.Equal(t, 3, out.Records[0].InstructionCount)
	assert.InDelta(t, 1.3, out.Records[0].ComplexityScore, 1e-9)
}

func TestEnrichExercisesRequiresEquipment(t *testing.T) {
	bodyOnly := exerciseRecord("Push-Up", "Push_Up")
	bodyOnly.Equipment = sptr("body only")
	none := exerciseRecord("Jumping Jack", "Jumping_Jack")
	none.Equipment = sptr("none")
	missing := exerciseRecord("Shadow Boxing", "Shadow_Boxing")
	missing.Equipment = nil
	barbell := exerciseRecord("Deadlift", "Deadlift")
	barbell.Equipment = sptr("barbell")
	batch := model.ExerciseBatch{Records: []model.ExerciseRecord{bodyOnly, none, missing, barbell}}

	out, _ := EnrichExercises(batch, model.DefaultExerciseRules())

	assert.False(t, out.Records[0].RequiresEquipment)
	assert.False(t, out.Records[1].RequiresEquipment)
	assert.False(t, out.Records[2].RequiresEquipment)
	assert.True(t, out.Records[3].RequiresEquipment)
}

func TestEnrichExercisesMovementType(t *testing.T) {
	cases := []struct {
		name     string
		category string
		want     string
	}{
		{"Bench Press", "strength", "push"},
		{"Barbell Row", "strength", "pull"},
		// "press" wins over "back": push indicators are checked first.
		{"Back Press", "strength", "push"},
		{"Jump Rope", "cardio", "cardio"},
		{"Hamstring Stretch", "stretching", "stretching"},
		{"Plank", "strength", "other"},
	}
	rules := model.DefaultExerciseRules()
	for _, tc := range cases {
		rec := exerciseRecord(tc.name, tc.name)
		rec.Category = sptr(tc.category)
		batch := model.ExerciseBatch{Records: []model.ExerciseRecord{rec}}

		out, _ := EnrichExercises(batch, rules)

		assert.Equal(t, tc.want, out.Records[0].MovementType, tc.name)
	}
}

func TestEnrichMembersDerivesCategories(t *testing.T) {
	batch := memberBatch([]string{model.ColBMI, model.ColAge},
		model.MemberRecord{BMI: fptr(17), Age: fptr(22)},
		model.MemberRecord{BMI: fptr(24.9), Age: fptr(34)},
		model.MemberRecord{BMI: fptr(25), Age: fptr(45)},
		model.MemberRecord{BMI: fptr(31), Age: fptr(60)},
	)

	out, _ := EnrichMembers(batch, model.DefaultMemberRules())

	assert.Equal(t, "underweight", out.Records[0].BMICategory)
	assert.Equal(t, "normal", out.Records[1].BMICategory)
	assert.Equal(t, "overweight", out.Records[2].BMICategory)
	assert.Equal(t, "obese", out.Records[3].BMICategory)

	assert.Equal(t, "18-24", out.Records[0].AgeGroup)
	assert.Equal(t, "25-34", out.Records[1].AgeGroup)
	assert.Equal(t, "45-54", out.Records[2].AgeGroup)
	assert.Equal(t, "55+", out.Records[3].AgeGroup)
}

func TestEnrichMembersFitnessMetrics(t *testing.T) {
	batch := memberBatch(
		[]string{
			model.ColMaxBPM, model.ColAvgBPM, model.ColCaloriesBurned,
			model.ColSessionDuration, model.ColWorkoutFrequency,
		},
		model.MemberRecord{
			MaxBPM:           fptr(220),
			AvgBPM:           fptr(160),
			CaloriesBurned:   fptr(100),
			SessionDuration:  fptr(0.5),
			WorkoutFrequency: fptr(3),
		},
	)

	out, _ := EnrichMembers(batch, model.DefaultMemberRules())
	rec := out.Records[0]

	// 220/220*20 + 100/100*30 + 3*10 = 80
	require.NotNil(t, rec.FitnessScore)
	assert.InDelta(t, 80, *rec.FitnessScore, 1e-9)
	require.NotNil(t, rec.HeartRateReserve)
	assert.InDelta(t, 60, *rec.HeartRateReserve, 1e-9)
	require.NotNil(t, rec.CalorieBurnRate)
	assert.InDelta(t, 200, *rec.CalorieBurnRate, 1e-9)
}

func TestEnrichMembersSkipsZeroSessionDuration(t *testing.T) {
	batch := memberBatch(
		[]string{model.ColCaloriesBurned, model.ColSessionDuration},
		model.MemberRecord{CaloriesBurned: fptr(100), SessionDuration: fptr(0)},
	)

	out, _ := EnrichMembers(batch, model.DefaultMemberRules())

	assert.Nil(t, out.Records[0].CalorieBurnRate)
}

func TestEnrichMembersBodyFatCategoryByGender(t *testing.T) {
	batch := memberBatch(
		[]string{model.ColFatPercentage, model.ColGender},
		model.MemberRecord{FatPercentage: fptr(13), Gender: "M"},
		model.MemberRecord{FatPercentage: fptr(13), Gender: "F"},
		model.MemberRecord{FatPercentage: fptr(26), Gender: "M"},
		model.MemberRecord{FatPercentage: fptr(26), Gender: "F"},
	)

	out, _ := EnrichMembers(batch, model.DefaultMemberRules())

	assert.Equal(t, "athletic", out.Records[0].BodyFatCategory)
	assert.Equal(t, "essential", out.Records[1].BodyFatCategory)
	assert.Equal(t, "obese", out.Records[2].BodyFatCategory)
	assert.Equal(t, "average", out.Records[3].BodyFatCategory)
}

func TestEnrichMembersExperienceScore(t *testing.T) {
	batch := memberBatch([]string{model.ColExperienceLevel},
		model.MemberRecord{ExperienceLevel: "beginner"},
		model.MemberRecord{ExperienceLevel: "expert"},
		model.MemberRecord{ExperienceLevel: "unknown"},
	)

	out, _ := EnrichMembers(batch, model.DefaultMemberRules())

	require.NotNil(t, out.Records[0].ExperienceScore)
	assert.Equal(t, 1, *out.Records[0].ExperienceScore)
	require.NotNil(t, out.Records[1].ExperienceScore)
	assert.Equal(t, 3, *out.Records[1].ExperienceScore)
	assert.Nil(t, out.Records[2].ExperienceScore)
}

func TestEnrichMembersSkipsDerivationsForAbsentColumns(t *testing.T) {
	// Values are set on the record but their columns are not in the
	// file, so nothing may be derived from them.
	batch := memberBatch([]string{model.ColAge},
		model.MemberRecord{Age: fptr(30), BMI: fptr(22), MaxBPM: fptr(180), AvgBPM: fptr(140)},
	)

	out, _ := EnrichMembers(batch, model.DefaultMemberRules())
	rec := out.Records[0]

	assert.Equal(t, "25-34", rec.AgeGroup)
	assert.Empty(t, rec.BMICategory)
	assert.Nil(t, rec.HeartRateReserve)
	assert.Nil(t, rec.FitnessScore)
}
