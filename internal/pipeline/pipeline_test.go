package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-data-pipeline/internal/model"
	"fitness-data-pipeline/pkg/utils"
)

func TestRunExercisesEndToEnd(t *testing.T) {
	input := writeFile(t, "exercisedb_raw_20250101_120000.json", `{
		"metadata": {"source": "ExerciseDB", "scraped_at": "2025-01-01T12:00:00Z"},
		"exercises": [
			{"name": " Push-Up ", "id": "Push_Up", "level": "beginner",
			 "category": "strength", "equipment": "Body Only",
			 "primaryMuscles": ["chest"], "secondaryMuscles": ["triceps", "abs"],
			 "instructions": ["get down", "lower", "push up"]},
			{"name": "Push-Up Copy", "id": "Push_Up", "level": "beginner",
			 "category": "strength", "equipment": "body only",
			 "primaryMuscles": ["chest"]},
			{"id": "No_Name", "level": "beginner"}
		]
	}`)

	result, err := RunExercises(context.Background(), Options{
		InputPath: input, Format: "json", OutDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.Total)
	assert.Equal(t, 2, result.Stats.Valid)
	assert.Equal(t, 1, result.Stats.Invalid)
	assert.Equal(t, 1, result.Stats.DuplicatesRemoved)

	var envelope struct {
		Metadata map[string]any         `json:"metadata"`
		Records  []model.ExerciseRecord `json:"records"`
	}
	require.NoError(t, utils.LoadJSON(result.Files["json"], &envelope))
	require.Len(t, envelope.Records, 1)

	rec := envelope.Records[0]
	assert.Equal(t, "push-up", *rec.Name)
	assert.Equal(t, "body only", *rec.Equipment)
	assert.Equal(t, []string{"abdominals", "chest", "triceps"}, rec.AllMuscles)
	assert.Equal(t, 3, rec.MuscleCount)
	assert.Equal(t, "compound", rec.ExerciseType)
	assert.Equal(t, 1, rec.DifficultyScore)
	assert.Equal(t, 3, rec.InstructionCount)
	assert.InDelta(t, 1.3, rec.ComplexityScore, 1e-9)
	assert.False(t, rec.RequiresEquipment)
	assert.Equal(t, "push", rec.MovementType)
	assert.Equal(t, "ExerciseDB", rec.DataSource)
	assert.Equal(t, "2025-01-01T12:00:00Z", rec.ScrapedAt)
	assert.NotEmpty(t, rec.ProcessedAt)
}

func TestRunMembersEndToEnd(t *testing.T) {
	input := writeFile(t, "gym_members_raw_20250101_120000.csv",
		"Age,Gender,Weight (kg),Height (m),Max_BPM,Avg_BPM,Session_Duration (hours),Calories_Burned,Workout_Type,Fat_Percentage,Workout_Frequency (days/week),Experience_Level,BMI\n"+
			"30,Male,80,1.8,220,160,0.5,100,Strength,13,3,2,24.8\n"+
			"30,male,80,1.8,220,150,1,300,Cardio,20,2,1,24.8\n"+
			"12,Female,60,1.6,180,140,1,250,Yoga,22,3,1,23.4\n")

	result, err := RunMembers(context.Background(), Options{
		InputPath: input, Format: "json", OutDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.Total)
	assert.Equal(t, 2, result.Stats.Valid)
	assert.Equal(t, 1, result.Stats.Invalid, "age 12 is out of range")
	assert.Equal(t, 1, result.Stats.DuplicatesRemoved, "same age/gender/weight/height after cleaning")

	var envelope struct {
		Records []model.MemberRecord `json:"records"`
	}
	require.NoError(t, utils.LoadJSON(result.Files["json"], &envelope))
	require.Len(t, envelope.Records, 1)

	rec := envelope.Records[0]
	assert.Equal(t, "M", rec.Gender)
	assert.Equal(t, "strength", rec.WorkoutType)
	assert.Equal(t, "intermediate", rec.ExperienceLevel)
	assert.Equal(t, "normal", rec.BMICategory)
	assert.Equal(t, "25-34", rec.AgeGroup)
	require.NotNil(t, rec.FitnessScore)
	assert.InDelta(t, 80, *rec.FitnessScore, 1e-9)
	require.NotNil(t, rec.HeartRateReserve)
	assert.InDelta(t, 60, *rec.HeartRateReserve, 1e-9)
	require.NotNil(t, rec.CalorieBurnRate)
	assert.InDelta(t, 200, *rec.CalorieBurnRate, 1e-9)
	assert.Equal(t, "athletic", rec.BodyFatCategory)
	require.NotNil(t, rec.ExperienceScore)
	assert.Equal(t, 2, *rec.ExperienceScore)
	assert.Equal(t, MemberDataSource, rec.DataSource)
}

func TestRunExercisesCancelledContext(t *testing.T) {
	input := writeFile(t, "exercisedb_raw_20250101_120000.json",
		`{"metadata": {}, "exercises": []}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunExercises(ctx, Options{InputPath: input, Format: "json", OutDir: t.TempDir()})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunExercisesMissingInput(t *testing.T) {
	_, err := RunExercises(context.Background(), Options{
		InputPath: "does-not-exist.json", Format: "json", OutDir: t.TempDir(),
	})
	assert.Error(t, err)
}
