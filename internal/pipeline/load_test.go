package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-data-pipeline/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadExercisesReadsEnvelope(t *testing.T) {
	path := writeFile(t, "exercisedb_raw_20250101_120000.json", `{
		"metadata": {"source": "ExerciseDB", "scraped_at": "2025-01-01T12:00:00Z"},
		"exercises": [
			{"name": "Bench Press", "id": "Bench_Press", "level": "beginner",
			 "category": "strength", "equipment": "barbell",
			 "primaryMuscles": ["chest"], "secondaryMuscles": ["triceps"],
			 "instructions": ["lie down", "press"]},
			{"name": "Plank", "id": "Plank", "level": null, "category": null,
			 "equipment": null, "primaryMuscles": ["abs"]}
		]
	}`)

	batch, delta, err := LoadExercises(path)

	require.NoError(t, err)
	require.Len(t, batch.Records, 2)
	assert.Equal(t, 2, delta.Total)
	assert.Equal(t, "ExerciseDB", batch.Metadata.String("source", ""))
	assert.Equal(t, "Bench Press", *batch.Records[0].Name)
	assert.Nil(t, batch.Records[1].Level)
}

func TestLoadExercisesMissingFile(t *testing.T) {
	_, _, err := LoadExercises(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadMembersNormalizesKaggleHeaders(t *testing.T) {
	path := writeFile(t, "gym_members_raw_20250101_120000.csv",
		"Age,Gender,Weight (kg),Height (m),Max_BPM,Session_Duration (hours),Workout_Frequency (days/week),BMI\n"+
			"30,Male,80.5,1.8,180,1.5,4,24.8\n")

	batch, delta, err := LoadMembers(path)

	require.NoError(t, err)
	assert.Equal(t, 1, delta.Total)
	for _, col := range []string{
		model.ColAge, model.ColGender, model.ColWeightKg, model.ColHeightM,
		model.ColMaxBPM, model.ColSessionDuration, model.ColWorkoutFrequency, model.ColBMI,
	} {
		assert.True(t, batch.HasColumn(col), col)
	}

	rec := batch.Records[0]
	require.NotNil(t, rec.WeightKg)
	assert.Equal(t, 80.5, *rec.WeightKg)
	assert.Equal(t, "Male", rec.Gender)
	require.NotNil(t, rec.WorkoutFrequency)
	assert.Equal(t, 4.0, *rec.WorkoutFrequency)
}

func TestLoadMembersAcceptsCanonicalHeaders(t *testing.T) {
	path := writeFile(t, "members.csv",
		"age,gender,weight_kg,height_m\n25,f,60,1.65\n")

	batch, _, err := LoadMembers(path)

	require.NoError(t, err)
	assert.True(t, batch.HasColumn(model.ColWeightKg))
	require.NotNil(t, batch.Records[0].HeightM)
	assert.Equal(t, 1.65, *batch.Records[0].HeightM)
}

func TestLoadMembersUnparseableCellBecomesNil(t *testing.T) {
	path := writeFile(t, "members.csv", "age,gender\nthirty,M\n")

	batch, _, err := LoadMembers(path)

	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	assert.Nil(t, batch.Records[0].Age)
	assert.Equal(t, "M", batch.Records[0].Gender)
}

func TestLoadMembersIgnoresUnknownColumns(t *testing.T) {
	path := writeFile(t, "members.csv", "age,favorite_color\n30,blue\n")

	batch, _, err := LoadMembers(path)

	require.NoError(t, err)
	assert.True(t, batch.HasColumn(model.ColAge))
	assert.False(t, batch.HasColumn("favorite_color"))
}
