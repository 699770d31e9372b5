package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWorkouts_RecognizedTypesHaveThreeDays(t *testing.T) {
	for _, w := range WorkoutTypes() {
		t.Run(string(w), func(t *testing.T) {
			days := GetWorkouts(string(w))
			require.Len(t, days, 3)
			for _, d := range days {
				assert.NotEmpty(t, d.Exercises, d.Day)
			}
		})
	}
}

func TestGetWorkouts_FallsBackToHomeWorkout(t *testing.T) {
	want := GetWorkouts("home workout")
	for _, in := range []string{"", "unknown", "Gym Workout", "gym-workout"} {
		assert.Equal(t, want, GetWorkouts(in), "input %q", in)
	}
}

func TestGetWorkouts_GymLegsDay(t *testing.T) {
	days := GetWorkouts("gym workout")
	require.Len(t, days, 3)
	assert.Equal(t, "legs", days[1].Focus)
	assert.Len(t, days[1].Exercises, 4)
	assert.Equal(t, Exercise{Name: "Calf Raises Standing", Sets: "6x25"}, days[1].Exercises[3])
}

func TestGetWorkouts_PreservesOrder(t *testing.T) {
	for _, w := range WorkoutTypes() {
		days := GetWorkouts(string(w))
		got := []string{days[0].Day, days[1].Day, days[2].Day}
		assert.Equal(t, []string{"Monday/Thursday", "Tuesday/Friday", "Wednesday/Saturday"}, got)
	}

	home := GetWorkouts("home workout")
	assert.Equal(t, []Exercise{
		{Name: "Pullups - Normal", Sets: "5x8"},
		{Name: "Chinups", Sets: "5x8"},
		{Name: "Parallel Pullups", Sets: "5x8"},
	}, home[2].Exercises)
}

func TestGetWorkouts_ResultIsACopy(t *testing.T) {
	first := GetWorkouts("gym workout")
	first[0].Focus = "changed"
	first[0].Exercises[0].Sets = "1x1"
	first[1].Exercises = first[1].Exercises[:1]

	again := GetWorkouts("gym workout")
	assert.Equal(t, "push", again[0].Focus)
	assert.Equal(t, "5x10", again[0].Exercises[0].Sets)
	assert.Len(t, again[1].Exercises, 4)
}

func TestGetWorkouts_Idempotent(t *testing.T) {
	for _, in := range []string{"gym workout", "home workout", "?"} {
		assert.Equal(t, GetWorkouts(in), GetWorkouts(in))
	}
}

func TestResolveWorkoutType(t *testing.T) {
	got, ok := ResolveWorkoutType("gym workout")
	assert.True(t, ok)
	assert.Equal(t, GymWorkout, got)

	got, ok = ResolveWorkoutType("GYM WORKOUT")
	assert.False(t, ok)
	assert.Equal(t, DefaultWorkoutType, got)
}
