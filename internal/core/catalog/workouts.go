package catalog

// WorkoutType 訓練類型
type WorkoutType string

const (
	GymWorkout  WorkoutType = "gym workout"
	HomeWorkout WorkoutType = "home workout"

	// DefaultWorkoutType 無法辨識時的預設訓練類型
	DefaultWorkoutType = HomeWorkout
)

var workoutTypes = []WorkoutType{GymWorkout, HomeWorkout}

var workouts = map[WorkoutType][]WorkoutDay{
	GymWorkout: {
		{
			Day:   "Monday/Thursday",
			Focus: "push",
			Exercises: []Exercise{
				{Name: "DB Incline Bench", Sets: "5x10"},
				{Name: "Machine Press", Sets: "5x15"},
				{Name: "Pec Dec", Sets: "5x15"},
				{Name: "Rope Pushdown", Sets: "5x20"},
			},
		},
		{
			Day:   "Tuesday/Friday",
			Focus: "legs",
			Exercises: []Exercise{
				{Name: "Squats", Sets: "4x10"},
				{Name: "Leg Extension", Sets: "5x10"},
				{Name: "Leg Curls", Sets: "5x10"},
				{Name: "Calf Raises Standing", Sets: "6x25"},
			},
		},
		{
			Day:   "Wednesday/Saturday",
			Focus: "back",
			Exercises: []Exercise{
				{Name: "Pulldown", Sets: "5x10"},
				{Name: "Rows", Sets: "5x15"},
				{Name: "Pullups", Sets: "5x7"},
				{Name: "Bicep DB Curl", Sets: "5x30"},
			},
		},
	},
	HomeWorkout: {
		{
			Day:   "Monday/Thursday",
			Focus: "push",
			Exercises: []Exercise{
				{Name: "Pushups - Normal", Sets: "5x15"},
				{Name: "Pushups - Close Grip", Sets: "5x15"},
				{Name: "Pushups - Incline", Sets: "5x15"},
			},
		},
		{
			Day:   "Tuesday/Friday",
			Focus: "legs",
			Exercises: []Exercise{
				{Name: "Squats - Normal", Sets: "5x15"},
				{Name: "Squats - Jumping", Sets: "5x15"},
				{Name: "Bulgarian Squats", Sets: "5x15"},
			},
		},
		{
			Day:   "Wednesday/Saturday",
			Focus: "back",
			Exercises: []Exercise{
				{Name: "Pullups - Normal", Sets: "5x8"},
				{Name: "Chinups", Sets: "5x8"},
				{Name: "Parallel Pullups", Sets: "5x8"},
			},
		},
	},
}

// ResolveWorkoutType 解析訓練類型（大小寫敏感），無法辨識時回傳預設值與 false
func ResolveWorkoutType(s string) (WorkoutType, bool) {
	if _, ok := workouts[WorkoutType(s)]; ok {
		return WorkoutType(s), true
	}
	return DefaultWorkoutType, false
}

// WorkoutTypes 回傳所有可辨識的訓練類型
func WorkoutTypes() []WorkoutType {
	out := make([]WorkoutType, len(workoutTypes))
	copy(out, workoutTypes)
	return out
}

// Days 回傳該訓練類型的訓練日副本
func (w WorkoutType) Days() []WorkoutDay {
	days, ok := workouts[w]
	if !ok {
		days = workouts[DefaultWorkoutType]
	}
	return cloneDays(days)
}

// GetWorkouts 依訓練類型取得訓練日，未知類型回傳 home workout
func GetWorkouts(workoutType string) []WorkoutDay {
	w, _ := ResolveWorkoutType(workoutType)
	return w.Days()
}
