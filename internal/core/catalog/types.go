package catalog

// Meal 單一餐次
type Meal struct {
	Meal      string  `json:"meal"`      // 餐次名稱，例如 Breakfast、Lunch (Option A)
	FoodItems string  `json:"foodItems"` // 食物內容描述
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
}

// Summary 每日飲食摘要（人工撰寫的範圍文字，不由餐次加總）
type Summary struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Goal     string `json:"goal"`
}

// RecipeData 一日飲食計畫
type RecipeData struct {
	Meals   []Meal  `json:"meals"` // 依用餐順序排列
	Summary Summary `json:"summary"`
}

// Exercise 單一動作
type Exercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"` // 組數x次數，例如 5x10
}

// WorkoutDay 訓練日
type WorkoutDay struct {
	Day       string     `json:"day"`   // 可能代表多天，例如 Monday/Thursday
	Focus     string     `json:"focus"` // 訓練部位
	Exercises []Exercise `json:"exercises"`
}

func (r RecipeData) clone() RecipeData {
	meals := make([]Meal, len(r.Meals))
	copy(meals, r.Meals)
	return RecipeData{Meals: meals, Summary: r.Summary}
}

func cloneDays(days []WorkoutDay) []WorkoutDay {
	out := make([]WorkoutDay, len(days))
	for i, d := range days {
		exercises := make([]Exercise, len(d.Exercises))
		copy(exercises, d.Exercises)
		out[i] = WorkoutDay{Day: d.Day, Focus: d.Focus, Exercises: exercises}
	}
	return out
}
