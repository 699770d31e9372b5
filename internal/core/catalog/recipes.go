package catalog

// DietType 飲食類型
type DietType string

const (
	Eggetarian    DietType = "eggetarian"
	Vegetarian    DietType = "vegetarian"
	NonVegetarian DietType = "non-vegetarian"

	// DefaultDietType 無法辨識時的預設飲食類型
	DefaultDietType = Vegetarian
)

var dietTypes = []DietType{Eggetarian, Vegetarian, NonVegetarian}

var recipes = map[DietType]RecipeData{
	Eggetarian: {
		Meals: []Meal{
			{Meal: "Breakfast", FoodItems: "50g oats (in water) + 4 whole boiled eggs", Calories: 502, Protein: 32, Carbs: 34, Fat: 25},
			{Meal: "Lunch", FoodItems: "120g paneer + 2 chapatis + 1 cup dal + 1 cup sabzi", Calories: 840, Protein: 41, Carbs: 74, Fat: 41},
			{Meal: "Pre-Workout", FoodItems: "2 medium bananas", Calories: 210, Protein: 2, Carbs: 54, Fat: 0.6},
			{Meal: "Dinner", FoodItems: "5 whole eggs + 2 chapatis + 1 cup sabzi (no potato/rice)", Calories: 710, Protein: 41, Carbs: 48, Fat: 37},
		},
		Summary: Summary{
			Calories: "~2260 kcal",
			Protein:  "~116g",
			Carbs:    "~210g",
			Fat:      "~103g",
			Goal:     "Muscle maintenance / lean gain",
		},
	},
	Vegetarian: {
		Meals: []Meal{
			{Meal: "Breakfast", FoodItems: "50g oats (in water) + 120g cooked soya", Calories: 360, Protein: 23, Carbs: 42, Fat: 12},
			{Meal: "Lunch", FoodItems: "120g paneer + 2 chapati + dal + sabzi", Calories: 840, Protein: 41, Carbs: 74, Fat: 41},
			{Meal: "Pre-Workout", FoodItems: "2 medium bananas", Calories: 210, Protein: 2, Carbs: 54, Fat: 0.6},
			{Meal: "Dinner", FoodItems: "120g cooked soya + 2 chapati + sabzi (no rice/aloo)", Calories: 490, Protein: 26, Carbs: 56, Fat: 19},
		},
		Summary: Summary{
			Calories: "~1900 kcal",
			Protein:  "~92g",
			Carbs:    "~226g",
			Fat:      "~72g",
			Goal:     "Fat loss / lean muscle maintenance",
		},
	},
	NonVegetarian: {
		Meals: []Meal{
			{Meal: "Breakfast", FoodItems: "50g oats (in water) + 4 boiled eggs", Calories: 502, Protein: 32, Carbs: 34, Fat: 25},
			{Meal: "Lunch (Option A)", FoodItems: "Ghar ka khana + 120g paneer", Calories: 840, Protein: 41, Carbs: 74, Fat: 41},
			{Meal: "Lunch (Option B)", FoodItems: "Ghar ka khana + 120g chicken", Calories: 700, Protein: 52, Carbs: 68, Fat: 28},
			{Meal: "Pre-Workout", FoodItems: "2 bananas", Calories: 210, Protein: 2, Carbs: 54, Fat: 0.6},
			{Meal: "Dinner (Option A)", FoodItems: "Ghar ka khana + 5 eggs (no rice/aloo)", Calories: 710, Protein: 41, Carbs: 48, Fat: 37},
			{Meal: "Dinner (Option B)", FoodItems: "Ghar ka khana + 120g chicken", Calories: 620, Protein: 50, Carbs: 46, Fat: 25},
		},
		Summary: Summary{
			Calories: "2000-2260 kcal",
			Protein:  "115-135g",
			Carbs:    "~200-210g",
			Fat:      "~80-100g",
			Goal:     "Lean muscle gain or maintenance",
		},
	},
}

// ResolveDietType 解析飲食類型（大小寫敏感），無法辨識時回傳預設值與 false
func ResolveDietType(s string) (DietType, bool) {
	if _, ok := recipes[DietType(s)]; ok {
		return DietType(s), true
	}
	return DefaultDietType, false
}

// DietTypes 回傳所有可辨識的飲食類型
func DietTypes() []DietType {
	out := make([]DietType, len(dietTypes))
	copy(out, dietTypes)
	return out
}

// Recipes 回傳該飲食類型的飲食計畫副本
func (d DietType) Recipes() RecipeData {
	data, ok := recipes[d]
	if !ok {
		data = recipes[DefaultDietType]
	}
	return data.clone()
}

// GetRecipes 依飲食類型取得一日飲食計畫，未知類型回傳 vegetarian
func GetRecipes(dietType string) RecipeData {
	d, _ := ResolveDietType(dietType)
	return d.Recipes()
}
