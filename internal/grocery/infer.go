package grocery

// Ingredients that are always on hand and never listed.
var excludedIngredients = []string{
	"water", "tap water", "cold water", "warm water", "hot water", "boiling water",
	"ice", "ice cubes",
}

// IsExcluded reports whether name contains a water or ice term.
func IsExcluded(name string) bool {
	return containsAny(normalizeName(name), excludedIngredients)
}

type unitRule struct {
	keywords []string
	unit     string
}

// Evaluated in order; spices sit between liquids and herbs so "pepper
// sauce" is a liquid and "ground pepper" has no unit.
var unitRules = []unitRule{
	{[]string{"wine", "broth", "stock", "oil", "vinegar", "milk", "cream", "sauce", "juice"}, "tbsp"},
	{[]string{
		"salt", "pepper", "paprika", "oregano", "cumin", "cinnamon", "thyme", "rosemary",
		"basil", "garlic powder", "onion powder", "chili powder", "curry powder",
		"turmeric", "cayenne", "smoked paprika",
	}, ""},
	{[]string{"parsley", "cilantro", "coriander", "dill", "sage", "mint"}, "tbsp"},
	{[]string{"garlic", "ginger", "chives", "green onion", "spring onion"}, "cloves"},
	{[]string{"flour", "sugar", "cornstarch", "baking powder", "baking soda"}, "cups"},
	{[]string{"chicken", "beef", "pork", "fish", "salmon", "steak"}, "g"},
}

// InferUnit returns the unit an ingredient is shopped in, judged by its
// name alone. Unmatched names have no unit.
func InferUnit(name string) string {
	n := normalizeName(name)
	for _, r := range unitRules {
		if containsAny(n, r.keywords) {
			return r.unit
		}
	}
	return ""
}

var basicSpices = []string{
	"salt", "pepper", "black pepper", "white pepper",
	"paprika", "smoked paprika", "oregano", "thyme", "basil",
	"cumin", "cinnamon", "garlic powder", "onion powder",
	"chili powder", "curry powder", "turmeric", "cayenne",
}

// ShowQuantity is false for spices most kitchens already stock.
func ShowQuantity(name string) bool {
	return !containsAny(normalizeName(name), basicSpices)
}
