package grocery

import "strings"

const (
	CategoryPantryStaples = "Pantry Staples"
	CategoryMeatSeafood   = "Meat & Seafood"
	CategoryDairyEggs     = "Dairy & Eggs"
	CategoryFreshProduce  = "Fresh Produce"
	CategoryFrozen        = "Frozen Foods"
	CategoryBakery        = "Bakery"
	CategoryDefault       = "Grocery Items"
)

// Categorize returns the shopping category for a canonical ingredient name.
// Rules are tried in order and the first match wins, so an ingredient on the
// pantry staples list never lands in another category.
func Categorize(name string) string {
	n := normalizeName(name)
	if n == "" {
		return CategoryDefault
	}
	for _, rule := range categoryRules {
		if rule.matches(n) {
			return rule.category
		}
	}
	return CategoryDefault
}

// IsPantryStaple reports whether name and a staple contain one another.
func IsPantryStaple(name string) bool {
	n := normalizeName(name)
	return n != "" && categoryRules[0].matches(n)
}

type categoryRule struct {
	category string
	keywords []string
	// reverse also matches when a keyword contains the name, so "oil" is a
	// staple because "olive oil" is.
	reverse bool
}

func (r categoryRule) matches(name string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(name, kw) {
			return true
		}
		if r.reverse && strings.Contains(kw, name) {
			return true
		}
	}
	return false
}

// Pantry staples must stay first.
var categoryRules = []categoryRule{
	{category: CategoryPantryStaples, keywords: pantryStaples, reverse: true},
	{category: CategoryMeatSeafood, keywords: []string{
		"chicken", "beef", "pork", "lamb", "fish", "salmon", "tuna",
		"bacon", "ham", "turkey", "prawns", "shrimp",
	}},
	{category: CategoryDairyEggs, keywords: []string{
		"milk", "cheese", "yogurt", "yoghurt", "cream", "butter", "eggs", "egg",
	}},
	{category: CategoryFreshProduce, keywords: []string{
		"onion", "garlic", "tomato", "carrot", "potato", "lettuce", "spinach",
		"broccoli", "pepper", "mushroom", "apple", "banana", "orange", "lemon",
		"lime", "avocado", "cucumber", "celery",
	}},
	{category: CategoryFrozen, keywords: []string{"frozen"}},
	{category: CategoryBakery, keywords: []string{"bread", "rolls", "bagel", "croissant", "muffin"}},
}

var pantryStaples = []string{
	"salt", "pepper", "black pepper", "white pepper", "sea salt", "kosher salt",
	"oil", "olive oil", "vegetable oil", "canola oil", "coconut oil", "avocado oil",
	"flour", "all-purpose flour", "plain flour", "self-raising flour", "wholemeal flour",
	"sugar", "white sugar", "brown sugar", "caster sugar", "icing sugar", "raw sugar",
	"baking powder", "baking soda", "bicarbonate of soda",
	"vanilla", "vanilla extract", "vanilla essence",
	"cinnamon", "ground cinnamon", "cinnamon powder",
	"paprika", "smoked paprika", "sweet paprika",
	"cumin", "ground cumin", "cumin seeds",
	"oregano", "dried oregano", "fresh oregano",
	"thyme", "dried thyme", "fresh thyme",
	"basil", "dried basil", "fresh basil",
	"garlic powder", "onion powder",
	"vinegar", "white vinegar", "apple cider vinegar", "balsamic vinegar",
	"soy sauce", "light soy sauce", "dark soy sauce",
	"stock", "chicken stock", "beef stock", "vegetable stock",
	"broth", "chicken broth", "beef broth", "vegetable broth",
	"honey", "maple syrup", "golden syrup",
	"mustard", "dijon mustard", "wholegrain mustard",
	"ketchup", "tomato sauce", "tomato ketchup",
	"mayonnaise", "mayo", "whole egg mayonnaise",
	"worcestershire sauce", "worcestershire",
	"tomato paste", "tomato puree",
	"curry powder", "garam masala", "turmeric",
	"chili powder", "cayenne pepper", "red pepper flakes",
	"sesame oil", "fish sauce", "oyster sauce",
	"cornstarch", "cornflour", "arrowroot",
	"yeast", "active dry yeast", "instant yeast",
}
