package grocery

import "testing"

func TestCategorizeKeywordMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"milk", CategoryDairyEggs},
		{"chicken thighs", CategoryMeatSeafood},
		{"beef mince", CategoryMeatSeafood},
		{"cheddar cheese", CategoryDairyEggs},
		{"greek yoghurt", CategoryDairyEggs},
		{"carrots", CategoryFreshProduce},
		{"onions", CategoryFreshProduce},
		{"frozen peas", CategoryFrozen},
		{"sourdough bread", CategoryBakery},
		{"salt", CategoryPantryStaples},
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizePantryStaplesWin(t *testing.T) {
	tests := []string{
		"chicken stock",
		"tomato paste",
		"cayenne pepper",
		"olive oil",
		"fish sauce",
		"oil",
	}
	for _, input := range tests {
		got := Categorize(input)
		if got != CategoryPantryStaples {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, CategoryPantryStaples)
		}
	}
}

func TestCategorizeEveryStapleIsPantry(t *testing.T) {
	for _, staple := range pantryStaples {
		if got := Categorize(staple); got != CategoryPantryStaples {
			t.Errorf("Categorize(%q) = %q, want %q", staple, got, CategoryPantryStaples)
		}
		if !IsPantryStaple(staple) {
			t.Errorf("IsPantryStaple(%q) = false", staple)
		}
	}
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"MILK", CategoryDairyEggs},
		{"Chicken Breast", CategoryMeatSeafood},
		{"Frozen Berries", CategoryFrozen},
		{"  Salt  ", CategoryPantryStaples},
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeEmptyString(t *testing.T) {
	got := Categorize("")
	if got != CategoryDefault {
		t.Errorf("Categorize(%q) = %q, want %q", "", got, CategoryDefault)
	}
}

func TestCategorizeUnknownItem(t *testing.T) {
	tests := []string{
		"widget",
		"xyz123",
		"rice noodles",
	}
	for _, input := range tests {
		got := Categorize(input)
		if got != CategoryDefault {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, CategoryDefault)
		}
	}
}
