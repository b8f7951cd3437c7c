package grocery

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/flexidiet/internal/model"
)

func amt(v float64) *float64 { return &v }

type stubLookup struct {
	names map[string]model.GenericName
	fail  map[string]bool
	calls atomic.Int32
}

func (s *stubLookup) LookupAliases(ctx context.Context, name string) (*model.GenericName, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.fail[name] {
		return nil, errors.New("catalog unavailable")
	}
	g, ok := s.names[name]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func findItem(t *testing.T, cats model.Categories, category, name string) model.ConsolidatedItem {
	t.Helper()
	for _, item := range cats[category] {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("item %q not found in %q: %+v", name, category, cats)
	return model.ConsolidatedItem{}
}

func TestConsolidateSaltAndChicken(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "A", Ingredients: []model.Ingredient{
			{Name: "salt", Amount: amt(1), Unit: "tsp"},
			{Name: "chicken breast", Amount: amt(500), Unit: "g"},
		}},
		{Name: "B", Ingredients: []model.Ingredient{
			{Name: "salt", Amount: amt(2), Unit: "tsp"},
		}},
	}

	cats, err := NewConsolidator(nil, slog.Default()).Consolidate(context.Background(), recipes)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	require.Len(t, cats[CategoryPantryStaples], 1)
	salt := cats[CategoryPantryStaples][0]
	assert.Equal(t, "salt", salt.Name)
	assert.False(t, salt.ShowQuantity)
	assert.Empty(t, salt.Quantity)
	assert.Empty(t, salt.Unit)
	assert.Equal(t, []string{"A", "B"}, salt.SourceRecipes)
	assert.False(t, salt.Checked)

	require.Len(t, cats[CategoryMeatSeafood], 1)
	chicken := cats[CategoryMeatSeafood][0]
	assert.Equal(t, "chicken breast", chicken.Name)
	assert.Equal(t, "g", chicken.Unit)
	assert.Equal(t, "500", chicken.Quantity)
	assert.True(t, chicken.ShowQuantity)
	assert.Equal(t, []string{"A"}, chicken.SourceRecipes)
}

func TestConsolidateMergesSynonyms(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "Soup", Ingredients: []model.Ingredient{{Name: "onion", Amount: amt(1)}}},
		{Name: "Stew", Ingredients: []model.Ingredient{{Name: "onions", Amount: amt(2)}}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)

	onions := findItem(t, cats, CategoryFreshProduce, "onions")
	assert.Equal(t, "3", onions.Quantity)
	assert.ElementsMatch(t, []string{"Soup", "Stew"}, onions.SourceRecipes)
}

func TestConsolidateExcludesWater(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "Bread", Ingredients: []model.Ingredient{
			{Name: "cold water", Amount: amt(300), Unit: "ml"},
			{Name: "Ice Cubes", Amount: amt(4)},
			{Name: "yeast", Amount: amt(1)},
		}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)
	assert.Equal(t, 1, Stats(cats).Total)
	for _, items := range cats {
		for _, item := range items {
			assert.NotContains(t, item.Name, "water")
		}
	}
}

func TestConsolidateDefaultsMissingAmountToOne(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "A", Ingredients: []model.Ingredient{{Name: "carrots"}}},
		{Name: "B", Ingredients: []model.Ingredient{{Name: "carrots", Amount: amt(0)}}},
		{Name: "C", Ingredients: []model.Ingredient{{Name: "carrots", Amount: amt(2)}}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)
	assert.Equal(t, "4", findItem(t, cats, CategoryFreshProduce, "carrots").Quantity)
}

func TestConsolidatePromotesKilograms(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "Tacos", Ingredients: []model.Ingredient{{Name: "ground beef", Amount: amt(500), Unit: "lb"}}},
		{Name: "Lasagne", Ingredients: []model.Ingredient{{Name: "Ground Beef", Amount: amt(700), Unit: "g"}}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)

	mince := findItem(t, cats, CategoryMeatSeafood, "beef mince")
	assert.Equal(t, "1.2", mince.Quantity)
	assert.Equal(t, "kg", mince.Unit)
	assert.Equal(t, []string{"Tacos", "Lasagne"}, mince.SourceRecipes)
}

func TestConsolidateKeepsSubGramTotals(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "A", Ingredients: []model.Ingredient{{Name: "salmon fillet", Amount: amt(0.4), Unit: "kg"}}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)

	salmon := findItem(t, cats, CategoryMeatSeafood, "salmon fillet")
	assert.Equal(t, "0.4", salmon.Quantity)
	assert.Equal(t, "g", salmon.Unit)
	assert.True(t, salmon.ShowQuantity)
}

func TestConsolidateFractions(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "Pancakes", Ingredients: []model.Ingredient{{Name: "flour", Amount: amt(0.5), Unit: "cups"}}},
		{Name: "Gravy", Ingredients: []model.Ingredient{{Name: "flour", Amount: amt(0.25)}}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)

	flour := findItem(t, cats, CategoryPantryStaples, "flour")
	assert.Equal(t, "3/4", flour.Quantity)
	assert.Equal(t, "cups", flour.Unit)
}

func TestConsolidateSkipsEmptyRecipesAndNames(t *testing.T) {
	t.Parallel()

	recipes := []model.Recipe{
		{Name: "Empty"},
		{Name: "Blank", Ingredients: []model.Ingredient{{Name: "  ", Amount: amt(1)}}},
		{Name: "Real", Ingredients: []model.Ingredient{{Name: "lemon", Amount: amt(1)}}},
	}

	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), recipes)
	require.NoError(t, err)
	assert.Equal(t, 1, Stats(cats).Total)
	assert.Equal(t, []string{"Real"}, SourceRecipes(cats))
}

func TestConsolidateUsesCatalogAliases(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{
		names: map[string]model.GenericName{
			"rocket":     {Name: "rocket", Aliases: []string{"arugula"}},
			"lamb mince": {Name: "lamb mince"},
		},
		fail: map[string]bool{"cilantro": true},
	}
	recipes := []model.Recipe{
		{Name: "Salad", Ingredients: []model.Ingredient{
			{Name: "rocket", Amount: amt(1)},
			{Name: "cilantro", Amount: amt(2)},
			{Name: "lamb mince", Amount: amt(400)},
		}},
		{Name: "Wrap", Ingredients: []model.Ingredient{{Name: "rocket", Amount: amt(1)}}},
	}

	cats, err := NewConsolidator(lookup, nil, WithConcurrency(2)).Consolidate(context.Background(), recipes)
	require.NoError(t, err)

	rocket := findItem(t, cats, CategoryDefault, "rocket (AKA arugula)")
	assert.Equal(t, "2", rocket.Quantity)
	// a failed lookup falls back to the dictionary
	findItem(t, cats, CategoryDefault, "coriander")
	// a catalog hit without aliases is ignored
	findItem(t, cats, CategoryMeatSeafood, "lamb mince")
	// one lookup per distinct name
	assert.Equal(t, int32(3), lookup.calls.Load())
}

func TestConsolidateCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recipes := []model.Recipe{{Name: "A", Ingredients: []model.Ingredient{{Name: "rocket"}}}}
	_, err := NewConsolidator(&stubLookup{}, nil).Consolidate(ctx, recipes)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsolidateCategoryExclusive(t *testing.T) {
	t.Parallel()

	var ingredients []model.Ingredient
	for _, n := range []string{"salt", "chicken stock", "milk", "tomato", "frozen peas", "bagel", "pasta", "olive oil", "beef"} {
		ingredients = append(ingredients, model.Ingredient{Name: n, Amount: amt(1)})
	}
	cats, err := NewConsolidator(nil, nil).Consolidate(context.Background(), []model.Recipe{{Name: "All", Ingredients: ingredients}})
	require.NoError(t, err)

	seen := make(map[string]string)
	for cat, items := range cats {
		for _, item := range items {
			prev, dup := seen[item.Name]
			assert.False(t, dup, "%q in both %q and %q", item.Name, prev, cat)
			seen[item.Name] = cat
		}
	}
	assert.Len(t, seen, len(ingredients))
}

func TestNewList(t *testing.T) {
	t.Parallel()

	c := NewConsolidator(nil, nil)
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	_, err := c.NewList(context.Background(), "sam@example.com", nil, now)
	assert.ErrorIs(t, err, ErrNoRecipes)

	list, err := c.NewList(context.Background(), "sam@example.com", []model.Recipe{
		{Name: "A", Ingredients: []model.Ingredient{{Name: "milk", Amount: amt(2)}}},
		{Name: "B"},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", list.OwnerEmail)
	assert.Equal(t, "2026-10-11", list.WeekStartDate)
	assert.Equal(t, 2, list.TotalRecipes)
	assert.Equal(t, now, list.GeneratedDate)
	assert.Len(t, list.Categories[CategoryDairyEggs], 1)
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2026, 10, 11, 23, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-11", WeekStart(sunday))
	assert.Equal(t, "2026-10-11", WeekStart(saturday))
}
