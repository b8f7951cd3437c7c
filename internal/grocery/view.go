package grocery

import (
	"errors"
	"slices"
	"sort"

	"github.com/dukerupert/flexidiet/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")
)

// FilterByRecipes returns the part of a list contributed by the selected
// recipes. Each item keeps only selected sources; items and categories left
// empty are dropped. A nil selection returns a copy of the whole list. The
// input is never modified.
func FilterByRecipes(categories model.Categories, selected []string) model.Categories {
	out := make(model.Categories)
	if selected == nil {
		for cat, items := range categories {
			out[cat] = cloneItems(items)
		}
		return out
	}

	keep := make(map[string]bool, len(selected))
	for _, r := range selected {
		keep[r] = true
	}
	for cat, items := range categories {
		var filtered []model.ConsolidatedItem
		for _, item := range items {
			var sources []string
			for _, src := range item.SourceRecipes {
				if keep[src] {
					sources = append(sources, src)
				}
			}
			if len(sources) == 0 {
				continue
			}
			item.SourceRecipes = sources
			filtered = append(filtered, item)
		}
		if len(filtered) > 0 {
			out[cat] = filtered
		}
	}
	return out
}

// ToggleItem flips the checked state of the named item in place and returns
// the new state.
func ToggleItem(categories model.Categories, category, name string) (bool, error) {
	items, ok := categories[category]
	if !ok {
		return false, ErrCategoryNotFound
	}
	for i := range items {
		if items[i].Name == name {
			items[i].Checked = !items[i].Checked
			return items[i].Checked, nil
		}
	}
	return false, ErrItemNotFound
}

// ToggleCategory unchecks every item when all are checked, otherwise checks
// them all. It returns the state applied.
func ToggleCategory(categories model.Categories, category string) (bool, error) {
	items, ok := categories[category]
	if !ok {
		return false, ErrCategoryNotFound
	}
	allChecked := true
	for _, item := range items {
		if !item.Checked {
			allChecked = false
			break
		}
	}
	for i := range items {
		items[i].Checked = !allChecked
	}
	return !allChecked, nil
}

// Stats counts items and checked items across categories.
func Stats(categories model.Categories) model.ListStats {
	var s model.ListStats
	for _, items := range categories {
		for _, item := range items {
			s.Total++
			if item.Checked {
				s.Checked++
			}
		}
	}
	return s
}

// SourceRecipes returns the distinct recipe names that contributed to a list.
func SourceRecipes(categories model.Categories) []string {
	seen := make(map[string]bool)
	var out []string
	for _, items := range categories {
		for _, item := range items {
			for _, src := range item.SourceRecipes {
				if !seen[src] {
					seen[src] = true
					out = append(out, src)
				}
			}
		}
	}
	sort.Strings(out)
	return out
}

// OrderedCategories lists category names for display: pantry staples, then
// fresh produce, then the rest alphabetically.
func OrderedCategories(categories model.Categories) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	rank := func(name string) int {
		switch name {
		case CategoryPantryStaples:
			return 0
		case CategoryFreshProduce:
			return 1
		}
		return 2
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func cloneItems(items []model.ConsolidatedItem) []model.ConsolidatedItem {
	out := make([]model.ConsolidatedItem, len(items))
	for i, item := range items {
		item.SourceRecipes = slices.Clone(item.SourceRecipes)
		out[i] = item
	}
	return out
}
