package grocery

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/units"
)

var ErrNoRecipes = errors.New("no recipes to generate a list from")

const defaultLookupConcurrency = 8

// Consolidator folds recipe ingredients into a categorized grocery list.
type Consolidator struct {
	lookup      AliasLookup
	concurrency int
	logger      *slog.Logger
}

type Option func(*Consolidator)

// WithConcurrency bounds the number of catalog lookups in flight.
func WithConcurrency(n int) Option {
	return func(c *Consolidator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewConsolidator returns a Consolidator. A nil lookup uses the static
// naming tables only.
func NewConsolidator(lookup AliasLookup, logger *slog.Logger, opts ...Option) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Consolidator{
		lookup:      lookup,
		concurrency: defaultLookupConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type lineItem struct {
	recipe string
	name   string
	amount *float64
	unit   string
}

type accumulator struct {
	generic model.GenericName
	total   float64
	unit    string
	sources []string
}

// Consolidate merges the ingredients of recipes by generic name.
func (c *Consolidator) Consolidate(ctx context.Context, recipes []model.Recipe) (model.Categories, error) {
	lines := c.flatten(recipes)

	generics, err := c.resolveNames(ctx, lines)
	if err != nil {
		return nil, err
	}

	acc := make(map[string]*accumulator)
	var order []string
	for _, line := range lines {
		g := generics[line.name]
		key := normalizeName(g.Name)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{generic: g, unit: line.unit}
			acc[key] = a
			order = append(order, key)
		}

		amount := 1.0
		if line.amount != nil && *line.amount != 0 {
			amount = *line.amount
		}
		a.total += amount

		if line.recipe != "" && !slices.Contains(a.sources, line.recipe) {
			a.sources = append(a.sources, line.recipe)
		}
	}

	categories := make(model.Categories)
	for _, key := range order {
		a := acc[key]
		category := Categorize(a.generic.Name)
		categories[category] = append(categories[category], buildItem(a))
	}
	return categories, nil
}

// NewList consolidates recipes into a list document owned by owner.
func (c *Consolidator) NewList(ctx context.Context, owner string, recipes []model.Recipe, now time.Time) (*model.GroceryList, error) {
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}
	categories, err := c.Consolidate(ctx, recipes)
	if err != nil {
		return nil, err
	}
	return &model.GroceryList{
		OwnerEmail:    owner,
		WeekStartDate: WeekStart(now),
		Categories:    categories,
		TotalRecipes:  len(recipes),
		GeneratedDate: now.UTC(),
	}, nil
}

func (c *Consolidator) flatten(recipes []model.Recipe) []lineItem {
	var lines []lineItem
	for _, r := range recipes {
		if len(r.Ingredients) == 0 {
			c.logger.Debug("recipe has no ingredients", "recipe", r.Name, "id", r.ID)
			continue
		}
		for _, ing := range r.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" || IsExcluded(name) {
				continue
			}
			lines = append(lines, lineItem{
				recipe: r.Name,
				name:   name,
				amount: ing.Amount,
				unit:   InferUnit(name),
			})
		}
	}
	return lines
}

// resolveNames maps every distinct raw name to its generic name. Catalog
// lookups run concurrently; a failed lookup falls back to the static tables.
func (c *Consolidator) resolveNames(ctx context.Context, lines []lineItem) (map[string]model.GenericName, error) {
	out := make(map[string]model.GenericName)
	var pending []string
	for _, l := range lines {
		if _, ok := out[l.name]; ok {
			continue
		}
		out[l.name] = StaticGenericName(l.name)
		pending = append(pending, l.name)
	}
	if c.lookup == nil || len(pending) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, name := range pending {
		g.Go(func() error {
			found, err := c.lookup.LookupAliases(gctx, name)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.Warn("alias lookup failed", "ingredient", name, "error", err)
				return nil
			}
			if found == nil || len(found.Aliases) == 0 {
				return nil
			}
			mu.Lock()
			out[name] = *found
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildItem(a *accumulator) model.ConsolidatedItem {
	item := model.ConsolidatedItem{
		Name:          DisplayName(a.generic),
		SourceRecipes: a.sources,
		ShowQuantity:  ShowQuantity(a.generic.Name),
	}
	if item.SourceRecipes == nil {
		item.SourceRecipes = []string{}
	}
	if item.ShowQuantity {
		amount, unit := units.ConvertToMetric(a.total, a.unit)
		item.Quantity = units.FormatDisplayAmount(amount, unit)
		item.Unit = unit
	}
	return item
}

// WeekStart returns the Sunday on or before t as yyyy-mm-dd.
func WeekStart(t time.Time) string {
	return t.AddDate(0, 0, -int(t.Weekday())).Format("2006-01-02")
}
