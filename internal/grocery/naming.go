package grocery

import (
	"context"
	"strings"

	"github.com/dukerupert/flexidiet/internal/model"
)

// AliasLookup finds catalog aliases for an ingredient name. It returns nil
// when the catalog has no entry or the entry has no aliases.
type AliasLookup interface {
	LookupAliases(ctx context.Context, name string) (*model.GenericName, error)
}

type synonymGroup struct {
	contains []string
	exact    []string
	name     string
}

var synonymGroups = []synonymGroup{
	{contains: []string{"potato", "russet", "yukon", "red potato", "fingerling"}, name: "potatoes"},
	{contains: []string{"yellow onion", "white onion", "brown onion", "cooking onion"}, exact: []string{"onion", "onions"}, name: "onions"},
	{contains: []string{"roma tomato", "cherry tomato", "beef tomato", "vine tomato"}, name: "tomatoes"},
	{contains: []string{"red pepper", "green pepper", "yellow pepper", "orange pepper", "bell pepper"}, name: "capsicum"},
}

func (g synonymGroup) matches(name string) bool {
	for _, e := range g.exact {
		if name == e {
			return true
		}
	}
	return containsAny(name, g.contains)
}

var usToNZ = map[string]model.GenericName{
	"skirt steak":    {Name: "beef skirt", Aliases: []string{"minute steak"}},
	"flank steak":    {Name: "beef flank"},
	"chuck roast":    {Name: "blade roast"},
	"ground beef":    {Name: "beef mince"},
	"cilantro":       {Name: "coriander"},
	"arugula":        {Name: "rocket"},
	"eggplant":       {Name: "aubergine"},
	"zucchini":       {Name: "courgette"},
	"bell pepper":    {Name: "capsicum"},
	"green onions":   {Name: "spring onions"},
	"scallions":      {Name: "spring onions"},
	"ketchup":        {Name: "tomato sauce", Aliases: []string{"tomato ketchup"}},
	"tomato ketchup": {Name: "tomato sauce", Aliases: []string{"ketchup"}},
}

// StaticGenericName resolves name against the built-in synonym groups and
// the US to NZ dictionary, falling back to name itself.
func StaticGenericName(name string) model.GenericName {
	n := normalizeName(name)
	for _, g := range synonymGroups {
		if g.matches(n) {
			return model.GenericName{Name: g.name}
		}
	}
	if mapped, ok := usToNZ[n]; ok {
		return model.GenericName{Name: mapped.Name, Aliases: append([]string(nil), mapped.Aliases...)}
	}
	return model.GenericName{Name: strings.TrimSpace(name)}
}

// DisplayName renders a generic name with its aliases: "rocket (AKA arugula)".
func DisplayName(g model.GenericName) string {
	if len(g.Aliases) == 0 {
		return g.Name
	}
	return g.Name + " (AKA " + strings.Join(g.Aliases, " or ") + ")"
}
