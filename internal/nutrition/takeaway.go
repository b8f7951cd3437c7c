package nutrition

import (
	"math"
	"sort"

	"github.com/dukerupert/flexidiet/internal/model"
)

// Target is the energy budget a takeaway meal should fit. Zero macro
// fields are ignored.
type Target struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// TakeawayMatch is a takeaway item with its distance from the target in kcal.
type TakeawayMatch struct {
	model.TakeawayFood
	Distance float64 `json:"distance"`
}

// MatchTakeaways ranks foods by how closely they fit target, skipping items
// over the calorie budget. At most limit matches are returned when limit > 0.
func MatchTakeaways(foods []model.TakeawayFood, target Target, limit int) []TakeawayMatch {
	out := make([]TakeawayMatch, 0, len(foods))
	for _, f := range foods {
		if target.Calories > 0 && f.Calories > target.Calories {
			continue
		}
		out = append(out, TakeawayMatch{TakeawayFood: f, Distance: distance(f, target)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distance(f model.TakeawayFood, t Target) float64 {
	d := math.Abs(f.Calories - t.Calories)
	if t.ProteinG > 0 {
		d += kcalPerGramProtein * math.Abs(f.ProteinG-t.ProteinG)
	}
	if t.CarbsG > 0 {
		d += kcalPerGramCarbs * math.Abs(f.CarbsG-t.CarbsG)
	}
	if t.FatG > 0 {
		d += kcalPerGramFat * math.Abs(f.FatG-t.FatG)
	}
	return math.Round(d*10) / 10
}
