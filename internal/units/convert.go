package units

type conversion struct {
	factor float64
	unit   string
}

var toMetric = map[string]conversion{
	"lb":       {453.592, "g"},
	"lbs":      {453.592, "g"},
	"oz":       {28.3495, "g"},
	"fl oz":    {29.5735, "ml"},
	"fluid oz": {29.5735, "ml"},
}

// ConvertToMetric converts imperial weights and fluid volumes to grams or
// millilitres, rounded to whole units. Gram amounts of 1000 or more are
// promoted to kilograms with two decimals. Other amounts pass through
// unchanged.
func ConvertToMetric(amount float64, unit string) (float64, string) {
	u := normalizeUnit(unit)
	c, converted := toMetric[u]
	if converted {
		amount *= c.factor
		u = c.unit
	} else if u != "g" {
		return amount, unit
	}

	if u == "g" && amount >= 1000 {
		return roundHalfUp(amount/1000*100) / 100, "kg"
	}
	if !converted {
		return amount, unit
	}
	return roundHalfUp(amount), u
}
