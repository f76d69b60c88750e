package models

import "strings"

// ActivityOption pairs the label shown to users with the canonical value
// stored by the backend.
type ActivityOption struct {
	Label string
	Value string
}

// ActivityOptions is the fixed activity vocabulary. Values are the
// lowercase-underscore forms the backend persists.
var ActivityOptions = []ActivityOption{
	{Label: "Excavation", Value: "excavation"},
	{Label: "Rebar", Value: "rebar"},
	{Label: "Concrete Pour", Value: "concrete_pour"},
	{Label: "Drainage", Value: "drainage"},
	{Label: "Masonry", Value: "masonry"},
	{Label: "Inspection", Value: "inspection"},
	{Label: "Delivery", Value: "delivery"},
	{Label: "Other", Value: "other"},
}

// NormalizeActivityType maps free-text activity input to its canonical value.
// Input matching a known option's label or value (case-insensitively) yields
// that option's value. Anything else is lowercased with whitespace runs
// collapsed to single underscores, so "Concrete  Pour" round-trips as
// "concrete_pour". Empty input stays empty.
func NormalizeActivityType(input string) string {
	if input == "" {
		return ""
	}
	for _, option := range ActivityOptions {
		if strings.EqualFold(input, option.Value) || strings.EqualFold(input, option.Label) {
			return option.Value
		}
	}
	return strings.Join(strings.Fields(strings.ToLower(input)), "_")
}
