package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeActivityType(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical value passes through", input: "excavation", expected: "excavation"},
		{name: "label maps to value", input: "Concrete Pour", expected: "concrete_pour"},
		{name: "label match is case-insensitive", input: "concrete pour", expected: "concrete_pour"},
		{name: "value match is case-insensitive", input: "REBAR", expected: "rebar"},
		{name: "other option", input: "Other", expected: "other"},
		{name: "free text lowercased", input: "Snagging", expected: "snagging"},
		{name: "whitespace run collapses to one underscore", input: "Concrete  Pour Prep", expected: "concrete_pour_prep"},
		{name: "tabs and newlines count as whitespace", input: "night\tshift\nwork", expected: "night_shift_work"},
		{name: "surrounding whitespace dropped", input: "  Steel Fixing  ", expected: "steel_fixing"},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeActivityType(tc.input))
		})
	}
}

func TestNormalizeActivityTypeCoversAllOptions(t *testing.T) {
	for _, option := range ActivityOptions {
		assert.Equal(t, option.Value, NormalizeActivityType(option.Label), "label %q", option.Label)
		assert.Equal(t, option.Value, NormalizeActivityType(option.Value), "value %q", option.Value)
	}
}
