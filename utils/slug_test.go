package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Glazed Stoneware Bowl":  "glazed-stoneware-bowl",
		"  Raku  Tea   Cup  ":    "raku-tea-cup",
		"Café & Brunch (Print!)": "caf-brunch-print",
		"--already-sluggy--":     "already-sluggy",
		"!!!":                    "item",
		"":                       "item",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
