package state

import (
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/colornames"
)

func normalizeColorName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupColor resolves a CSS named color.
func LookupColor(name string) (color.RGBA, bool) {
	c, ok := colornames.Map[normalizeColorName(name)]
	return c, ok
}

func ValidColor(name string) bool {
	_, ok := LookupColor(name)
	return ok
}

// ColorNames lists the accepted names in alphabetical order.
func ColorNames() []string {
	names := make([]string, 0, len(colornames.Map))
	for n := range colornames.Map {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
