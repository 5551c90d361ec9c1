package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const minNameLength = 3

// Section-divider names and fragments that disqualify a row as an item.
var (
	stoplistExact = map[string]struct{}{
		"chemicals":   {},
		"consumables": {},
		"equipment":   {},
		"glassware":   {},
		"other":       {},
	}
	stoplistSubstrings = []string{"section", "---"}
)

// ValidateRow decides whether a mapped record is a genuine catalog item.
// A returned error is row-fatal; warnings are non-blocking.
func ValidateRow(record Record) ([]string, error) {
	name := strings.TrimSpace(record[fieldName])
	if name == "" {
		return nil, fmt.Errorf("name is missing")
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, fmt.Errorf("name %q is too short", name)
	}

	lowered := strings.ToLower(name)
	if _, ok := stoplistExact[lowered]; ok {
		return nil, fmt.Errorf("%q looks like a section header, not an item", name)
	}
	for _, fragment := range stoplistSubstrings {
		if strings.Contains(lowered, fragment) {
			return nil, fmt.Errorf("%q looks like a section divider, not an item", name)
		}
	}

	var warnings []string
	if record[fieldPartNumber] == "" && ParsePrice(record[fieldPrice]) == nil {
		warnings = append(warnings, "missing both supplier part number and price")
	}
	return warnings, nil
}
