package catalog

import (
	"errors"
	"fmt"
)

var ErrUnknownGECategory = errors.New("unknown GE category")

// geCategories maps the catalog's GE category names to their short codes
var geCategories = map[string]string{
	"GE Ia: Lower Division Writing":        "1A",
	"GE Ib: Upper Division Writing":        "1B",
	"GE II: Science and Technology":        "2",
	"GE III: Social & Behavioral Sciences": "3",
	"GE IV: Arts and Humanities":           "4",
	"GE Va: Quantitative Literacy":         "5A",
	"GE Vb: Formal Reasoning":              "5B",
	"GE VI: Language Other Than English":   "6",
	"GE VII: Multicultural Studies":        "7",
	"GE VIII: International/Global Issues": "8",
}

// GECode returns the short code for a raw GE category name
func GECode(category string) (string, error) {
	code, ok := geCategories[category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGECategory, category)
	}
	return code, nil
}

// GECategories returns a copy of the name to code mapping
func GECategories() map[string]string {
	out := make(map[string]string, len(geCategories))
	for name, code := range geCategories {
		out[name] = code
	}
	return out
}
