package catalog

import (
	"fmt"
	"strings"
)

// Quarter is an academic term name, always stored lowercase
type Quarter string

const (
	Fall   Quarter = "fall"
	Winter Quarter = "winter"
	Spring Quarter = "spring"
	Summer Quarter = "summer"
)

// Quarters lists the known quarters in academic-year order
var Quarters = []Quarter{Fall, Winter, Spring, Summer}

// NormalizeQuarter lowercases and trims a raw quarter name. Empty input stays empty.
func NormalizeQuarter(raw string) Quarter {
	return Quarter(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseQuarter normalizes raw and rejects names outside the known quarters
func ParseQuarter(raw string) (Quarter, error) {
	q := NormalizeQuarter(raw)
	if !q.Valid() {
		return "", fmt.Errorf("unknown quarter %q", raw)
	}
	return q, nil
}

func (q Quarter) Valid() bool {
	for _, known := range Quarters {
		if q == known {
			return true
		}
	}
	return false
}

func (q Quarter) String() string {
	return string(q)
}

// TermFilter selects term offerings. A zero Year or empty Quarter leaves that
// dimension unconstrained.
type TermFilter struct {
	Year    int     `json:"year,omitempty"`
	Quarter Quarter `json:"quarter,omitempty"`
}

// NewTermFilter builds a filter with the quarter normalized
func NewTermFilter(year int, quarter string) TermFilter {
	return TermFilter{Year: year, Quarter: NormalizeQuarter(quarter)}
}

func (f TermFilter) HasYear() bool    { return f.Year != 0 }
func (f TermFilter) HasQuarter() bool { return f.Quarter != "" }

// Normalized returns the filter with its quarter lowercased
func (f TermFilter) Normalized() TermFilter {
	f.Quarter = NormalizeQuarter(string(f.Quarter))
	return f
}

func (f TermFilter) String() string {
	switch {
	case f.HasYear() && f.HasQuarter():
		return fmt.Sprintf("%s %d", f.Quarter, f.Year)
	case f.HasQuarter():
		return fmt.Sprintf("%s (any year)", f.Quarter)
	case f.HasYear():
		return fmt.Sprintf("%d (any quarter)", f.Year)
	default:
		return "all terms"
	}
}

// ParseTermLabel splits a catalog term label such as "2026 Spring"
func ParseTermLabel(label string) (int, Quarter, error) {
	parts := strings.Fields(strings.ToLower(label))
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid term label %q", label)
	}

	var year int
	if _, err := fmt.Sscanf(parts[0], "%d", &year); err != nil {
		return 0, "", fmt.Errorf("invalid year in term label %q: %w", label, err)
	}

	return year, Quarter(parts[1]), nil
}
