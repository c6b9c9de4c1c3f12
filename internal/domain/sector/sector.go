// Package sector maps free-text or enumerated industry labels to canonical
// sector keys.
package sector

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/okian/fairwage/internal/domain/reference"
)

// Resolution is the outcome of resolving an industry label.
type Resolution struct {
	SectorKey   string  `json:"sector_key"`
	Label       string  `json:"label"`
	GapModifier float64 `json:"gap_modifier"`
	// Fallback is true when the label was not recognized and the national
	// average was substituted.
	Fallback bool   `json:"fallback"`
	Warning  string `json:"warning,omitempty"`
}

// Resolver resolves industry labels against the reference tables.
type Resolver struct {
	tables *reference.Tables
}

// NewResolver creates a resolver over tables.
func NewResolver(tables *reference.Tables) *Resolver {
	return &Resolver{tables: tables}
}

// Resolve maps label to a sector. An empty label resolves to the national
// average silently; an unrecognized label resolves to the national average
// with a warning.
func (r *Resolver) Resolve(label string) Resolution {
	key := Normalize(label)
	if key == "" {
		return r.resolution(reference.NationalAverage, false, "")
	}
	if k, ok := r.tables.Alias(key); ok {
		return r.resolution(k, false, "")
	}
	// "retail_trade_stores" style labels: try the leading word.
	if i := strings.IndexByte(key, '_'); i > 0 {
		if k, ok := r.tables.Alias(key[:i]); ok {
			return r.resolution(k, false, "")
		}
	}
	warning := fmt.Sprintf("%v: %q; using %s", ErrUnknownSector, label, reference.NationalAverage)
	return r.resolution(reference.NationalAverage, true, warning)
}

func (r *Resolver) resolution(key string, fallback bool, warning string) Resolution {
	s, _ := r.tables.Sector(key)
	return Resolution{
		SectorKey:   s.Key,
		Label:       s.Label,
		GapModifier: s.GapModifier,
		Fallback:    fallback,
		Warning:     warning,
	}
}

// Normalize lowercases label and folds punctuation and whitespace runs into
// single underscores.
func Normalize(label string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}
