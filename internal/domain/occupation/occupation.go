// Package occupation positions a worker inside their sector's wage
// distribution.
package occupation

import (
	"fmt"
	"math"

	"github.com/okian/fairwage/internal/domain/reference"
)

// Adjustment bounds.
const (
	MinAdjustment = 0.3
	MaxAdjustment = 2.5
)

// Method records how an adjustment was derived.
type Method string

const (
	// MethodRoleDeclared uses the OEWS percentile wage of a declared role.
	MethodRoleDeclared Method = "role-declared"
	// MethodWageProxy uses the worker's own wage. The worker's wage therefore
	// informs its own adjustment; callers that need to avoid this should
	// declare a role.
	MethodWageProxy Method = "wage-proxy"
)

// Adjustment is a worker's position relative to the sector mean wage,
// always within [MinAdjustment, MaxAdjustment].
type Adjustment struct {
	Value      float64 `json:"adjustment"`
	Method     Method  `json:"method"`
	Role       string  `json:"role,omitempty"`
	Percentile int     `json:"percentile,omitempty"`
	Warning    string  `json:"warning,omitempty"`
}

// Factor is the damping applied to a fair-value gap: the square root of the
// adjustment.
func (a Adjustment) Factor() float64 {
	return math.Sqrt(a.Value)
}

// Adjuster computes adjustments from reference wage tables.
type Adjuster struct {
	tables *reference.Tables
}

// NewAdjuster returns an adjuster over tables.
func NewAdjuster(tables *reference.Tables) *Adjuster {
	return &Adjuster{tables: tables}
}

// Adjust computes the adjustment for a worker in sectorKey. A non-empty role
// that the sector defines selects the role-declared method; anything else
// uses hourlyWage as a proxy.
func (a *Adjuster) Adjust(sectorKey, role string, hourlyWage float64) Adjustment {
	s, ok := a.tables.Sector(sectorKey)
	if !ok {
		s, _ = a.tables.Sector(reference.NationalAverage)
	}

	var warning string
	if role != "" {
		if r, ok := s.Role(role); ok {
			if w, ok := s.Wages.Percentile(r.Percentile); ok {
				return Adjustment{
					Value:      Clamp(w / s.Wages.Mean),
					Method:     MethodRoleDeclared,
					Role:       r.Value,
					Percentile: r.Percentile,
				}
			}
		}
		warning = fmt.Sprintf("%v: %q in %s; using wage proxy", ErrUnknownRole, role, s.Key)
	}

	return Adjustment{
		Value:   Clamp(hourlyWage / s.Wages.Mean),
		Method:  MethodWageProxy,
		Warning: warning,
	}
}

// Clamp bounds v to [MinAdjustment, MaxAdjustment]. NaN maps to the lower
// bound.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < MinAdjustment:
		return MinAdjustment
	case v > MaxAdjustment:
		return MaxAdjustment
	}
	return v
}
