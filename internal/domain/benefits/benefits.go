// Package benefits converts cash wages into total-compensation equivalents.
package benefits

import "github.com/okian/fairwage/internal/domain/reference"

// Tier boundaries in hourly dollars.
const (
	LowBoundary  = 15.0
	MidAnchor    = 32.5
	HighBoundary = 50.0
)

// Tier is a wage band.
type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// Result is a benefits multiplier and the tier it was drawn from.
type Result struct {
	Multiplier float64 `json:"multiplier"`
	Tier       Tier    `json:"tier"`
}

// Apply returns the total-compensation value of cash.
func (r Result) Apply(cash float64) float64 {
	return cash * r.Multiplier
}

// Multiplier looks up benefits multipliers by sector.
type Multiplier struct {
	tables *reference.Tables
}

// New returns a multiplier over tables.
func New(tables *reference.Tables) *Multiplier {
	return &Multiplier{tables: tables}
}

// For returns the multiplier for an hourly wage in sectorKey. Unknown sectors
// use the national average tiers.
func (m *Multiplier) For(sectorKey string, hourlyWage float64) Result {
	s, ok := m.tables.Sector(sectorKey)
	if !ok {
		s, _ = m.tables.Sector(reference.NationalAverage)
	}
	return Compute(s.Benefits, hourlyWage)
}

// Compute interpolates tiers for an hourly wage. The multiplier is
// continuous: low up to $15, low to mid over [15, 32.5], mid to high over
// [32.5, 50], high above $50.
func Compute(t reference.BenefitsTiers, hourlyWage float64) Result {
	switch {
	case !(hourlyWage >= LowBoundary):
		return Result{Multiplier: t.Low, Tier: TierLow}
	case hourlyWage > HighBoundary:
		return Result{Multiplier: t.High, Tier: TierHigh}
	case hourlyWage <= MidAnchor:
		f := (hourlyWage - LowBoundary) / (MidAnchor - LowBoundary)
		return Result{Multiplier: lerp(t.Low, t.Mid, f), Tier: TierMid}
	default:
		f := (hourlyWage - MidAnchor) / (HighBoundary - MidAnchor)
		return Result{Multiplier: lerp(t.Mid, t.High, f), Tier: TierMid}
	}
}

func lerp(a, b, f float64) float64 {
	return a*(1-f) + b*f
}
