// Package career reconstructs a year-by-year income trajectory from two
// salary observations.
//
// A standard path is grown from the starting salary by CPI inflation and a
// concave seniority curve. The worker's real trajectory is then blended onto
// that path so the first year equals the starting salary and the last year
// equals the current salary exactly.
package career

import (
	"fmt"
	"math"

	"github.com/okian/fairwage/internal/domain/reference"
)

// Default seniority curve.
const (
	DefaultEarlyRate  = 0.025
	DefaultLateRate   = 0.010
	DefaultEarlyYears = 15
)

// Input are the worker facts the simulator needs.
type Input struct {
	StartYear     int
	StartSalary   float64
	CurrentSalary float64
	CurrentYear   int
}

// YearIncome is one simulated year.
type YearIncome struct {
	Year           int
	Income         float64
	StandardIncome float64
}

// Simulator builds income paths over a set of reference tables.
type Simulator struct {
	tables     *reference.Tables
	earlyRate  float64
	lateRate   float64
	earlyYears int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeniorityCurve overrides the seniority growth curve: early applies to
// tenure years 1..earlyYears, late to every year after.
func WithSeniorityCurve(early, late float64, earlyYears int) Option {
	return func(s *Simulator) {
		s.earlyRate = early
		s.lateRate = late
		if earlyYears >= 0 {
			s.earlyYears = earlyYears
		}
	}
}

// NewSimulator creates a simulator over tables.
func NewSimulator(tables *reference.Tables, opts ...Option) *Simulator {
	s := &Simulator{
		tables:     tables,
		earlyRate:  DefaultEarlyRate,
		lateRate:   DefaultLateRate,
		earlyYears: DefaultEarlyYears,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate reports whether in is inside the supported range.
func (s *Simulator) Validate(in Input) error {
	first, latest := s.tables.FirstYear(), s.tables.LatestYear()
	switch {
	case in.StartYear < first:
		return fmt.Errorf("%w: start year %d is before %d", ErrInvalidRange, in.StartYear, first)
	case in.CurrentYear > latest:
		return fmt.Errorf("%w: current year %d is after %d", ErrInvalidRange, in.CurrentYear, latest)
	case in.StartYear > in.CurrentYear:
		return fmt.Errorf("%w: start year %d is after current year %d", ErrInvalidRange, in.StartYear, in.CurrentYear)
	case !positive(in.StartSalary):
		return fmt.Errorf("%w: start salary must be positive", ErrInvalidRange)
	case !positive(in.CurrentSalary):
		return fmt.Errorf("%w: current salary must be positive", ErrInvalidRange)
	}
	return nil
}

// Simulate returns one YearIncome per year from StartYear to CurrentYear
// inclusive, ordered by year.
func (s *Simulator) Simulate(in Input) ([]YearIncome, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	n := in.CurrentYear - in.StartYear + 1
	standard := make([]float64, n)
	standard[0] = in.StartSalary
	for k := 1; k < n; k++ {
		inflation := 0.0
		if d, ok := s.tables.National(in.StartYear + k); ok {
			inflation = d.CPIInflation
		}
		standard[k] = standard[k-1] * (1 + inflation) * (1 + s.seniority(k))
	}

	out := make([]YearIncome, n)
	if n == 1 {
		out[0] = YearIncome{Year: in.StartYear, Income: in.CurrentSalary, StandardIncome: in.StartSalary}
		return out, nil
	}

	ratio := in.CurrentSalary / standard[n-1]
	last := float64(n - 1)
	for i := 0; i < n; i++ {
		income := standard[i] * (1 + (ratio-1)*float64(i)/last)
		out[i] = YearIncome{Year: in.StartYear + i, Income: income, StandardIncome: standard[i]}
	}
	// pin the endpoints against rounding in the blend
	out[0].Income = in.StartSalary
	out[n-1].Income = in.CurrentSalary
	return out, nil
}

// seniority returns the raise applied when entering tenure year k.
func (s *Simulator) seniority(k int) float64 {
	if k <= s.earlyYears {
		return s.earlyRate
	}
	return s.lateRate
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
