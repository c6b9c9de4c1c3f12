// Package fairvalue computes the per-year fair value of a worker's labor.
//
// For each year the sector's productivity/wage divergence is measured two
// ways, since the worker's start year and since 1975, and the two are blended
// toward the absolute measure as the career lengthens. The divergence is
// scaled by the industry modifier, damped when income is above the sector
// median and by the occupation factor, and finally capped by the regional
// value-added ceiling.
package fairvalue

import (
	"fmt"
	"math"

	"github.com/okian/fairwage/internal/domain/career"
	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/internal/domain/occupation"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/internal/domain/regional"
)

// DefaultBlendHorizon is the career length in years after which the absolute
// ratio is used alone.
const DefaultBlendHorizon = 20

// Input is everything the engine needs for one career.
type Input struct {
	SectorKey     string
	GapModifier   float64
	Role          string
	State         string
	StartYear     int
	CurrentSalary float64
	MonthlyRent   float64
	Path          []career.YearIncome
}

// YearDetail exposes the intermediate factors of one year.
type YearDetail struct {
	Year          int     `json:"year"`
	CareerRatio   float64 `json:"career_ratio"`
	AbsoluteRatio float64 `json:"absolute_ratio"`
	BlendWeight   float64 `json:"blend_weight"`
	BlendedRatio  float64 `json:"blended_ratio"`
	Multiplier    float64 `json:"multiplier"`
	Median        float64 `json:"median"`
	Damping       float64 `json:"damping"`
	Ceiling       float64 `json:"ceiling"`
	Capped        bool    `json:"capped"`
}

// Totals aggregates a career.
type Totals struct {
	Years                       int     `json:"years"`
	TotalIncome                 float64 `json:"total_income"`
	TotalFairValue              float64 `json:"total_fair_value"`
	UnrealizedProductivityGains float64 `json:"unrealized_productivity_gains"`
	ExcessRentBurden            float64 `json:"excess_rent_burden"`
	CumulativeEconomicImpact    float64 `json:"cumulative_economic_impact"`
	AverageAnnualGap            float64 `json:"average_annual_gap"`
	CappedYears                 int     `json:"capped_years"`
}

// Result is the engine output for one career.
type Result struct {
	Records    []model.CareerYearRecord
	Details    []YearDetail
	Totals     Totals
	Occupation occupation.Adjustment
	RentRatio  float64
}

// Engine evaluates careers against reference tables.
type Engine struct {
	tables       *reference.Tables
	occupation   *occupation.Adjuster
	regional     *regional.Adjuster
	blendHorizon int
	hoursPerYear float64
	cpi          map[int]float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithBlendHorizon sets the career length at which the absolute ratio takes
// full weight.
func WithBlendHorizon(years int) Option {
	return func(e *Engine) {
		if years > 0 {
			e.blendHorizon = years
		}
	}
}

// WithHoursPerYear sets the hours used to annualize hourly wages.
func WithHoursPerYear(h float64) Option {
	return func(e *Engine) {
		if h > 0 {
			e.hoursPerYear = h
		}
	}
}

// NewEngine returns an engine over tables.
func NewEngine(tables *reference.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables:       tables,
		occupation:   occupation.NewAdjuster(tables),
		regional:     regional.NewAdjuster(tables),
		blendHorizon: DefaultBlendHorizon,
		hoursPerYear: reference.HoursPerYear,
		cpi:          tables.CPILevels(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate produces one record per path year and the career totals.
func (e *Engine) Evaluate(in Input) (Result, error) {
	if len(in.Path) == 0 {
		return Result{}, fmt.Errorf("%w: empty income path", ErrInvalidInput)
	}
	if !(in.CurrentSalary > 0) || math.IsInf(in.CurrentSalary, 0) {
		return Result{}, fmt.Errorf("%w: current salary must be positive", ErrInvalidInput)
	}
	if in.MonthlyRent < 0 || math.IsNaN(in.MonthlyRent) {
		return Result{}, fmt.Errorf("%w: rent must not be negative", ErrInvalidInput)
	}
	sec, ok := e.tables.Sector(in.SectorKey)
	if !ok {
		sec, _ = e.tables.Sector(reference.NationalAverage)
	}

	adj := e.occupation.Adjust(sec.Key, in.Role, in.CurrentSalary/e.hoursPerYear)
	occFactor := adj.Factor()
	basis := e.medianBasis(sec, adj)
	rentRatio := 12 * in.MonthlyRent / in.CurrentSalary

	res := Result{
		Records:    make([]model.CareerYearRecord, 0, len(in.Path)),
		Details:    make([]YearDetail, 0, len(in.Path)),
		Occupation: adj,
		RentRatio:  rentRatio,
	}
	for _, y := range in.Path {
		d := YearDetail{Year: y.Year}
		d.CareerRatio = e.divergence(sec.Key, in.StartYear, y.Year)
		d.AbsoluteRatio = e.divergence(sec.Key, reference.FirstYear, y.Year)
		d.BlendWeight = math.Min(1, float64(y.Year-in.StartYear)/float64(e.blendHorizon))
		d.BlendedRatio = (1-d.BlendWeight)*d.CareerRatio + d.BlendWeight*d.AbsoluteRatio
		d.Multiplier = 1 + (d.BlendedRatio-1)*in.GapModifier

		d.Median = e.median(sec.Key, basis, y.Year)
		d.Damping = 1
		if y.Income > d.Median && d.Median > 0 {
			d.Damping = d.Median / y.Income
		}

		raw := y.Income + y.Income*(d.Multiplier-1)*d.Damping*occFactor
		d.Ceiling = e.regional.Ceiling(sec.Key, in.State, y.Year)
		fair := raw
		if fair > d.Ceiling {
			fair = d.Ceiling
			d.Capped = true
		}

		var excess float64
		if nat, ok := e.tables.National(y.Year); ok {
			excess = y.Income * math.Max(0, rentRatio-nat.BaselineRentBurden)
		}

		rec := model.NewCareerYearRecord(y.Year, y.Income, y.StandardIncome, fair, excess)
		res.Records = append(res.Records, rec)
		res.Details = append(res.Details, d)
		res.Totals.add(rec, d.Capped)
	}
	res.Totals.AverageAnnualGap = res.Totals.UnrealizedProductivityGains / float64(res.Totals.Years)
	return res, nil
}

// divergence is productivity growth over wage growth between from and to.
func (e *Engine) divergence(key string, from, to int) float64 {
	a, b, _, ok := e.tables.Points(key, from, to)
	if !ok {
		return 1
	}
	return (b.ProductivityIndex / a.ProductivityIndex) / (b.WageIndex / a.WageIndex)
}

// medianBasis is the role-appropriate hourly median: the declared role's
// percentile wage, otherwise the sector p50.
func (e *Engine) medianBasis(sec reference.Sector, adj occupation.Adjustment) float64 {
	if adj.Method == occupation.MethodRoleDeclared {
		if w, ok := sec.Wages.Percentile(adj.Percentile); ok {
			return w
		}
	}
	return sec.Wages.P50
}

// median restates the annualized basis, published in OEWS reference-year
// dollars, for year: scaled by the wage index and the price level.
func (e *Engine) median(key string, hourly float64, year int) float64 {
	annual := hourly * e.hoursPerYear
	if ref, cur, _, ok := e.tables.Points(key, reference.OEWSReferenceYear, year); ok {
		annual *= cur.WageIndex / ref.WageIndex
	}
	base, okBase := e.cpi[reference.OEWSReferenceYear]
	level, okLevel := e.cpi[year]
	if okBase && okLevel {
		annual *= level / base
	}
	return annual
}

func (t *Totals) add(r model.CareerYearRecord, capped bool) {
	t.Years++
	t.TotalIncome += r.Income
	t.TotalFairValue += r.FairValue
	t.UnrealizedProductivityGains += r.UnpaidLabor
	t.ExcessRentBurden += r.ExcessRent
	t.CumulativeEconomicImpact = t.UnrealizedProductivityGains + t.ExcessRentBurden
	if capped {
		t.CappedYears++
	}
}
