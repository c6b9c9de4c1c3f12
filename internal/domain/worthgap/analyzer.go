// Package worthgap compares a worker's wage with the regional market median
// for their sector and experience, and projects the lifetime cost of the
// difference.
//
// It is independent of the career simulation and shares only the reference
// tables and the benefits multiplier with it.
package worthgap

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/fairwage/internal/domain/benefits"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/internal/domain/regional"
)

// Defaults.
const (
	DefaultCareerLength     = 40
	DefaultWageGrowthRate   = 0.03
	DefaultReturnRate       = 0.05
	ExperienceStep          = 0.025
	MinExperienceMultiplier = 0.75
	MaxExperienceMultiplier = 1.35
)

// Input are the worker facts for one analysis.
type Input struct {
	CurrentWage     float64
	Frequency       Frequency
	ZIP             string
	State           string
	StartYear       int
	YearsExperience float64
	SectorKey       string
	Role            string
	CurrentYear     int
}

// Wage is a wage in hourly and annual terms.
type Wage struct {
	Hourly float64 `json:"hourly"`
	Annual float64 `json:"annual"`
}

// Gap is the shortfall against the market; never negative.
type Gap struct {
	Hourly  float64 `json:"hourly"`
	Annual  float64 `json:"annual"`
	Percent float64 `json:"percent"`
}

// MarketData explains how the deserved wage was derived.
type MarketData struct {
	Market
	Basis                string  `json:"basis"`
	BasisHourly          float64 `json:"basisHourly"`
	MarketMedian         Wage    `json:"marketMedian"`
	ExperienceMultiplier float64 `json:"experienceMultiplier"`
	YearsExperience      float64 `json:"yearsExperience"`
}

// ProjectionYear is one year of the cost-of-waiting series.
type ProjectionYear struct {
	Year                  int     `json:"year"`
	AnnualGap             float64 `json:"annualGap"`
	CumulativeGap         float64 `json:"cumulativeGap"`
	CumulativeWithReturns float64 `json:"cumulativeWithReturns"`
}

// LifetimeImpact is the projected cost of the gap until retirement.
type LifetimeImpact struct {
	RetirementYear   int              `json:"retirementYear"`
	YearsRemaining   int              `json:"yearsRemaining"`
	TotalGap         float64          `json:"totalGap"`
	TotalWithReturns float64          `json:"totalWithReturns"`
	Projection       []ProjectionYear `json:"projection"`
}

// Result is a worth gap analysis.
type Result struct {
	DeservedWage         Wage            `json:"deservedWage"` // market median adjusted for experience
	CurrentWage          Wage            `json:"currentWage"`
	WorthGap             Gap             `json:"worthGap"`
	MarketMedian         Wage            `json:"marketMedian"`
	ExperienceMultiplier float64         `json:"experienceMultiplier"`
	MarketData           MarketData      `json:"marketData"`
	Benefits             BenefitsView    `json:"benefits"`
	LifetimeImpact       *LifetimeImpact `json:"lifetimeImpact,omitempty"`
	Warnings             []string        `json:"warnings,omitempty"`
}

// BenefitsView restates both wages as total compensation.
type BenefitsView struct {
	Current           benefits.Result `json:"current"`
	Deserved          benefits.Result `json:"deserved"`
	CurrentTotalComp  float64         `json:"currentTotalCompensation"`
	DeservedTotalComp float64         `json:"deservedTotalCompensation"`
}

// Analyzer computes worth gaps.
type Analyzer struct {
	tables       *reference.Tables
	regional     *regional.Adjuster
	benefits     *benefits.Multiplier
	cache        Cache
	ttl          time.Duration
	group        singleflight.Group
	hoursPerYear float64
	careerLength int
	wageGrowth   float64
	returnRate   float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache sets the market snapshot cache and its TTL.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.cache = c
		}
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithHoursPerYear sets the hours used to annualize.
func WithHoursPerYear(h float64) Option {
	return func(a *Analyzer) {
		if h > 0 {
			a.hoursPerYear = h
		}
	}
}

// WithProjection sets the career length, annual wage growth and investment
// return used by the lifetime projection.
func WithProjection(careerLength int, wageGrowth, returnRate float64) Option {
	return func(a *Analyzer) {
		if careerLength > 0 {
			a.careerLength = careerLength
		}
		a.wageGrowth = wageGrowth
		a.returnRate = returnRate
	}
}

// NewAnalyzer returns an analyzer over tables. Without WithCache nothing is
// memoized.
func NewAnalyzer(tables *reference.Tables, opts ...Option) *Analyzer {
	a := &Analyzer{
		tables:       tables,
		regional:     regional.NewAdjuster(tables),
		benefits:     benefits.New(tables),
		cache:        noCache{},
		ttl:          DefaultMedianTTL,
		hoursPerYear: reference.HoursPerYear,
		careerLength: DefaultCareerLength,
		wageGrowth:   DefaultWageGrowthRate,
		returnRate:   DefaultReturnRate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs one analysis.
func (a *Analyzer) Analyze(in Input) (Result, error) {
	if !(in.CurrentWage > 0) || math.IsInf(in.CurrentWage, 0) {
		return Result{}, ErrInvalidWage
	}
	freq, err := ParseFrequency(string(in.Frequency))
	if err != nil {
		return Result{}, err
	}
	currentYear := in.CurrentYear
	if currentYear == 0 {
		currentYear = a.tables.LatestYear()
	}
	years, err := experience(in, currentYear)
	if err != nil {
		return Result{}, err
	}

	var res Result
	loc, ok := a.regional.Resolve(in.ZIP, in.State)
	if !ok && (in.ZIP != "" || in.State != "") {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unknown location zip=%q state=%q; using national prices", in.ZIP, in.State))
	}

	sec, ok := a.tables.Sector(in.SectorKey)
	if !ok {
		sec, _ = a.tables.Sector(reference.NationalAverage)
	}

	market := a.market(loc.State, sec, years)

	basis, basisHourly := "p50", market.Wages.P50
	if in.Role != "" {
		if r, ok := sec.Role(in.Role); ok {
			if w, ok := market.Wages.Percentile(r.Percentile); ok {
				basis, basisHourly = fmt.Sprintf("role:%s:p%d", r.Value, r.Percentile), w
			}
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown role %q in %s; using sector median", in.Role, sec.Key))
		}
	}

	expMult := ExperienceMultiplier(years, sec.AvgTenureYears)
	deserved := basisHourly * expMult
	current := freq.ToHourly(in.CurrentWage, a.hoursPerYear)
	gapHourly := math.Max(0, deserved-current)

	res.DeservedWage = a.wage(deserved)
	res.CurrentWage = a.wage(current)
	res.MarketMedian = a.wage(basisHourly)
	res.ExperienceMultiplier = expMult
	res.WorthGap = Gap{Hourly: gapHourly, Annual: gapHourly * a.hoursPerYear}
	if deserved > 0 {
		res.WorthGap.Percent = gapHourly / deserved * 100
	}
	res.MarketData = MarketData{
		Market:               market,
		Basis:                basis,
		BasisHourly:          basisHourly,
		MarketMedian:         res.MarketMedian,
		ExperienceMultiplier: expMult,
		YearsExperience:      years,
	}

	cb := a.benefits.For(sec.Key, current)
	db := a.benefits.For(sec.Key, deserved)
	res.Benefits = BenefitsView{
		Current:           cb,
		Deserved:          db,
		CurrentTotalComp:  cb.Apply(res.CurrentWage.Annual),
		DeservedTotalComp: db.Apply(res.DeservedWage.Annual),
	}

	if res.WorthGap.Annual > 0 {
		start := currentYear - int(math.Round(years))
		if in.StartYear > 0 {
			start = in.StartYear
		}
		res.LifetimeImpact = a.project(res.WorthGap.Annual, currentYear, a.retirementYear(start, currentYear))
	}
	return res, nil
}

// market returns the snapshot for a location, sector and experience bucket,
// reading through the cache. Concurrent misses on one key compute once.
func (a *Analyzer) market(state string, sec reference.Sector, years float64) Market {
	key := CacheKey(state, sec.Key, years)
	if m, ok := a.cache.Get(key); ok {
		return m
	}
	v, _, _ := a.group.Do(key, func() (any, error) {
		if m, ok := a.cache.Get(key); ok {
			return m, nil
		}
		rpp, _ := a.regional.PriceParity(state)
		w := sec.Wages
		m := Market{
			State:       state,
			SectorKey:   sec.Key,
			Bucket:      Bucket(years),
			PriceParity: rpp,
			Wages: reference.WagePercentiles{
				P10: w.P10 * rpp, P25: w.P25 * rpp, P50: w.P50 * rpp,
				P75: w.P75 * rpp, P90: w.P90 * rpp, Mean: w.Mean * rpp,
			},
			AvgTenureYears: sec.AvgTenureYears,
			ReferenceYear:  reference.OEWSReferenceYear,
		}
		a.cache.Set(key, m, a.ttl)
		return m, nil
	})
	return v.(Market)
}

func (a *Analyzer) wage(hourly float64) Wage {
	return Wage{Hourly: hourly, Annual: hourly * a.hoursPerYear}
}

func (a *Analyzer) retirementYear(start, currentYear int) int {
	r := start + a.careerLength
	if r <= currentYear {
		r = currentYear + 1
	}
	return r
}

// project compounds annualGap from the year after currentYear through
// retirement: the gap grows with wages and the running total earns returns.
func (a *Analyzer) project(annualGap float64, currentYear, retirement int) *LifetimeImpact {
	n := retirement - currentYear
	out := &LifetimeImpact{RetirementYear: retirement, YearsRemaining: n, Projection: make([]ProjectionYear, 0, n)}
	gap, total, invested := annualGap, 0.0, 0.0
	for k := 1; k <= n; k++ {
		total += gap
		invested = invested*(1+a.returnRate) + gap
		out.Projection = append(out.Projection, ProjectionYear{
			Year:                  currentYear + k,
			AnnualGap:             gap,
			CumulativeGap:         total,
			CumulativeWithReturns: invested,
		})
		gap *= 1 + a.wageGrowth
	}
	out.TotalGap = total
	out.TotalWithReturns = invested
	return out
}

// ExperienceMultiplier scales a median for experience relative to the sector
// average tenure, which maps to 1.0.
func ExperienceMultiplier(years, avgTenure float64) float64 {
	m := 1 + ExperienceStep*(years-avgTenure)
	return math.Min(MaxExperienceMultiplier, math.Max(MinExperienceMultiplier, m))
}

func experience(in Input, currentYear int) (float64, error) {
	switch {
	case in.YearsExperience < 0 || math.IsNaN(in.YearsExperience):
		return 0, fmt.Errorf("%w: years of experience %v", ErrInvalidExperience, in.YearsExperience)
	case in.YearsExperience > 0:
		return in.YearsExperience, nil
	case in.StartYear > currentYear:
		return 0, fmt.Errorf("%w: start year %d is after %d", ErrInvalidExperience, in.StartYear, currentYear)
	case in.StartYear > 0:
		return float64(currentYear - in.StartYear), nil
	}
	return 0, nil
}
