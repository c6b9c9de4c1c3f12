// Package reference holds the immutable economic reference tables used by the
// valuation pipeline: national and sector productivity/wage series, OEWS wage
// percentiles, role levels, benefits tiers, value-added composition, regional
// price parities and the CPI levels behind the deflator.
//
// Tables are built once and never mutated. Every accessor returns copies or
// values, so a *Tables can be shared by any number of goroutines without
// locking.
package reference

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// Reference table constants.
const (
	// FirstYear is the first year covered by the national series.
	FirstYear = 1975
	// LatestYear is the reference "present": the last year with published data.
	LatestYear = 2024
	// NationalAverage is the fallback sector key.
	NationalAverage = "national_average"
	// OEWSReferenceYear is the survey year of the wage percentile tables.
	OEWSReferenceYear = 2024
	// ValueAddedReferenceYear is the dollar year of the value-added-per-worker figures.
	ValueAddedReferenceYear = 2022
	// DeflatorBaseYear is the default constant-dollar year.
	DeflatorBaseYear = 2024
	// HoursPerYear converts hourly wages to annual pay (52 weeks x 40 hours).
	HoursPerYear = 2080
	// Version identifies this set of tables; bump it whenever any value changes.
	Version = "2024.2"
)

// YearlyEconomicDatum is one year of the national series.
type YearlyEconomicDatum struct {
	Year               int     `json:"year"`
	ProductivityIndex  float64 `json:"productivity_index"`
	WageIndex          float64 `json:"wage_index"`
	CPIInflation       float64 `json:"cpi_inflation"`
	BaselineRentBurden float64 `json:"baseline_rent_burden"`
}

// SectorPoint is one year of a sector series.
type SectorPoint struct {
	ProductivityIndex float64 `json:"productivity_index"`
	WageIndex         float64 `json:"wage_index"`
}

// WagePercentiles are OEWS hourly wages for a sector.
type WagePercentiles struct {
	P10  float64 `json:"p10"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P90  float64 `json:"p90"`
	Mean float64 `json:"mean"`
}

// Percentile returns the hourly wage at percentile p (10, 25, 50, 75 or 90).
func (w WagePercentiles) Percentile(p int) (float64, bool) {
	switch p {
	case 10:
		return w.P10, true
	case 25:
		return w.P25, true
	case 50:
		return w.P50, true
	case 75:
		return w.P75, true
	case 90:
		return w.P90, true
	}
	return 0, false
}

// RoleLevel maps a declared role to a representative OEWS percentile.
type RoleLevel struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	Percentile int    `json:"percentile"`
}

// BenefitsTiers are total-compensation multipliers by wage tier.
type BenefitsTiers struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// ValueAddedShares is the composition of a sector's value added. The four
// shares sum to 1.
type ValueAddedShares struct {
	Compensation float64 `json:"compensation"`
	Taxes        float64 `json:"taxes"`
	Depreciation float64 `json:"depreciation"`
	Profit       float64 `json:"profit"`
}

// Sector bundles every per-sector reference value.
type Sector struct {
	Key         string
	Label       string
	GapModifier float64
	// AvgTenureYears is the median employee tenure in the sector.
	AvgTenureYears float64
	// ValueAddedPerWorker is national value added per worker in ValueAddedReferenceYear dollars.
	ValueAddedPerWorker float64
	Wages               WagePercentiles
	Benefits            BenefitsTiers
	Shares              ValueAddedShares
	Roles               []RoleLevel
	Aliases             []string
}

// Role looks up a declared role value for the sector.
func (s Sector) Role(value string) (RoleLevel, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, r := range s.Roles {
		if r.Value == v {
			return r, true
		}
	}
	return RoleLevel{}, false
}

// Tables is the read-only arena of reference data.
type Tables struct {
	national    map[int]YearlyEconomicDatum
	sectors     map[string]Sector
	series      map[string]map[int]SectorPoint
	aliases     map[string]string
	rpp         map[string]float64
	stateOutput map[string]float64
	cpiLevels   map[int]float64
	zips        []zipRange
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide tables, building them on first use.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = build()
	})
	return defaultTables
}

func build() *Tables {
	t := &Tables{
		national:    make(map[int]YearlyEconomicDatum, len(nationalSeries)),
		sectors:     make(map[string]Sector, len(sectorDefinitions)),
		series:      make(map[string]map[int]SectorPoint, len(sectorDefinitions)),
		aliases:     make(map[string]string),
		rpp:         make(map[string]float64, len(regionalPriceParities)),
		stateOutput: make(map[string]float64, len(stateOutputFactors)),
		cpiLevels:   make(map[int]float64, len(cpiLevels)),
		zips:        append([]zipRange(nil), zipPrefixRanges...),
	}
	for _, d := range nationalSeries {
		t.national[d.Year] = d
	}
	for _, def := range sectorDefinitions {
		t.sectors[def.Key] = def.Sector
		t.aliases[def.Key] = def.Key
		for _, a := range def.Aliases {
			t.aliases[a] = def.Key
		}
		if len(def.Benchmarks) > 0 {
			t.series[def.Key] = interpolateBenchmarks(def.Benchmarks)
		}
	}
	for k, v := range regionalPriceParities {
		t.rpp[k] = v
	}
	for k, v := range stateOutputFactors {
		t.stateOutput[k] = v
	}
	for k, v := range cpiLevels {
		t.cpiLevels[k] = v
	}
	sort.Slice(t.zips, func(i, j int) bool { return t.zips[i].from < t.zips[j].from })
	return t
}

// benchmark is a published sector observation; years between benchmarks are
// filled by geometric interpolation.
type benchmark struct {
	year  int
	point SectorPoint
}

func interpolateBenchmarks(bs []benchmark) map[int]SectorPoint {
	out := make(map[int]SectorPoint)
	sort.Slice(bs, func(i, j int) bool { return bs[i].year < bs[j].year })
	for i, b := range bs {
		out[b.year] = b.point
		if i == 0 {
			continue
		}
		prev := bs[i-1]
		span := float64(b.year - prev.year)
		for y := prev.year + 1; y < b.year; y++ {
			f := float64(y-prev.year) / span
			out[y] = SectorPoint{
				ProductivityIndex: geometric(prev.point.ProductivityIndex, b.point.ProductivityIndex, f),
				WageIndex:         geometric(prev.point.WageIndex, b.point.WageIndex, f),
			}
		}
	}
	return out
}

func geometric(a, b, f float64) float64 {
	v := a * math.Pow(b/a, f)
	return math.Round(v*10) / 10
}

// FirstYear returns the first year of the national series.
func (t *Tables) FirstYear() int { return FirstYear }

// LatestYear returns the last year of the national series.
func (t *Tables) LatestYear() int { return LatestYear }

// National returns the national datum for year.
func (t *Tables) National(year int) (YearlyEconomicDatum, bool) {
	d, ok := t.national[year]
	return d, ok
}

// SectorPoint returns the sector's own observation for year, without fallback.
func (t *Tables) SectorPoint(key string, year int) (SectorPoint, bool) {
	s, ok := t.series[key]
	if !ok {
		return SectorPoint{}, false
	}
	p, ok := s[year]
	return p, ok
}

// Points returns the observations for from and to taken from one series: the
// sector's when it covers both years, otherwise the national one. own reports
// whether the sector's data was used.
func (t *Tables) Points(key string, from, to int) (a, b SectorPoint, own, ok bool) {
	a, okA := t.SectorPoint(key, from)
	b, okB := t.SectorPoint(key, to)
	if okA && okB {
		return a, b, true, true
	}
	na, okA := t.national[from]
	nb, okB := t.national[to]
	if !okA || !okB {
		return SectorPoint{}, SectorPoint{}, false, false
	}
	a = SectorPoint{ProductivityIndex: na.ProductivityIndex, WageIndex: na.WageIndex}
	b = SectorPoint{ProductivityIndex: nb.ProductivityIndex, WageIndex: nb.WageIndex}
	return a, b, false, true
}

// Sector returns the reference values for a canonical sector key.
func (t *Tables) Sector(key string) (Sector, bool) {
	s, ok := t.sectors[key]
	return s, ok
}

// SectorKeys returns all canonical sector keys, sorted.
func (t *Tables) SectorKeys() []string {
	keys := make([]string, 0, len(t.sectors))
	for k := range t.sectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Alias resolves a normalized label or NAICS code to a sector key.
func (t *Tables) Alias(label string) (string, bool) {
	k, ok := t.aliases[label]
	return k, ok
}

// RegionalPriceParity returns the state's price parity (1.0 = national average).
func (t *Tables) RegionalPriceParity(state string) (float64, bool) {
	v, ok := t.rpp[strings.ToUpper(state)]
	return v, ok
}

// StateOutputFactor returns the state's output per worker relative to the
// nation. States without an entry are treated as national average.
func (t *Tables) StateOutputFactor(state string) float64 {
	if v, ok := t.stateOutput[strings.ToUpper(state)]; ok {
		return v
	}
	return 1.0
}

// CPILevels returns a copy of the CPI-U annual average levels.
func (t *Tables) CPILevels() map[int]float64 {
	out := make(map[int]float64, len(t.cpiLevels))
	for k, v := range t.cpiLevels {
		out[k] = v
	}
	return out
}
