package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/okian/fairwage/internal/adapters/cpi"
	"github.com/okian/fairwage/internal/domain/benefits"
	"github.com/okian/fairwage/internal/domain/career"
	"github.com/okian/fairwage/internal/domain/deflator"
	"github.com/okian/fairwage/internal/domain/fairvalue"
	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/internal/domain/occupation"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/pkg/logger"
	"github.com/okian/fairwage/pkg/metrics"
)

// ImpactRequest are the worker facts for an impact calculation. CurrentRent
// is monthly.
type ImpactRequest struct {
	StartYear     int     `json:"start_year" yaml:"start_year" validate:"required"`
	StartSalary   float64 `json:"start_salary" yaml:"start_salary" validate:"gt=0"`
	CurrentSalary float64 `json:"current_salary" yaml:"current_salary" validate:"gt=0"`
	CurrentRent   float64 `json:"current_rent" yaml:"current_rent" validate:"gte=0"`
	Industry      string  `json:"industry,omitempty" yaml:"industry,omitempty" validate:"max=128"`
	RoleLevel     string  `json:"role_level,omitempty" yaml:"role_level,omitempty" validate:"max=64"`
	ZIPCode       string  `json:"zip_code,omitempty" yaml:"zip_code,omitempty" validate:"omitempty,max=10"`
	State         string  `json:"state,omitempty" yaml:"state,omitempty" validate:"omitempty,len=2,alpha"`
	CurrentYear   int     `json:"current_year,omitempty" yaml:"current_year,omitempty" validate:"omitempty,gte=1975"`
}

// YearRow is one year of the nominal breakdown with the factors behind it.
type YearRow struct {
	model.CareerYearRecord
	Factors fairvalue.YearDetail `json:"factors"`
}

// ImpactBenefits restates current pay as total compensation.
type ImpactBenefits struct {
	benefits.Result
	TotalCompensation float64 `json:"total_compensation"`
}

// ImpactSummary aggregates a career.
type ImpactSummary struct {
	CumulativeEconomicImpact        float64               `json:"cumulative_economic_impact"`
	CumulativeEconomicImpactReal    float64               `json:"cumulative_economic_impact_real"`
	UnrealizedProductivityGains     float64               `json:"unrealized_productivity_gains"`
	UnrealizedProductivityGainsReal float64               `json:"unrealized_productivity_gains_real"`
	ExcessRentBurden                float64               `json:"excess_rent_burden"`
	ExcessRentBurdenReal            float64               `json:"excess_rent_burden_real"`
	TotalIncome                     float64               `json:"total_income"`
	TotalFairValue                  float64               `json:"total_fair_value"`
	AverageAnnualGap                float64               `json:"average_annual_gap"`
	Years                           int                   `json:"years"`
	CappedYears                     int                   `json:"capped_years"`
	StartYear                       int                   `json:"start_year"`
	EndYear                         int                   `json:"end_year"`
	RentRatio                       float64               `json:"rent_ratio"`
	Sector                          string                `json:"sector"`
	GapModifier                     float64               `json:"gap_modifier"`
	Occupation                      occupation.Adjustment `json:"occupation"`
	Benefits                        ImpactBenefits        `json:"benefits"`
}

// ImpactResponse is a full impact calculation.
type ImpactResponse struct {
	CalculationID       string                     `json:"calculation_id"`
	Summary             ImpactSummary              `json:"summary"`
	YearlyBreakdown     []YearRow                  `json:"yearly_breakdown"`
	YearlyBreakdownReal []model.DeflatedYearRecord `json:"yearly_breakdown_real"`
	GapDecomposition    model.GapDecomposition     `json:"gap_decomposition"`
	Methodology         Methodology                `json:"methodology"`
	DataProvenance      Provenance                 `json:"data_provenance"`
	Warnings            []string                   `json:"warnings"`
}

// Impact runs the career economic impact model for one worker.
func (s *Service) Impact(ctx context.Context, req ImpactRequest) (ImpactResponse, error) {
	if !s.running() {
		return ImpactResponse{}, ErrNotStarted
	}
	start := time.Now()
	resp, err := s.impact(ctx, req)
	outcome := "ok"
	if err != nil {
		outcome = "invalid"
		s.failures.Add(1)
	} else {
		s.impacts.Add(1)
	}
	metrics.RecordCalculation("impact", outcome, float64(time.Since(start).Microseconds())/1000)
	return resp, err
}

func (s *Service) impact(ctx context.Context, req ImpactRequest) (ImpactResponse, error) {
	warnings := []string{}

	currentYear := req.CurrentYear
	if currentYear == 0 {
		currentYear = s.tables.LatestYear()
	}

	res := s.sectors.Resolve(req.Industry)
	if res.Fallback {
		warnings = append(warnings, res.Warning)
		metrics.RecordSectorFallback()
		s.logger.Warn(ctx, "unknown industry, using national average",
			logger.String("industry", req.Industry))
	}

	loc, ok := s.regional.Resolve(req.ZIPCode, req.State)
	if !ok && (req.ZIPCode != "" || req.State != "") {
		warnings = append(warnings, fmt.Sprintf("unknown location zip=%q state=%q; using national value added", req.ZIPCode, req.State))
		s.logger.Warn(ctx, "unknown location",
			logger.String("zip", req.ZIPCode), logger.String("state", req.State))
	}

	path, err := s.simulator.Simulate(career.Input{
		StartYear:     req.StartYear,
		StartSalary:   req.StartSalary,
		CurrentSalary: req.CurrentSalary,
		CurrentYear:   currentYear,
	})
	if err != nil {
		return ImpactResponse{}, fmt.Errorf("simulate career: %w", err)
	}

	fv, err := s.engine.Evaluate(fairvalue.Input{
		SectorKey:     res.SectorKey,
		GapModifier:   res.GapModifier,
		Role:          strings.TrimSpace(req.RoleLevel),
		State:         loc.State,
		StartYear:     req.StartYear,
		CurrentSalary: req.CurrentSalary,
		MonthlyRent:   req.CurrentRent,
		Path:          path,
	})
	if err != nil {
		return ImpactResponse{}, fmt.Errorf("evaluate fair value: %w", err)
	}
	if fv.Occupation.Warning != "" {
		warnings = append(warnings, fv.Occupation.Warning)
		metrics.RecordRoleFallback()
		s.logger.Warn(ctx, "unknown role level, using wage proxy",
			logger.String("role", req.RoleLevel), logger.String("sector", res.SectorKey))
	}
	metrics.RecordCareerYears(len(fv.Records))
	if fv.Totals.CappedYears > 0 {
		metrics.RecordCeilingCapped(fv.Totals.CappedYears)
	}

	levels := s.cpi.Levels(ctx)
	d, err := deflator.New(levels.Values, s.baseYear)
	if err != nil {
		return ImpactResponse{}, fmt.Errorf("build deflator: %w", err)
	}
	realRecords, missing := d.Records(fv.Records)
	if len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("%v: years %v reported in nominal dollars", deflator.ErrMissingYear, missing))
		metrics.RecordDeflatorMissing(len(missing))
		s.logger.Warn(ctx, "price index missing for some years", logger.Any("years", missing))
	}

	var unpaidReal, rentReal float64
	for _, r := range realRecords {
		unpaidReal += r.UnpaidLaborReal
		rentReal += r.ExcessRentReal
	}

	run := model.NewRun(runKey(req, currentYear, levels), fv.Records)
	bens := s.benefits.For(res.SectorKey, req.CurrentSalary/s.hoursPerYear)
	t := fv.Totals

	resp := ImpactResponse{
		CalculationID: run.ID.String(),
		Summary: ImpactSummary{
			CumulativeEconomicImpact:        cents(t.CumulativeEconomicImpact),
			CumulativeEconomicImpactReal:    cents(unpaidReal + rentReal),
			UnrealizedProductivityGains:     cents(t.UnrealizedProductivityGains),
			UnrealizedProductivityGainsReal: cents(unpaidReal),
			ExcessRentBurden:                cents(t.ExcessRentBurden),
			ExcessRentBurdenReal:            cents(rentReal),
			TotalIncome:                     cents(t.TotalIncome),
			TotalFairValue:                  cents(t.TotalFairValue),
			AverageAnnualGap:                cents(t.AverageAnnualGap),
			Years:                           t.Years,
			CappedYears:                     t.CappedYears,
			StartYear:                       req.StartYear,
			EndYear:                         currentYear,
			RentRatio:                       ratio(fv.RentRatio),
			Sector:                          res.SectorKey,
			GapModifier:                     res.GapModifier,
			Occupation:                      fv.Occupation,
			Benefits: ImpactBenefits{
				Result:            bens,
				TotalCompensation: cents(bens.Apply(req.CurrentSalary)),
			},
		},
		YearlyBreakdown:     make([]YearRow, len(run.Records)),
		YearlyBreakdownReal: make([]model.DeflatedYearRecord, len(realRecords)),
		GapDecomposition:    s.decomposer.Decompose(unpaidReal, res.SectorKey),
		Methodology:         s.methodology(),
		DataProvenance:      s.provenance(levels, res, loc.State, loc.ZIP, missing),
		Warnings:            warnings,
	}
	resp.Summary.Occupation.Value = ratio(resp.Summary.Occupation.Value)
	resp.GapDecomposition = roundDecomposition(resp.GapDecomposition)

	for i, r := range run.Records {
		resp.YearlyBreakdown[i] = YearRow{CareerYearRecord: roundRecord(r), Factors: roundDetail(fv.Details[i])}
	}
	for i, r := range realRecords {
		resp.YearlyBreakdownReal[i] = roundDeflated(r)
	}

	s.logger.Debug(ctx, "impact calculated",
		logger.String("calculationID", resp.CalculationID),
		logger.String("sector", res.SectorKey),
		logger.Int("years", t.Years),
		logger.Float64("cumulativeImpact", resp.Summary.CumulativeEconomicImpact),
		logger.String("cpiSource", string(levels.Source)),
	)

	return resp, nil
}

// runKey identifies a calculation by everything its output depends on.
func runKey(req ImpactRequest, currentYear int, levels cpi.Levels) []byte {
	req.CurrentYear = currentYear
	b, _ := json.Marshal(req)
	return fmt.Appendf(b, "|%s|%s|%s", reference.Version, levels.Source, levels.Series)
}

func roundRecord(r model.CareerYearRecord) model.CareerYearRecord {
	return model.CareerYearRecord{
		Year:           r.Year,
		Income:         cents(r.Income),
		StandardIncome: cents(r.StandardIncome),
		FairValue:      cents(r.FairValue),
		UnpaidLabor:    cents(r.UnpaidLabor),
		ExcessRent:     cents(r.ExcessRent),
	}
}

func roundDeflated(r model.DeflatedYearRecord) model.DeflatedYearRecord {
	r.CareerYearRecord = roundRecord(r.CareerYearRecord)
	r.IncomeReal = cents(r.IncomeReal)
	r.StandardIncomeReal = cents(r.StandardIncomeReal)
	r.FairValueReal = cents(r.FairValueReal)
	r.UnpaidLaborReal = cents(r.UnpaidLaborReal)
	r.ExcessRentReal = cents(r.ExcessRentReal)
	return r
}

func roundDetail(d fairvalue.YearDetail) fairvalue.YearDetail {
	d.CareerRatio = ratio(d.CareerRatio)
	d.AbsoluteRatio = ratio(d.AbsoluteRatio)
	d.BlendWeight = ratio(d.BlendWeight)
	d.BlendedRatio = ratio(d.BlendedRatio)
	d.Multiplier = ratio(d.Multiplier)
	d.Damping = ratio(d.Damping)
	d.Median = cents(d.Median)
	d.Ceiling = cents(d.Ceiling)
	return d
}

func roundDecomposition(g model.GapDecomposition) model.GapDecomposition {
	for _, sh := range []*model.Share{&g.Depreciation, &g.TaxesOnProduction, &g.NetProfit} {
		sh.Amount = cents(sh.Amount)
		sh.Percentage = round(sh.Percentage, 2)
	}
	g.NonLaborShare = ratio(g.NonLaborShare)
	return g
}
