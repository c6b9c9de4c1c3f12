package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/internal/domain/negotiation"
	"github.com/okian/fairwage/internal/domain/sector"
	"github.com/okian/fairwage/internal/domain/worthgap"
	"github.com/okian/fairwage/pkg/logger"
	"github.com/okian/fairwage/pkg/metrics"
)

// WorthRequest are the worker facts for a worth gap analysis.
type WorthRequest struct {
	CurrentWage     float64 `json:"current_wage" yaml:"current_wage" validate:"gt=0"`
	Frequency       string  `json:"frequency,omitempty" yaml:"frequency,omitempty" validate:"max=16"`
	ZIPCode         string  `json:"zip_code,omitempty" yaml:"zip_code,omitempty" validate:"omitempty,max=10"`
	State           string  `json:"state,omitempty" yaml:"state,omitempty" validate:"omitempty,len=2,alpha"`
	StartYear       int     `json:"start_year,omitempty" yaml:"start_year,omitempty" validate:"omitempty,gte=1900"`
	YearsExperience float64 `json:"years_experience,omitempty" yaml:"years_experience,omitempty" validate:"gte=0,lte=80"`
	Industry        string  `json:"industry,omitempty" yaml:"industry,omitempty" validate:"max=128"`
	RoleLevel       string  `json:"role_level,omitempty" yaml:"role_level,omitempty" validate:"max=64"`
	CurrentYear     int     `json:"current_year,omitempty" yaml:"current_year,omitempty" validate:"omitempty,gte=1975"`
}

// WorthResponse is a worth gap analysis with the gap split across
// non-labor value added.
type WorthResponse struct {
	worthgap.Result
	Sector           sector.Resolution      `json:"sector"`
	GapDecomposition model.GapDecomposition `json:"gapDecomposition"`
}

// Worth compares current pay with the regional market median.
func (s *Service) Worth(ctx context.Context, req WorthRequest) (WorthResponse, error) {
	if !s.running() {
		return WorthResponse{}, ErrNotStarted
	}
	start := time.Now()
	resp, err := s.worth(ctx, req)
	outcome := "ok"
	if err != nil {
		outcome = "invalid"
		s.failures.Add(1)
	} else {
		s.worths.Add(1)
	}
	metrics.RecordCalculation("worth_gap", outcome, float64(time.Since(start).Microseconds())/1000)
	return resp, err
}

func (s *Service) worth(ctx context.Context, req WorthRequest) (WorthResponse, error) {
	res := s.sectors.Resolve(req.Industry)
	if res.Fallback {
		metrics.RecordSectorFallback()
		s.logger.Warn(ctx, "unknown industry, using national average",
			logger.String("industry", req.Industry))
	}

	r, err := s.analyzer.Analyze(worthgap.Input{
		CurrentWage:     req.CurrentWage,
		Frequency:       worthgap.Frequency(req.Frequency),
		ZIP:             req.ZIPCode,
		State:           req.State,
		StartYear:       req.StartYear,
		YearsExperience: req.YearsExperience,
		SectorKey:       res.SectorKey,
		Role:            strings.TrimSpace(req.RoleLevel),
		CurrentYear:     req.CurrentYear,
	})
	if err != nil {
		return WorthResponse{}, fmt.Errorf("analyze worth gap: %w", err)
	}
	if res.Fallback {
		r.Warnings = append([]string{res.Warning}, r.Warnings...)
	}
	for _, w := range r.Warnings {
		s.logger.Warn(ctx, "worth gap warning", logger.String("warning", w))
	}

	resp := WorthResponse{
		Result:           roundWorth(r),
		Sector:           res,
		GapDecomposition: roundDecomposition(s.decomposer.Decompose(r.WorthGap.Annual, res.SectorKey)),
	}
	return resp, nil
}

// NegotiationRequest are the facts a raise script is built from.
type NegotiationRequest struct {
	CurrentSalary  float64 `json:"current_salary" yaml:"current_salary" validate:"gt=0"`
	MarketMedian   float64 `json:"market_median" yaml:"market_median" validate:"gt=0"`
	YearsAtCompany float64 `json:"years_at_company" yaml:"years_at_company" validate:"gte=0,lte=80"`
}

// Negotiation builds a raise conversation script.
func (s *Service) Negotiation(ctx context.Context, req NegotiationRequest) (negotiation.Script, error) {
	start := time.Now()
	script, err := negotiation.Build(negotiation.Input{
		CurrentSalary:  req.CurrentSalary,
		MarketMedian:   req.MarketMedian,
		YearsAtCompany: req.YearsAtCompany,
	})
	if err != nil {
		s.failures.Add(1)
		metrics.RecordCalculation("negotiation", "invalid", float64(time.Since(start).Microseconds())/1000)
		return negotiation.Script{}, fmt.Errorf("build script: %w", err)
	}
	s.scripts.Add(1)
	metrics.RecordCalculation("negotiation", "ok", float64(time.Since(start).Microseconds())/1000)
	return script, nil
}

func roundWage(w worthgap.Wage) worthgap.Wage {
	return worthgap.Wage{Hourly: cents(w.Hourly), Annual: cents(w.Annual)}
}

func roundWorth(r worthgap.Result) worthgap.Result {
	r.DeservedWage = roundWage(r.DeservedWage)
	r.CurrentWage = roundWage(r.CurrentWage)
	r.MarketMedian = roundWage(r.MarketMedian)
	r.ExperienceMultiplier = ratio(r.ExperienceMultiplier)
	r.WorthGap = worthgap.Gap{
		Hourly:  cents(r.WorthGap.Hourly),
		Annual:  cents(r.WorthGap.Annual),
		Percent: round(r.WorthGap.Percent, 2),
	}
	r.MarketData.MarketMedian = r.MarketMedian
	r.MarketData.ExperienceMultiplier = r.ExperienceMultiplier
	r.Benefits.CurrentTotalComp = cents(r.Benefits.CurrentTotalComp)
	r.Benefits.DeservedTotalComp = cents(r.Benefits.DeservedTotalComp)
	r.Benefits.Current.Multiplier = ratio(r.Benefits.Current.Multiplier)
	r.Benefits.Deserved.Multiplier = ratio(r.Benefits.Deserved.Multiplier)
	if r.LifetimeImpact != nil {
		li := *r.LifetimeImpact
		li.TotalGap = cents(li.TotalGap)
		li.TotalWithReturns = cents(li.TotalWithReturns)
		li.Projection = make([]worthgap.ProjectionYear, len(r.LifetimeImpact.Projection))
		for i, p := range r.LifetimeImpact.Projection {
			li.Projection[i] = worthgap.ProjectionYear{
				Year:                  p.Year,
				AnnualGap:             cents(p.AnnualGap),
				CumulativeGap:         cents(p.CumulativeGap),
				CumulativeWithReturns: cents(p.CumulativeWithReturns),
			}
		}
		r.LifetimeImpact = &li
	}
	return r
}
