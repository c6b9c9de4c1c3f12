package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/internal/domain/model"
)

var (
	requestFile string
	impactReq   service.ImpactRequest
	worthReq    service.WorthRequest
	scriptReq   service.NegotiationRequest
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Calculate the cumulative career economic impact",
	Example: "  fairwage impact --start-year 2010 --start-salary 40000 --current-salary 70000 --rent 1500 --industry manufacturing\n" +
		"  fairwage impact --request worker.yaml -o yaml",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCalc(cmd, model.JobImpact, &impactReq)
	},
}

var worthCmd = &cobra.Command{
	Use:     "worth",
	Short:   "Compare current pay with the experience-adjusted market median",
	Example: "  fairwage worth --wage 22.50 --frequency hourly --zip 94103 --years-experience 6",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCalc(cmd, model.JobWorth, &worthReq)
	},
}

var negotiationCmd = &cobra.Command{
	Use:     "negotiate",
	Short:   "Build a raise negotiation script",
	Example: "  fairwage negotiate --current-salary 52000 --market-median 61200 --years-at-company 2",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCalc(cmd, model.JobNegotiation, &scriptReq)
	},
}

func init() {
	f := impactCmd.Flags()
	f.IntVar(&impactReq.StartYear, "start-year", 0, "First year of the career")
	f.Float64Var(&impactReq.StartSalary, "start-salary", 0, "Annual salary in the first year")
	f.Float64Var(&impactReq.CurrentSalary, "current-salary", 0, "Current annual salary")
	f.Float64Var(&impactReq.CurrentRent, "rent", 0, "Current monthly rent")
	f.StringVar(&impactReq.Industry, "industry", "", "Industry name or sector key")
	f.StringVar(&impactReq.RoleLevel, "role", "", "Role level, e.g. entry, mid, senior")
	f.StringVar(&impactReq.ZIPCode, "zip", "", "ZIP code")
	f.StringVar(&impactReq.State, "state", "", "Two-letter state code")
	f.IntVar(&impactReq.CurrentYear, "current-year", 0, "Last year of the career (defaults to the latest data year)")
	f.StringVar(&requestFile, "request", "", "Read the request from a JSON or YAML file instead of flags")

	f = worthCmd.Flags()
	f.Float64Var(&worthReq.CurrentWage, "wage", 0, "Current pay per period")
	f.StringVar(&worthReq.Frequency, "frequency", "annual", "Pay period: hourly, weekly, biweekly, monthly or annual")
	f.StringVar(&worthReq.ZIPCode, "zip", "", "ZIP code")
	f.StringVar(&worthReq.State, "state", "", "Two-letter state code")
	f.IntVar(&worthReq.StartYear, "start-year", 0, "First year of the career")
	f.Float64Var(&worthReq.YearsExperience, "years-experience", 0, "Years of experience")
	f.StringVar(&worthReq.Industry, "industry", "", "Industry name or sector key")
	f.StringVar(&worthReq.RoleLevel, "role", "", "Role level")
	f.IntVar(&worthReq.CurrentYear, "current-year", 0, "Year of the comparison")
	f.StringVar(&requestFile, "request", "", "Read the request from a JSON or YAML file instead of flags")

	f = negotiationCmd.Flags()
	f.Float64Var(&scriptReq.CurrentSalary, "current-salary", 0, "Current annual salary")
	f.Float64Var(&scriptReq.MarketMedian, "market-median", 0, "Market median annual salary")
	f.Float64Var(&scriptReq.YearsAtCompany, "years-at-company", 0, "Tenure at the current employer")
	f.StringVar(&requestFile, "request", "", "Read the request from a JSON or YAML file instead of flags")

	rootCmd.AddCommand(impactCmd, worthCmd, negotiationCmd)
}

// runCalc runs one calculation through the same validation path as batch
// jobs and prints the result.
func runCalc(cmd *cobra.Command, kind string, req any) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if requestFile != "" {
		if err := readRequest(requestFile, req); err != nil {
			return err
		}
	}

	cfg, log, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	raw, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	out, err := svc.Process(ctx, model.Job{Kind: kind, Request: raw})
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, out)
}

// readRequest decodes a request file, choosing YAML by extension.
func readRequest(path string, req any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(req)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(req)
	}
	if err != nil {
		return fmt.Errorf("failed to parse request file %s: %w", path, err)
	}
	return nil
}
