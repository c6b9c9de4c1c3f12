// Package negotiation turns a worth gap into a structured raise conversation.
package negotiation

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
)

// Input are the facts a script is built from.
type Input struct {
	CurrentSalary  float64
	MarketMedian   float64
	YearsAtCompany float64
}

// CounterOffer is a fallback position.
type CounterOffer struct {
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Rationale string  `json:"rationale"`
}

// Script is a talk track in four parts.
type Script struct {
	TargetSalary  float64        `json:"targetSalary"`
	Gap           float64        `json:"gap"`
	GapPercent    float64        `json:"gapPercent"`
	Opening       string         `json:"opening"`
	Evidence      []string       `json:"evidence"`
	Resolution    string         `json:"resolution"`
	CounterOffers []CounterOffer `json:"counterOffers"`
}

// Minimum ask when the worker is already at or above market.
const retentionRaise = 0.03

var tmpl = template.Must(template.New("script").Funcs(template.FuncMap{"usd": usd}).Parse(`
{{define "opening"}}Thank you for making time. Over {{.Tenure}} here I have taken on more responsibility, and I would like to talk about bringing my pay in line with {{if .Below}}the market{{else}}the value I deliver{{end}}.{{end}}
{{define "market"}}The market median for this role is {{usd .Median}}; I currently earn {{usd .Current}}{{if .Below}}, which is {{usd .Gap}} ({{printf "%.1f" .GapPercent}}%) below it{{end}}.{{end}}
{{define "tenure"}}I have been with the company for {{.Tenure}}, and replacing an experienced employee typically costs far more than a raise.{{end}}
{{define "resolution"}}I am asking for a salary of {{usd .Target}}, effective next pay cycle. Can we agree on that today, or set a date to finalize it?{{end}}
`))

type view struct {
	Current, Median, Target, Gap, GapPercent float64
	Tenure                                   string
	Below                                    bool
}

// Build generates a script.
func Build(in Input) (Script, error) {
	if !finitePositive(in.CurrentSalary) || !finitePositive(in.MarketMedian) {
		return Script{}, fmt.Errorf("%w: salaries must be positive", ErrInvalidInput)
	}
	if in.YearsAtCompany < 0 || math.IsNaN(in.YearsAtCompany) {
		return Script{}, fmt.Errorf("%w: years at company must not be negative", ErrInvalidInput)
	}

	gap := in.MarketMedian - in.CurrentSalary
	v := view{
		Current: in.CurrentSalary,
		Median:  in.MarketMedian,
		Tenure:  tenure(in.YearsAtCompany),
		Below:   gap > 0,
	}
	if v.Below {
		v.Gap = gap
		v.GapPercent = gap / in.MarketMedian * 100
		v.Target = in.MarketMedian
	} else {
		v.Target = in.CurrentSalary * (1 + retentionRaise)
	}
	v.Target = roundTo(v.Target, 500)

	s := Script{
		TargetSalary: v.Target,
		Gap:          v.Gap,
		GapPercent:   v.GapPercent,
		Opening:      render("opening", v),
		Evidence:     []string{render("market", v), render("tenure", v)},
		Resolution:   render("resolution", v),
	}
	s.CounterOffers = counters(in, v)
	return s, nil
}

func counters(in Input, v view) []CounterOffer {
	mid := roundTo(in.CurrentSalary+(v.Target-in.CurrentSalary)/2, 500)
	return []CounterOffer{
		{Label: "split the difference", Amount: mid, Rationale: "Meet halfway now with a written review in six months."},
		{Label: "staged increase", Amount: v.Target, Rationale: fmt.Sprintf("Reach %s over two steps within twelve months.", usd(v.Target))},
		{Label: "non-cash compensation", Amount: in.CurrentSalary, Rationale: "Additional paid leave, training budget or remote days in lieu of part of the raise."},
	}
}

func render(name string, v view) string {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		// templates are static and parsed at init
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func tenure(years float64) string {
	switch {
	case years < 1:
		return "several months"
	case years < 1.5:
		return "one year"
	}
	return fmt.Sprintf("%s years", decimal.NewFromFloat(years).Round(0).String())
}

func usd(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
