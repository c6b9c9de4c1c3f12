package worthgap

import (
	"fmt"
	"strings"
)

// Frequency is how often a quoted wage is paid.
type Frequency string

const (
	Hourly   Frequency = "hourly"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Annual   Frequency = "annual"
)

// ParseFrequency accepts the canonical names plus a few common spellings.
// An empty string is hourly.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hourly", "hour", "hr":
		return Hourly, nil
	case "weekly", "week":
		return Weekly, nil
	case "biweekly", "bi-weekly", "fortnightly":
		return Biweekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "annual", "annually", "yearly", "year", "salary":
		return Annual, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
}

// periods is the number of pay periods in a year.
func (f Frequency) periods(hoursPerYear float64) float64 {
	switch f {
	case Weekly:
		return 52
	case Biweekly:
		return 26
	case Monthly:
		return 12
	case Annual:
		return 1
	}
	return hoursPerYear
}

// ToHourly converts an amount paid at f to an hourly wage.
func (f Frequency) ToHourly(amount, hoursPerYear float64) float64 {
	if f == Hourly || f == "" {
		return amount
	}
	return amount * f.periods(hoursPerYear) / hoursPerYear
}
