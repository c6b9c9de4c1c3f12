package reference

import (
	"sort"
	"strconv"
	"strings"
)

// regionalPriceParities are BEA state RPPs (all items, 2022) divided by 100.
var regionalPriceParities = map[string]float64{
	"AL": 0.870, "AK": 1.017, "AZ": 0.997, "AR": 0.860, "CA": 1.127,
	"CO": 1.043, "CT": 1.037, "DE": 0.985, "DC": 1.102, "FL": 1.031,
	"GA": 0.936, "HI": 1.123, "ID": 0.930, "IL": 0.998, "IN": 0.900,
	"IA": 0.876, "KS": 0.893, "KY": 0.879, "LA": 0.891, "ME": 0.979,
	"MD": 1.047, "MA": 1.081, "MI": 0.929, "MN": 0.969, "MS": 0.862,
	"MO": 0.898, "MT": 0.953, "NE": 0.902, "NV": 0.977, "NH": 1.050,
	"NJ": 1.089, "NM": 0.898, "NY": 1.083, "NC": 0.918, "ND": 0.887,
	"OH": 0.902, "OK": 0.876, "OR": 1.036, "PA": 0.966, "RI": 0.995,
	"SC": 0.910, "SD": 0.883, "TN": 0.903, "TX": 0.968, "UT": 0.977,
	"VT": 1.000, "VA": 1.014, "WA": 1.086, "WV": 0.868, "WI": 0.920,
	"WY": 0.930,
}

// stateOutputFactors are real GDP per worker relative to the national
// figure. Unlisted states use 1.0.
var stateOutputFactors = map[string]float64{
	"AL": 0.82, "AR": 0.80, "CA": 1.18, "CT": 1.12, "DC": 1.45,
	"DE": 1.10, "FL": 0.90, "ID": 0.84, "KY": 0.85, "MA": 1.16,
	"ME": 0.84, "MS": 0.72, "MT": 0.83, "NJ": 1.08, "NM": 0.86,
	"NY": 1.22, "OK": 0.88, "SC": 0.83, "TX": 1.05, "WA": 1.17,
	"WV": 0.78, "IL": 1.05, "AK": 1.08, "WY": 1.06, "ND": 1.03,
}

// zipRange maps an inclusive range of 3-digit ZIP prefixes to a state.
type zipRange struct {
	from, to int
	state    string
}

var zipPrefixRanges = []zipRange{
	{5, 5, "NY"}, {10, 27, "MA"}, {28, 29, "RI"}, {30, 38, "NH"}, {39, 49, "ME"},
	{50, 54, "VT"}, {55, 55, "MA"}, {56, 59, "VT"}, {60, 69, "CT"}, {70, 89, "NJ"},
	{100, 149, "NY"}, {150, 196, "PA"}, {197, 199, "DE"}, {200, 205, "DC"}, {206, 219, "MD"},
	{220, 246, "VA"}, {247, 268, "WV"}, {270, 289, "NC"}, {290, 299, "SC"}, {300, 319, "GA"},
	{320, 349, "FL"}, {350, 369, "AL"}, {370, 385, "TN"}, {386, 397, "MS"}, {398, 399, "GA"},
	{400, 427, "KY"}, {430, 459, "OH"}, {460, 479, "IN"}, {480, 499, "MI"}, {500, 528, "IA"},
	{530, 549, "WI"}, {550, 567, "MN"}, {570, 577, "SD"}, {580, 588, "ND"}, {590, 599, "MT"},
	{600, 629, "IL"}, {630, 658, "MO"}, {660, 679, "KS"}, {680, 693, "NE"}, {700, 715, "LA"},
	{716, 729, "AR"}, {730, 731, "OK"}, {733, 733, "TX"},
	{734, 749, "OK"}, {750, 799, "TX"}, {800, 816, "CO"}, {820, 831, "WY"},
	{832, 838, "ID"}, {840, 847, "UT"}, {850, 865, "AZ"}, {870, 884, "NM"}, {885, 885, "TX"},
	{889, 898, "NV"}, {900, 961, "CA"}, {967, 968, "HI"}, {970, 979, "OR"}, {980, 994, "WA"},
	{995, 999, "AK"},
}

// StateForZIP resolves a 5-digit (or ZIP+4) US ZIP code to a state
// abbreviation using its 3-digit prefix.
func (t *Tables) StateForZIP(zip string) (string, bool) {
	zip = strings.TrimSpace(zip)
	if i := strings.IndexByte(zip, '-'); i >= 0 {
		zip = zip[:i]
	}
	if len(zip) != 5 {
		return "", false
	}
	prefix, err := strconv.Atoi(zip[:3])
	if err != nil {
		return "", false
	}
	if _, err := strconv.Atoi(zip[3:]); err != nil {
		return "", false
	}
	i := sort.Search(len(t.zips), func(i int) bool { return t.zips[i].to >= prefix })
	if i < len(t.zips) && t.zips[i].from <= prefix {
		return t.zips[i].state, true
	}
	return "", false
}

// States returns every state abbreviation with a price parity, sorted.
func (t *Tables) States() []string {
	out := make([]string, 0, len(t.rpp))
	for k := range t.rpp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
