package worthgap

import (
	"fmt"
	"time"

	"github.com/okian/fairwage/internal/domain/reference"
)

// DefaultMedianTTL is how long a market snapshot stays cached.
const DefaultMedianTTL = 24 * time.Hour

// Market is the regional wage picture for a location, sector and experience
// bucket. It is the unit stored in the median cache.
type Market struct {
	State          string                    `json:"state"`
	SectorKey      string                    `json:"sector"`
	Bucket         string                    `json:"experienceBucket"`
	PriceParity    float64                   `json:"regionalPriceParity"`
	Wages          reference.WagePercentiles `json:"wages"`
	AvgTenureYears float64                   `json:"sectorAverageTenure"`
	ReferenceYear  int                       `json:"referenceYear"`
}

// Cache memoizes market snapshots. Implementations must be safe for
// concurrent use; an overwritten entry is acceptable.
type Cache interface {
	Get(key string) (Market, bool)
	Set(key string, value Market, ttl time.Duration)
}

// Bucket returns the experience band for years.
func Bucket(years float64) string {
	switch {
	case years <= 2:
		return "0-2"
	case years <= 5:
		return "3-5"
	case years <= 10:
		return "6-10"
	case years <= 20:
		return "11-20"
	}
	return "21+"
}

// CacheKey is location + industry + experience bucket.
func CacheKey(state, sectorKey string, years float64) string {
	if state == "" {
		state = "US"
	}
	return fmt.Sprintf("%s|%s|%s", state, sectorKey, Bucket(years))
}

type noCache struct{}

func (noCache) Get(string) (Market, bool)           { return Market{}, false }
func (noCache) Set(string, Market, time.Duration) {}
