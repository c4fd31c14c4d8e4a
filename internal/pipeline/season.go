package pipeline

import (
	"time"

	"milecompare/internal/domain"
)

type dayRange struct{ from, to int } // month*100+day, inclusive; from > to wraps the year end

func (r dayRange) contains(md int) bool {
	if r.from <= r.to {
		return md >= r.from && md <= r.to
	}
	return md >= r.from || md <= r.to
}

var (
	peakRanges = []dayRange{
		{1225, 105}, // year end
		{320, 406},  // spring break
		{427, 506},  // Golden Week
		{808, 820},  // Obon
	}
	offRanges = []dayRange{
		{110, 228},
		{407, 424},
		{1201, 1220},
	}
)

// SeasonFor derives the award season of a travel date. Peak wins over off.
func SeasonFor(d time.Time) domain.Season {
	md := int(d.Month())*100 + d.Day()
	for _, r := range peakRanges {
		if r.contains(md) {
			return domain.SeasonPeak
		}
	}
	for _, r := range offRanges {
		if r.contains(md) {
			return domain.SeasonOff
		}
	}
	return domain.SeasonRegular
}
