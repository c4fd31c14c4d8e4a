// Package reference holds the read-only tables the pipeline is computed
// against: airports, precomputed distances, programs, carrier aliases,
// partnerships, default mile charts and fuel surcharges.
package reference

import (
	"strings"

	"milecompare/internal/domain"
)

type Airport struct {
	Code    string
	Lat     float64
	Lon     float64
	Country string
}

var airports = map[string]Airport{
	// Japan (domestic market)
	"HND": {"HND", 35.5494, 139.7798, "JP"},
	"NRT": {"NRT", 35.7647, 140.3864, "JP"},
	"ITM": {"ITM", 34.7855, 135.4382, "JP"},
	"KIX": {"KIX", 34.4347, 135.2440, "JP"},
	"UKB": {"UKB", 34.6328, 135.2239, "JP"},
	"NGO": {"NGO", 34.8584, 136.8054, "JP"},
	"CTS": {"CTS", 42.7752, 141.6923, "JP"},
	"SDJ": {"SDJ", 38.1397, 140.9170, "JP"},
	"KMQ": {"KMQ", 36.3946, 136.4068, "JP"},
	"HIJ": {"HIJ", 34.4361, 132.9194, "JP"},
	"FUK": {"FUK", 33.5859, 130.4511, "JP"},
	"NGS": {"NGS", 32.9169, 129.9136, "JP"},
	"KMJ": {"KMJ", 32.8373, 130.8551, "JP"},
	"KOJ": {"KOJ", 31.8034, 130.7194, "JP"},
	"OKA": {"OKA", 26.1958, 127.6459, "JP"},
	"ISG": {"ISG", 24.3964, 124.2450, "JP"},

	"ICN": {"ICN", 37.4602, 126.4407, "KR"},
	"GMP": {"GMP", 37.5583, 126.7906, "KR"},
	"PVG": {"PVG", 31.1443, 121.8083, "CN"},
	"PEK": {"PEK", 40.0799, 116.6031, "CN"},
	"TPE": {"TPE", 25.0797, 121.2342, "TW"},
	"HKG": {"HKG", 22.3080, 113.9185, "HK"},
	"BKK": {"BKK", 13.6900, 100.7501, "TH"},
	"SIN": {"SIN", 1.3644, 103.9915, "SG"},
	"MNL": {"MNL", 14.5086, 121.0198, "PH"},
	"GUM": {"GUM", 13.4834, 144.7960, "GU"},
	"HNL": {"HNL", 21.3187, -157.9225, "US"},
	"OGG": {"OGG", 20.8986, -156.4305, "US"},
	"KOA": {"KOA", 19.7388, -156.0456, "US"},
	"LAX": {"LAX", 33.9416, -118.4085, "US"},
	"SFO": {"SFO", 37.6213, -122.3790, "US"},
	"SEA": {"SEA", 47.4502, -122.3088, "US"},
	"ORD": {"ORD", 41.9742, -87.9073, "US"},
	"JFK": {"JFK", 40.6413, -73.7781, "US"},
	"YVR": {"YVR", 49.1967, -123.1815, "CA"},
	"LHR": {"LHR", 51.4700, -0.4543, "GB"},
	"CDG": {"CDG", 49.0097, 2.5479, "FR"},
	"FRA": {"FRA", 50.0379, 8.5622, "DE"},
	"SYD": {"SYD", -33.9399, 151.1753, "AU"},
}

var countryRegions = map[string]domain.Region{
	"KR": domain.RegionKorea,
	"CN": domain.RegionEastAsia,
	"TW": domain.RegionEastAsia,
	"HK": domain.RegionEastAsia,
	"TH": domain.RegionSoutheastAsia,
	"SG": domain.RegionSoutheastAsia,
	"PH": domain.RegionSoutheastAsia,
	"US": domain.RegionNorthAmerica,
	"CA": domain.RegionNorthAmerica,
	"GB": domain.RegionEurope,
	"FR": domain.RegionEurope,
	"DE": domain.RegionEurope,
	"AU": domain.RegionOceania,
}

// airport-level overrides win over country classification
var regionOverrides = map[string]domain.Region{
	"HNL": domain.RegionHawaii,
	"OGG": domain.RegionHawaii,
	"KOA": domain.RegionHawaii,
}

func LookupAirport(code string) (Airport, bool) {
	a, ok := airports[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// IsDomestic reports whether code belongs to the Japanese domestic market.
func IsDomestic(code string) bool {
	a, ok := LookupAirport(code)
	return ok && a.Country == "JP"
}

// RegionOf classifies a foreign airport into an international region.
func RegionOf(code string) domain.Region {
	code = strings.ToUpper(strings.TrimSpace(code))
	if r, ok := regionOverrides[code]; ok {
		return r
	}
	a, ok := airports[code]
	if !ok {
		return domain.RegionUnknown
	}
	if r, ok := countryRegions[a.Country]; ok {
		return r
	}
	return domain.RegionUnknown
}
