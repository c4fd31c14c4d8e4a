package reference

import "strings"

// FallbackDistanceKm is used when neither table nor coordinates know a pair.
const FallbackDistanceKm = 1000

type pair struct{ from, to string }

// Published route distances (km). Stored one way only.
var distances = map[pair]int{
	{"HND", "ITM"}: 514,
	{"HND", "KIX"}: 553,
	{"HND", "UKB"}: 481,
	{"HND", "CTS"}: 894,
	{"HND", "SDJ"}: 286,
	{"HND", "KMQ"}: 341,
	{"HND", "HIJ"}: 665,
	{"HND", "FUK"}: 1041,
	{"HND", "NGS"}: 981,
	{"HND", "KMJ"}: 919,
	{"HND", "KOJ"}: 961,
	{"HND", "OKA"}: 1687,
	{"HND", "ISG"}: 1947,
	{"NRT", "CTS"}: 835,
	{"NRT", "FUK"}: 1082,
	{"NRT", "OKA"}: 1734,
	{"ITM", "CTS"}: 1190,
	{"ITM", "FUK"}: 532,
	{"ITM", "OKA"}: 1367,
	{"KIX", "OKA"}: 1364,
	{"NGO", "CTS"}: 986,
	{"NGO", "OKA"}: 1462,
	{"FUK", "OKA"}: 861,
	{"CTS", "OKA"}: 2239,

	{"NRT", "ICN"}: 1256,
	{"HND", "GMP"}: 1159,
	{"NRT", "PVG"}: 1753,
	{"HND", "PEK"}: 2104,
	{"NRT", "TPE"}: 2186,
	{"NRT", "HKG"}: 2926,
	{"NRT", "BKK"}: 4609,
	{"NRT", "SIN"}: 5351,
	{"NRT", "MNL"}: 2997,
	{"NRT", "GUM"}: 2523,
	{"HND", "HNL"}: 6196,
	{"NRT", "HNL"}: 6131,
	{"NRT", "LAX"}: 8753,
	{"HND", "LAX"}: 8815,
	{"NRT", "SFO"}: 8236,
	{"NRT", "SEA"}: 7691,
	{"NRT", "ORD"}: 10136,
	{"NRT", "JFK"}: 10838,
	{"NRT", "YVR"}: 7549,
	{"HND", "LHR"}: 9585,
	{"HND", "CDG"}: 9737,
	{"HND", "FRA"}: 9357,
	{"HND", "SYD"}: 7807,
}

// KnownDistance is an exact, directional table lookup.
func KnownDistance(from, to string) (int, bool) {
	km, ok := distances[pair{strings.ToUpper(from), strings.ToUpper(to)}]
	return km, ok
}
