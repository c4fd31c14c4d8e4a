package pipeline

import (
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"milecompare/internal/reference"
)

const earthRadiusKm = 6371.0

// DistanceResolver turns an airport pair into kilometres. It never fails:
// table, reversed table, great-circle from coordinates, then a constant.
type DistanceResolver struct {
	memo *lru.Cache[string, int]
}

func NewDistanceResolver(memoSize int) *DistanceResolver {
	if memoSize <= 0 {
		memoSize = 1024
	}
	memo, _ := lru.New[string, int](memoSize) // only fails for size <= 0
	return &DistanceResolver{memo: memo}
}

func (d *DistanceResolver) Resolve(a, b string) int {
	a, b = strings.ToUpper(strings.TrimSpace(a)), strings.ToUpper(strings.TrimSpace(b))
	if km, ok := reference.KnownDistance(a, b); ok {
		return km
	}
	if km, ok := reference.KnownDistance(b, a); ok {
		return km
	}

	key := pairKey(a, b)
	if km, ok := d.memo.Get(key); ok {
		return km
	}
	pa, okA := reference.LookupAirport(a)
	pb, okB := reference.LookupAirport(b)
	if !okA || !okB {
		return reference.FallbackDistanceKm
	}
	km := int(math.Round(haversine(pa.Lat, pa.Lon, pb.Lat, pb.Lon)))
	d.memo.Add(key, km)
	return km
}

// pairKey is order-independent so d(A,B) and d(B,A) share one entry.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
