package pipeline

import (
	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

// Supplement adds one synthetic offer for each expected domestic carrier that
// the upstream list lacks. Routes outside the domestic market are untouched.
func Supplement(route RouteInfo, offers []domain.RawOffer, factory FallbackFactory) []domain.RawOffer {
	if !route.Domestic {
		return offers
	}
	present := make(map[domain.Carrier]bool, len(offers))
	for _, o := range offers {
		present[reference.ResolveCarrier(o.CarrierID)] = true
	}
	extra := factory.ForRoster(route, reference.ExpectedRoster(), present)
	if len(extra) == 0 {
		return offers
	}
	out := make([]domain.RawOffer, 0, len(offers)+len(extra))
	out = append(out, offers...)
	return append(out, extra...)
}
