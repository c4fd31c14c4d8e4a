package pipeline

import (
	"sort"

	"milecompare/internal/domain"
)

const (
	DefaultLimit  = 10
	AllSlotsLimit = 20
)

// Assemble sorts and caps views and wraps them with route and season. The
// input slice is not modified.
func Assemble(sc domain.SearchContext, route RouteInfo, views []domain.OfferView) domain.SearchResult {
	out := append([]domain.OfferView(nil), views...)

	if sc.SortBy == domain.SortByDeparture {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Departure != out[j].Departure {
				return out[i].Departure < out[j].Departure
			}
			return valueGreater(out[i], out[j])
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			if valueGreater(out[i], out[j]) {
				return true
			}
			if valueGreater(out[j], out[i]) {
				return false
			}
			return out[i].Departure < out[j].Departure
		})
	}

	limit := DefaultLimit
	if sc.ShowAllTimeSlots {
		limit = AllSlotsLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}

	estimated := false
	for _, v := range out {
		if v.Provenance == domain.ProvenanceSynthetic {
			estimated = true
			break
		}
	}

	return domain.SearchResult{
		Route: domain.Route{
			Origin:      route.Origin,
			Destination: route.Destination,
			DistanceKm:  route.DistanceKm,
		},
		Date:       sc.Date.Format(DateLayout),
		Season:     sc.Season,
		Passengers: sc.Passengers,
		Estimated:  estimated,
		Offers:     out,
	}
}

// valueGreater orders by value per unit, with "not applicable" last.
func valueGreater(a, b domain.OfferView) bool {
	switch {
	case a.ValuePerUnit == nil:
		return false
	case b.ValuePerUnit == nil:
		return true
	default:
		return *a.ValuePerUnit > *b.ValuePerUnit
	}
}
