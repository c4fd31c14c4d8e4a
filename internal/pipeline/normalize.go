package pipeline

import (
	"strconv"
	"strings"

	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

// MaxPerCarrier is the diversification threshold: a carrier with more offers
// than this is collapsed to its cheapest one.
const MaxPerCarrier = 2

// carrierGroup is the canonical carrier when known, else the raw identifier,
// so "NH", "ANA" and "全日空" land in one group.
func carrierGroup(id string) string {
	if c := reference.ResolveCarrier(id); c != domain.CarrierUnsupported {
		return string(c)
	}
	return "?" + strings.ToUpper(strings.TrimSpace(id))
}

// dedupKey uses the carrier group, so one flight listed under two aliases
// counts once.
func dedupKey(o domain.RawOffer) string {
	return carrierGroup(o.CarrierID) + "|" + strconv.Itoa(o.Price) + "|" + strings.TrimSpace(o.Departure)
}

// Normalize drops exact repeats and caps each carrier's share of the list.
// Relative order of retained offers is preserved. With showAll nothing is
// removed.
func Normalize(offers []domain.RawOffer, showAll bool) []domain.RawOffer {
	if showAll {
		return append([]domain.RawOffer(nil), offers...)
	}

	seen := make(map[string]struct{}, len(offers))
	unique := make([]domain.RawOffer, 0, len(offers))
	for _, o := range offers {
		k := dedupKey(o)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, o)
	}

	groups := make(map[string][]int)
	for i, o := range unique {
		g := carrierGroup(o.CarrierID)
		groups[g] = append(groups[g], i)
	}

	drop := make(map[int]bool)
	for _, idx := range groups {
		if len(idx) <= MaxPerCarrier {
			continue
		}
		cheapest := idx[0]
		for _, i := range idx[1:] {
			if unique[i].Price < unique[cheapest].Price {
				cheapest = i
			}
		}
		for _, i := range idx {
			if i != cheapest {
				drop[i] = true
			}
		}
	}

	out := make([]domain.RawOffer, 0, len(unique)-len(drop))
	for i, o := range unique {
		if !drop[i] {
			out = append(out, o)
		}
	}
	return out
}
