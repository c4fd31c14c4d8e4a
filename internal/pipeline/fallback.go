package pipeline

import (
	"fmt"
	"time"

	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

const (
	fallbackSource = "fallback"
	defaultSeats   = 9

	rosterBasePrice = 15000
	rosterStep      = 2000
)

// departure slots the roster supplement rotates through
var rosterSlots = []string{"07:00", "09:30", "12:15", "15:45", "18:30", "20:10"}

// departure slots used when a program filter leaves nothing
var programSlots = []string{"07:30", "12:30", "18:30"}

type upstreamTemplate struct {
	carrier domain.Carrier
	dep     string
	offset  int
}

// the fixed set served when the upstream source fails or times out
var upstreamTemplates = []upstreamTemplate{
	{domain.CarrierANA, "08:00", 0},
	{domain.CarrierJAL, "09:30", 500},
	{domain.CarrierANA, "13:00", 1000},
	{domain.CarrierJAL, "17:30", 1500},
}

// ProgramOffer is a synthetic offer already bound to the program it was made for.
type ProgramOffer struct {
	Program domain.Program
	Offer   domain.RawOffer
}

// FallbackFactory is the single source of synthetic offers. Everything it
// returns is deterministic for its inputs and tagged ProvenanceSynthetic.
type FallbackFactory struct{}

// ForUpstreamFailure returns the fixed replacement set for a failed fetch.
func (FallbackFactory) ForUpstreamFailure(route RouteInfo) []domain.RawOffer {
	base := estimatedFare(route.DistanceKm)
	out := make([]domain.RawOffer, 0, len(upstreamTemplates))
	for i, t := range upstreamTemplates {
		out = append(out, synthetic(t.carrier, i+1, t.dep, base+t.offset, route))
	}
	return out
}

// ForRoster fills in one offer per missing roster carrier. Price and slot
// depend on the carrier's position in the roster.
func (FallbackFactory) ForRoster(route RouteInfo, roster []domain.Carrier, present map[domain.Carrier]bool) []domain.RawOffer {
	var out []domain.RawOffer
	for i, c := range roster {
		if present[c] {
			continue
		}
		dep := rosterSlots[i%len(rosterSlots)]
		out = append(out, synthetic(c, i+1, dep, rosterBasePrice+i*rosterStep, route))
	}
	return out
}

// ForPrograms builds a program-attributed set across programSlots for each
// requested program.
func (FallbackFactory) ForPrograms(route RouteInfo, programs []domain.Program) []ProgramOffer {
	base := estimatedFare(route.DistanceKm)
	var out []ProgramOffer
	for pi, p := range programs {
		lp, ok := reference.LookupProgram(p)
		if !ok || !p.Redeemable() {
			continue
		}
		carrier := lp.Flagship
		if route.Domestic && lp.DomesticCarrier != "" {
			carrier = lp.DomesticCarrier
		}
		for si, dep := range programSlots {
			price := base + si*1000 + pi*500
			out = append(out, ProgramOffer{
				Program: p,
				Offer:   synthetic(carrier, pi*len(programSlots)+si+1, dep, price, route),
			})
		}
	}
	return out
}

// estimatedFare is a distance-based one-way fare, rounded to 100 JPY.
func estimatedFare(km int) int {
	fare := 10000 + 12*km
	return (fare + 50) / 100 * 100
}

func synthetic(c domain.Carrier, n int, dep string, price int, route RouteInfo) domain.RawOffer {
	o := domain.RawOffer{
		CarrierID:    string(c),
		FlightNumber: fmt.Sprintf("%s%04d", c, 9000+n),
		Departure:    dep,
		Price:        price,
		Seats:        defaultSeats,
		Source:       fallbackSource,
		Provenance:   domain.ProvenanceSynthetic,
	}
	if route.Domestic {
		o.Arrival = arrivalAfter(dep, blockMinutes(route.DistanceKm))
	}
	return o
}

// blockMinutes estimates gate-to-gate time at 750 km/h plus 30 minutes taxi,
// rounded up to 5 minutes.
func blockMinutes(km int) int {
	m := 30 + km*60/750
	if r := m % 5; r != 0 {
		m += 5 - r
	}
	return m
}

func arrivalAfter(dep string, minutes int) string {
	t, err := time.Parse("15:04", dep)
	if err != nil {
		return ""
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}
