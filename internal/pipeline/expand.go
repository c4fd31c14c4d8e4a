package pipeline

import (
	"context"
	"fmt"
	"strings"

	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

// Expander attributes offers to loyalty programs. In "all" mode each offer
// keeps its operating program; otherwise offers are filtered to the requested
// programs and fanned out across partnerships, one view per program.
type Expander struct {
	calc    *MileageCalculator
	factory FallbackFactory
}

func NewExpander(calc *MileageCalculator, factory FallbackFactory) *Expander {
	return &Expander{calc: calc, factory: factory}
}

// Expand returns the views and whether the empty-result recovery ran.
func (e *Expander) Expand(ctx context.Context, sc domain.SearchContext, route RouteInfo, offers []domain.RawOffer) ([]domain.OfferView, bool) {
	reqs := make(map[domain.Program]domain.Requirement)
	requirement := func(p domain.Program) domain.Requirement {
		r, ok := reqs[p]
		if !ok {
			r = e.calc.Requirement(ctx, p, route, sc.Date)
			reqs[p] = r
		}
		return r
	}

	views := make([]domain.OfferView, 0, len(offers))
	for _, o := range offers {
		carrier := reference.ResolveCarrier(o.CarrierID)
		operating := reference.NaturalProgram(carrier)

		if sc.Mode == domain.ModeAll {
			views = append(views, newView(o, carrier, operating, operating, requirement(operating)))
			continue
		}
		for _, p := range sc.Programs {
			if reference.CanRedeem(p, operating) {
				views = append(views, newView(o, carrier, p, operating, requirement(p)))
			}
		}
	}
	if len(views) > 0 || sc.Mode == domain.ModeAll || len(sc.Programs) == 0 {
		return views, false
	}

	for _, po := range e.factory.ForPrograms(route, sc.Programs) {
		carrier := reference.ResolveCarrier(po.Offer.CarrierID)
		operating := reference.NaturalProgram(carrier)
		views = append(views, newView(po.Offer, carrier, po.Program, operating, requirement(po.Program)))
	}
	return views, true
}

func newView(o domain.RawOffer, carrier domain.Carrier, p, operating domain.Program, req domain.Requirement) domain.OfferView {
	prov := o.Provenance
	if prov == "" {
		prov = domain.ProvenanceReal
	}
	return domain.OfferView{
		DisplayName:       displayName(o, carrier),
		Carrier:           carrier,
		FlightNumber:      o.FlightNumber,
		Departure:         strings.TrimSpace(o.Departure),
		Arrival:           strings.TrimSpace(o.Arrival),
		Program:           p,
		ProgramLabel:      programLabel(p, operating, carrier),
		RequiredAmount:    req.Amounts,
		RequirementStatus: req.Status,
		Price:             o.Price,
		Provenance:        prov,
	}
}

func displayName(o domain.RawOffer, c domain.Carrier) string {
	name := reference.CarrierName(c)
	if c == domain.CarrierUnsupported {
		name = strings.TrimSpace(o.CarrierID)
	}
	if o.FlightNumber != "" {
		return name + " " + o.FlightNumber
	}
	return name
}

func programLabel(p, operating domain.Program, c domain.Carrier) string {
	switch p {
	case domain.ProgramUnsupported:
		return "Unsupported carrier"
	case domain.ProgramNone:
		return "Cash only"
	}
	lp, _ := reference.LookupProgram(p)
	if p == operating {
		return lp.Name
	}
	return fmt.Sprintf("%s (partner award on %s)", lp.Name, reference.CarrierName(c))
}
