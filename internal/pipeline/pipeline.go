// Package pipeline turns raw upstream offers plus loyalty reference data into
// ranked, program-attributed, valued offer views. Everything here is pure
// computation; the only I/O of a search happens before Run is called.
package pipeline

import (
	"context"

	"milecompare/internal/domain"
)

const DateLayout = "2006-01-02"

// Trace reports what a run did, for logging and metrics.
type Trace struct {
	RawOffers    int
	Normalized   int
	Supplemented int
	Recovered    bool
	Views        int
}

type Pipeline struct {
	distances *DistanceResolver
	calc      *MileageCalculator
	expander  *Expander
	factory   FallbackFactory
}

func New(charts domain.ChartRegistry) *Pipeline {
	calc := NewMileageCalculator(charts)
	factory := FallbackFactory{}
	return &Pipeline{
		distances: NewDistanceResolver(0),
		calc:      calc,
		expander:  NewExpander(calc, factory),
		factory:   factory,
	}
}

// Route resolves distance and market classification for a request.
func (p *Pipeline) Route(sc domain.SearchContext) RouteInfo {
	return NewRouteInfo(sc.Origin, sc.Destination, p.distances.Resolve(sc.Origin, sc.Destination))
}

// UpstreamFallback is the offer set substituted when the upstream fetch fails.
func (p *Pipeline) UpstreamFallback(sc domain.SearchContext) []domain.RawOffer {
	return p.factory.ForUpstreamFailure(p.Route(sc))
}

// Run executes the stages in order: resolve, normalize, supplement,
// filter/expand, value, assemble.
func (p *Pipeline) Run(ctx context.Context, sc domain.SearchContext, raw []domain.RawOffer) (domain.SearchResult, Trace) {
	tr := Trace{RawOffers: len(raw)}
	route := p.Route(sc)

	offers := Normalize(raw, sc.ShowAllTimeSlots)
	tr.Normalized = len(offers)

	offers = Supplement(route, offers, p.factory)
	tr.Supplemented = len(offers) - tr.Normalized

	views, recovered := p.expander.Expand(ctx, sc, route, offers)
	tr.Recovered = recovered

	for i := range views {
		Value(&views[i], sc.Season, route)
	}
	tr.Views = len(views)

	return Assemble(sc, route, views), tr
}
