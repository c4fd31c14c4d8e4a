package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"milecompare/internal/adapters/observability"
	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
	"milecompare/internal/reference"
)

// SearchService validates a request, fetches raw offers once (cache first,
// bounded by timeout) and runs the pipeline. Upstream failures never reach
// the caller; the fallback set is served instead.
type SearchService struct {
	source   domain.OfferSource
	cache    domain.Cache
	pipe     *pipeline.Pipeline
	timeout  time.Duration
	cacheTTL time.Duration
	group    singleflight.Group
	now      func() time.Time
}

func NewSearchService(src domain.OfferSource, c domain.Cache, p *pipeline.Pipeline, timeout, ttl time.Duration) *SearchService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SearchService{
		source:   src,
		cache:    c,
		pipe:     p,
		timeout:  timeout,
		cacheTTL: ttl,
		now:      time.Now,
	}
}

func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	sc, err := ValidateSearch(req, s.now())
	if err != nil {
		return domain.SearchResult{}, err
	}

	raw := s.fetch(ctx, sc)
	res, tr := s.pipe.Run(ctx, sc, raw)

	if tr.Supplemented > 0 {
		observability.ObserveFallback("roster")
	}
	if tr.Recovered {
		observability.ObserveFallback("empty_filter")
		log.Info().
			Str("route", sc.Origin+"-"+sc.Destination).
			Strs("programs", programStrings(sc.Programs)).
			Msg("no offers matched requested programs; serving synthetic set")
	}
	observability.ObserveOffers(len(res.Offers))
	log.Debug().
		Str("route", sc.Origin+"-"+sc.Destination).
		Int("raw", tr.RawOffers).
		Int("normalized", tr.Normalized).
		Int("supplemented", tr.Supplemented).
		Int("views", tr.Views).
		Int("returned", len(res.Offers)).
		Msg("search completed")
	return res, nil
}

// fetch returns upstream offers or, on error or timeout, the fallback set.
// Identical concurrent searches share one upstream call.
func (s *SearchService) fetch(ctx context.Context, sc domain.SearchContext) []domain.RawOffer {
	q := domain.OfferQuery{
		Origin:      sc.Origin,
		Destination: sc.Destination,
		Date:        sc.Date,
		Passengers:  sc.Passengers,
		ReturnDate:  sc.ReturnDate,
	}
	key := offersKey(q)

	if s.cache != nil {
		var cached []domain.RawOffer
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached
		}
	}

	// the shared fetch outlives whichever caller started it
	ch := s.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		offers, err := s.source.SearchOffers(fctx, q)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.Set(fctx, key, offers, int(s.cacheTTL.Seconds()))
		}
		return offers, nil
	})
	var (
		v   any
		err error
	)
	select {
	case res := <-ch:
		v, err = res.Val, res.Err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		ev := log.Warn().Err(err).Str("route", sc.Origin+"-"+sc.Destination)
		if errors.Is(err, context.DeadlineExceeded) {
			ev = ev.Dur("timeout", s.timeout)
		}
		ev.Msg("upstream offers unavailable; serving fallback set")
		observability.ObserveFallback("upstream")
		return s.pipe.UpstreamFallback(sc)
	}
	return v.([]domain.RawOffer)
}

func offersKey(q domain.OfferQuery) string {
	ret := "-"
	if q.ReturnDate != nil {
		ret = q.ReturnDate.Format(pipeline.DateLayout)
	}
	return fmt.Sprintf("offers:%s:%s:%s:%s:%d",
		q.Origin, q.Destination, q.Date.Format(pipeline.DateLayout), ret, q.Passengers)
}

func programStrings(ps []domain.Program) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

// ChartQueries is the read side of the mile-chart registry.
type ChartQueries struct {
	reg domain.ChartRegistry
}

func NewChartQueries(reg domain.ChartRegistry) *ChartQueries {
	return &ChartQueries{reg: reg}
}

// Chart returns the chart of programID effective on date ("" = today).
func (q *ChartQueries) Chart(ctx context.Context, programID, date string) (domain.MileChart, error) {
	p, ok := reference.ResolveProgram(programID)
	if !ok {
		return domain.MileChart{}, fmt.Errorf("%w: program %q", domain.ErrNotFound, programID)
	}
	on := time.Now().UTC()
	if d := strings.TrimSpace(date); d != "" {
		t, err := time.Parse(pipeline.DateLayout, d)
		if err != nil {
			return domain.MileChart{}, invalid("date must be YYYY-MM-DD")
		}
		on = t
	}
	c, ok := q.reg.Chart(ctx, p, on)
	if !ok {
		return domain.MileChart{}, fmt.Errorf("%w: no %s chart effective on %s", domain.ErrNotFound, p, on.Format(pipeline.DateLayout))
	}
	return c, nil
}

func (q *ChartQueries) Updates(ctx context.Context, programID string) ([]domain.ChartUpdate, error) {
	p, ok := reference.ResolveProgram(programID)
	if !ok {
		return nil, fmt.Errorf("%w: program %q", domain.ErrNotFound, programID)
	}
	return q.reg.Updates(ctx, p), nil
}
