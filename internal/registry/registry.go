// Package registry is the in-memory, versioned mile-chart registry. It is the
// only mutable state shared between requests.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"milecompare/internal/domain"
)

// Registry is safe for concurrent use. Lookups share a read lock; AddChart and
// AddUpdate take the write lock.
type Registry struct {
	mu     sync.RWMutex
	charts map[domain.Program][]domain.MileChart // ascending by version
	log    []domain.ChartUpdate
	seq    int64
	now    func() time.Time
}

var _ domain.ChartRegistry = (*Registry)(nil)

// New creates a registry seeded with charts (stale or invalid ones are skipped).
func New(seed ...domain.MileChart) *Registry {
	r := &Registry{
		charts: make(map[domain.Program][]domain.MileChart),
		now:    func() time.Time { return time.Now().UTC() },
	}
	r.Load(context.Background(), seed, "seed")
	return r
}

// Load appends every chart newer than what is already registered and returns
// how many were accepted.
func (r *Registry) Load(ctx context.Context, charts []domain.MileChart, note string) int {
	n := 0
	for _, c := range charts {
		if err := r.AddChart(ctx, c, note); err != nil {
			log.Warn().Err(err).
				Str("program", string(c.Program)).
				Int("version", c.Version).
				Str("source", note).
				Msg("chart skipped")
			continue
		}
		n++
	}
	return n
}

func (r *Registry) Chart(_ context.Context, p domain.Program, date time.Time) (domain.MileChart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.charts[p]
	for i := len(versions) - 1; i >= 0; i-- {
		if !versions[i].EffectiveFrom.After(date) {
			return copyChart(versions[i]), true
		}
	}
	return domain.MileChart{}, false
}

func (r *Registry) AddChart(_ context.Context, c domain.MileChart, note string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c = copyChart(c)

	r.mu.Lock()
	defer r.mu.Unlock()

	versions := r.charts[c.Program]
	if n := len(versions); n > 0 && versions[n-1].Version >= c.Version {
		return fmt.Errorf("%w: %s has version %d, got %d",
			domain.ErrStaleVersion, c.Program, versions[n-1].Version, c.Version)
	}
	r.charts[c.Program] = append(versions, c)
	r.appendLocked(domain.ChartUpdate{
		Program: c.Program,
		Version: c.Version,
		Kind:    domain.UpdateChartAdded,
		Note:    note,
	})
	return nil
}

func (r *Registry) AddUpdate(_ context.Context, u domain.ChartUpdate) (domain.ChartUpdate, error) {
	switch u.Kind {
	case domain.UpdateAnnouncement, domain.UpdateCorrection:
	default:
		return domain.ChartUpdate{}, fmt.Errorf("%w: update kind %q", domain.ErrValidation, u.Kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	versions := r.charts[u.Program]
	if len(versions) == 0 {
		return domain.ChartUpdate{}, fmt.Errorf("%w: no charts for program %q", domain.ErrNotFound, u.Program)
	}
	if u.Version == 0 {
		u.Version = versions[len(versions)-1].Version
	}
	return r.appendLocked(u), nil
}

func (r *Registry) Updates(_ context.Context, p domain.Program) []domain.ChartUpdate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ChartUpdate, 0, len(r.log))
	for _, u := range r.log {
		if p == "" || u.Program == p {
			out = append(out, u)
		}
	}
	return out
}

// Programs lists programs with at least one chart, sorted.
func (r *Registry) Programs() []domain.Program {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Program, 0, len(r.charts))
	for p := range r.charts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// caller holds r.mu
func (r *Registry) appendLocked(u domain.ChartUpdate) domain.ChartUpdate {
	r.seq++
	u.Seq = r.seq
	u.RecordedAt = r.now()
	r.log = append(r.log, u)
	return u
}

// copyChart detaches a chart from caller-owned slices and maps.
func copyChart(c domain.MileChart) domain.MileChart {
	out := c
	if c.Domestic != nil {
		zt := domain.ZoneTable{
			Breakpoints: append([]int(nil), c.Domestic.Breakpoints...),
			Amounts:     append([]domain.SeasonAmounts(nil), c.Domestic.Amounts...),
		}
		out.Domestic = &zt
	}
	if c.International != nil {
		out.International = make(map[domain.Region]domain.SeasonAmounts, len(c.International))
		for k, v := range c.International {
			out.International[k] = v
		}
	}
	return out
}
