package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"milecompare/internal/adapters/observability"
	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

// ChartCommands is the write side of the mile-chart registry. Appends are
// in-memory; the store is only read at startup.
type ChartCommands struct {
	reg domain.ChartRegistry
}

func NewChartCommands(reg domain.ChartRegistry) *ChartCommands {
	return &ChartCommands{reg: reg}
}

// AddChart registers a new chart version. The program may be given by any
// known alias.
func (s *ChartCommands) AddChart(ctx context.Context, c domain.MileChart, note string) error {
	p, ok := reference.ResolveProgram(string(c.Program))
	if !ok || !p.Redeemable() {
		return invalid("unsupported program %q", c.Program)
	}
	c.Program = p
	if err := s.reg.AddChart(ctx, c, note); err != nil {
		return err
	}
	observability.ObserveChartAppend(string(domain.UpdateChartAdded))
	log.Info().
		Str("program", string(p)).
		Int("version", c.Version).
		Time("effective_from", c.EffectiveFrom).
		Msg("mile chart added")
	return nil
}

// AddUpdate appends an announcement or correction to a program's log.
func (s *ChartCommands) AddUpdate(ctx context.Context, programID string, u domain.ChartUpdate) (domain.ChartUpdate, error) {
	p, ok := reference.ResolveProgram(programID)
	if !ok || !p.Redeemable() {
		return domain.ChartUpdate{}, fmt.Errorf("%w: program %q", domain.ErrNotFound, programID)
	}
	u.Program = p
	u.Note = strings.TrimSpace(u.Note)
	if u.Note == "" {
		return domain.ChartUpdate{}, invalid("note is required")
	}
	out, err := s.reg.AddUpdate(ctx, u)
	if err != nil {
		return domain.ChartUpdate{}, err
	}
	observability.ObserveChartAppend(string(out.Kind))
	log.Info().
		Str("program", string(p)).
		Int64("seq", out.Seq).
		Str("kind", string(out.Kind)).
		Msg("chart update recorded")
	return out, nil
}

// LoadFromStore registers every stored chart newer than what the registry
// already holds. Invalid or stale rows are logged and skipped.
func (s *ChartCommands) LoadFromStore(ctx context.Context, store domain.ChartStore) (int, error) {
	charts, err := store.LoadCharts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load charts: %w", err)
	}
	n := 0
	for _, c := range charts {
		if err := s.reg.AddChart(ctx, c, "store"); err != nil {
			log.Warn().Err(err).Str("program", string(c.Program)).Int("version", c.Version).Msg("stored chart skipped")
			continue
		}
		observability.ObserveChartAppend(string(domain.UpdateChartAdded))
		n++
	}
	return n, nil
}
