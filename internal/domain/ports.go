package domain

import (
	"context"
	"time"
)

// OfferSource is the upstream raw-offer provider.
type OfferSource interface {
	SearchOffers(ctx context.Context, q OfferQuery) ([]RawOffer, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ChartRegistry owns versioned mile charts and their update log.
// Reads may run concurrently; appends are exclusive.
type ChartRegistry interface {
	// Chart returns the newest chart for p effective on date.
	Chart(ctx context.Context, p Program, date time.Time) (MileChart, bool)
	AddChart(ctx context.Context, c MileChart, note string) error
	AddUpdate(ctx context.Context, u ChartUpdate) (ChartUpdate, error)
	Updates(ctx context.Context, p Program) []ChartUpdate
}

// ChartStore is the read-at-startup source of charts (and the seeding target).
type ChartStore interface {
	UpsertChart(ctx context.Context, c MileChart) error
	LoadCharts(ctx context.Context) ([]MileChart, error)
}
