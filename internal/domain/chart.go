package domain

import (
	"fmt"
	"time"
)

type Season string

const (
	SeasonOff     Season = "off"
	SeasonRegular Season = "regular"
	SeasonPeak    Season = "peak"
)

// SeasonAmounts is a required amount per season, in program units.
type SeasonAmounts struct {
	Off     int `json:"off"`
	Regular int `json:"regular"`
	Peak    int `json:"peak"`
}

func (a SeasonAmounts) For(s Season) int {
	switch s {
	case SeasonOff:
		return a.Off
	case SeasonPeak:
		return a.Peak
	default:
		return a.Regular
	}
}

func (a SeasonAmounts) IsZero() bool { return a.Off == 0 && a.Regular == 0 && a.Peak == 0 }

// Region is an international redemption bucket.
type Region string

const (
	RegionKorea         Region = "korea"
	RegionEastAsia      Region = "east_asia"
	RegionSoutheastAsia Region = "southeast_asia"
	RegionHawaii        Region = "hawaii"
	RegionNorthAmerica  Region = "north_america"
	RegionEurope        Region = "europe"
	RegionOceania       Region = "oceania"
	RegionUnknown       Region = "unknown"
)

// ZoneTable maps distance (km) to amounts. Breakpoints are inclusive upper
// bounds in ascending order; the last Amounts entry is the overflow zone.
type ZoneTable struct {
	Breakpoints []int           `json:"breakpoints"`
	Amounts     []SeasonAmounts `json:"amounts"`
}

// Zone returns the 1-based zone for a distance.
func (z ZoneTable) Zone(km int) int {
	for i, bp := range z.Breakpoints {
		if km <= bp {
			return i + 1
		}
	}
	return len(z.Breakpoints) + 1
}

// Validate checks shape and monotonicity (non-decreasing by zone, per season).
func (z ZoneTable) Validate() error {
	if len(z.Amounts) != len(z.Breakpoints)+1 {
		return fmt.Errorf("%w: %d breakpoints need %d zones, got %d",
			ErrInvalidChart, len(z.Breakpoints), len(z.Breakpoints)+1, len(z.Amounts))
	}
	for i := 1; i < len(z.Breakpoints); i++ {
		if z.Breakpoints[i] <= z.Breakpoints[i-1] {
			return fmt.Errorf("%w: breakpoints not ascending at %d", ErrInvalidChart, i)
		}
	}
	for i := 1; i < len(z.Amounts); i++ {
		prev, cur := z.Amounts[i-1], z.Amounts[i]
		if cur.Off < prev.Off || cur.Regular < prev.Regular || cur.Peak < prev.Peak {
			return fmt.Errorf("%w: zone %d cheaper than zone %d", ErrInvalidChart, i+1, i)
		}
	}
	return nil
}

// MileChart is one version of a program's redemption tables.
type MileChart struct {
	Program       Program                  `json:"program"`
	Version       int                      `json:"version"`
	EffectiveFrom time.Time                `json:"effective_from"`
	Domestic      *ZoneTable               `json:"domestic,omitempty"`
	International map[Region]SeasonAmounts `json:"international,omitempty"`
}

func (c MileChart) Validate() error {
	if !c.Program.Redeemable() {
		return fmt.Errorf("%w: program %q", ErrInvalidChart, c.Program)
	}
	if c.Version <= 0 {
		return fmt.Errorf("%w: version must be positive", ErrInvalidChart)
	}
	if c.Domestic == nil && len(c.International) == 0 {
		return fmt.Errorf("%w: chart has no tables", ErrInvalidChart)
	}
	if c.Domestic != nil {
		if err := c.Domestic.Validate(); err != nil {
			return err
		}
	}
	for r, a := range c.International {
		if a.Off < 0 || a.Regular < 0 || a.Peak < 0 {
			return fmt.Errorf("%w: negative amount for %s", ErrInvalidChart, r)
		}
	}
	return nil
}

type UpdateKind string

const (
	UpdateChartAdded   UpdateKind = "chart_added"
	UpdateAnnouncement UpdateKind = "announcement"
	UpdateCorrection   UpdateKind = "correction"
)

// ChartUpdate is one entry of the append-only registry log.
type ChartUpdate struct {
	Seq        int64      `json:"seq"`
	Program    Program    `json:"program"`
	Version    int        `json:"version"`
	Kind       UpdateKind `json:"kind"`
	Note       string     `json:"note,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
}
