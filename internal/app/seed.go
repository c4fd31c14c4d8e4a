package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

// chartFile is the on-disk seed format: one chart object or an array of them.
type chartFile struct {
	Program       string                                 `json:"program"`
	Version       int                                    `json:"version"`
	EffectiveFrom string                                 `json:"effectiveFrom"`
	Domestic      *domain.ZoneTable                      `json:"domestic,omitempty"`
	International map[domain.Region]domain.SeasonAmounts `json:"international,omitempty"`
}

// ParseCharts decodes seed charts and validates each one.
func ParseCharts(r io.Reader) ([]domain.MileChart, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var files []chartFile
	if t := strings.TrimSpace(string(b)); strings.HasPrefix(t, "[") {
		err = json.Unmarshal(b, &files)
	} else {
		var one chartFile
		err = json.Unmarshal(b, &one)
		files = []chartFile{one}
	}
	if err != nil {
		return nil, invalid("chart file: %v", err)
	}

	out := make([]domain.MileChart, 0, len(files))
	for i, f := range files {
		p, ok := reference.ResolveProgram(f.Program)
		if !ok {
			return nil, invalid("chart %d: unsupported program %q", i, f.Program)
		}
		from, err := time.Parse("2006-01-02", strings.TrimSpace(f.EffectiveFrom))
		if err != nil {
			return nil, invalid("chart %d: effectiveFrom must be YYYY-MM-DD", i)
		}
		c := domain.MileChart{
			Program:       p,
			Version:       f.Version,
			EffectiveFrom: from,
			Domestic:      f.Domestic,
			International: f.International,
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// LoadChartDir parses every *.json file in dir, in name order.
func LoadChartDir(dir string) ([]domain.MileChart, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var out []domain.MileChart
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		charts, err := ParseCharts(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		out = append(out, charts...)
	}
	return out, nil
}

// SeedCharts upserts charts with at most workers concurrent writes and
// returns how many failed.
func SeedCharts(ctx context.Context, store domain.ChartStore, charts []domain.MileChart, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for _, c := range charts {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			failed++
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func(c domain.MileChart) {
			defer wg.Done()
			defer sem.Release(1)

			if err := store.UpsertChart(ctx, c); err != nil {
				log.Warn().Err(err).Str("program", string(c.Program)).Int("version", c.Version).Msg("seed failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Info().Str("program", string(c.Program)).Int("version", c.Version).Msg("seed ok")
		}(c)
	}
	wg.Wait()
	return failed
}
