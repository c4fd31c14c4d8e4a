package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"milecompare/internal/domain"
)

func valJSON(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Repo is the MySQL chart store. The DSN must set parseTime=true.
type Repo struct{ db *sql.DB }

var _ domain.ChartStore = (*Repo)(nil)

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertChart(ctx context.Context, c domain.MileChart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dom, err := valJSON(c.Domestic, c.Domestic == nil)
	if err != nil {
		return fmt.Errorf("encode domestic table: %w", err)
	}
	intl, err := valJSON(c.International, len(c.International) == 0)
	if err != nil {
		return fmt.Errorf("encode international table: %w", err)
	}
	_, err = r.db.ExecContext(ctx, upsertChartSQL,
		string(c.Program),
		c.Version,
		c.EffectiveFrom.UTC().Format("2006-01-02"),
		dom,
		intl,
	)
	return err
}

func (r *Repo) LoadCharts(ctx context.Context) ([]domain.MileChart, error) {
	rows, err := r.db.QueryContext(ctx, loadChartsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MileChart
	for rows.Next() {
		var (
			c         domain.MileChart
			program   string
			from      time.Time
			dom, intl sql.NullString
		)
		if err := rows.Scan(&program, &c.Version, &from, &dom, &intl); err != nil {
			return nil, err
		}
		c.Program = domain.Program(program)
		c.EffectiveFrom = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		if dom.Valid && dom.String != "" {
			var zt domain.ZoneTable
			if err := json.Unmarshal([]byte(dom.String), &zt); err != nil {
				return nil, fmt.Errorf("decode %s v%d domestic: %w", program, c.Version, err)
			}
			c.Domestic = &zt
		}
		if intl.Valid && intl.String != "" {
			if err := json.Unmarshal([]byte(intl.String), &c.International); err != nil {
				return nil, fmt.Errorf("decode %s v%d international: %w", program, c.Version, err)
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
