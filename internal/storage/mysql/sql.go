package mysql

const upsertChartSQL = `
INSERT INTO mile_charts
  (program, version, effective_from, domestic, international)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  effective_from = VALUES(effective_from),
  domestic       = VALUES(domestic),
  international  = VALUES(international),
  updated_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Ascending version per program so the registry can append in order.
const loadChartsSQL = `
SELECT
  program,
  version,
  effective_from,
  domestic,
  international
FROM mile_charts
ORDER BY program, version
`
