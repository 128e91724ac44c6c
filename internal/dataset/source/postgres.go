package source

import (
	"context"
	"database/sql"
	"fmt"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
)

// Postgres loads observations from a staging table, for deployments that land
// the CSV drop in a database instead of handing the service a file. New-case
// counts are derived here rather than trusted from the table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed source. The observations table is
// expected to carry (region, date, confirmed, deaths, recovered, active).
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string { return "postgres:observations" }

func (p *Postgres) Load(ctx context.Context) ([]models.Observation, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT region, date, confirmed, deaths, recovered, active
		FROM observations
		ORDER BY region, date`)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.Region, &obs.Date, &obs.Confirmed, &obs.Deaths, &obs.Recovered, &obs.Active); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs.Date = models.Day(obs.Date)
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return dataset.DiffByRegion(dataset.SumByRegionDate(out)), nil
}
