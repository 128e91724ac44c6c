//go:build integration

package source_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"covidboard/internal/dataset/source"
	"covidboard/pkg/testutil/containers"
)

type PostgresSourceSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	source   *source.Postgres
}

func TestPostgresSourceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSourceSuite))
}

func (s *PostgresSourceSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())

	_, err := s.postgres.DB.Exec(`
		CREATE TABLE IF NOT EXISTS observations (
			region    TEXT        NOT NULL,
			date      DATE        NOT NULL,
			confirmed BIGINT      NOT NULL DEFAULT 0,
			deaths    BIGINT      NOT NULL DEFAULT 0,
			recovered BIGINT      NOT NULL DEFAULT 0,
			active    BIGINT      NOT NULL DEFAULT 0,
			PRIMARY KEY (region, date)
		)`)
	s.Require().NoError(err)

	s.source = source.NewPostgres(s.postgres.DB)
}

func (s *PostgresSourceSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "observations"))
}

func (s *PostgresSourceSuite) seed(region string, date time.Time, confirmed, deaths int64) {
	_, err := s.postgres.DB.Exec(
		`INSERT INTO observations (region, date, confirmed, deaths) VALUES ($1, $2, $3, $4)`,
		region, date, confirmed, deaths,
	)
	s.Require().NoError(err)
}

func (s *PostgresSourceSuite) TestLoadDerivesNewCases() {
	mar1 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	mar2 := mar1.AddDate(0, 0, 1)
	s.seed("Italy", mar1, 1694, 34)
	s.seed("Italy", mar2, 2036, 52)

	rows, err := s.source.Load(context.Background())
	s.Require().NoError(err)

	s.Require().Len(rows, 2)
	s.Equal("Italy", rows[0].Region)
	s.Equal(int64(0), rows[0].NewCases)
	s.Equal(int64(342), rows[1].NewCases)
}

func (s *PostgresSourceSuite) TestLoadEmptyTable() {
	rows, err := s.source.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(rows)
}
