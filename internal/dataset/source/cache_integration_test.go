//go:build integration

package source_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/source"
	"covidboard/internal/platform/config"
	platformredis "covidboard/internal/platform/redis"
	"covidboard/pkg/testutil/containers"
)

type CachedHTTPSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	client *platformredis.Client
}

func TestCachedHTTPSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedHTTPSuite))
}

func (s *CachedHTTPSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(config.RedisConfig{
		URL:          s.redis.URL,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *CachedHTTPSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *CachedHTTPSuite) TestSecondLoadServedFromCache() {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = io.WriteString(w, "Date,Confirmed,New cases\n2020-01-22,555,0\n2020-01-23,654,99\n")
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	asOf := time.Date(2020, 7, 27, 0, 0, 0, 0, time.UTC)
	src := source.NewCachedHTTP(
		source.NewHTTP(srv.URL, dataset.SchemaDayWise, asOf, 5*time.Second),
		s.client, time.Hour, logger,
	)

	for i := 0; i < 2; i++ {
		rows, err := src.Load(context.Background())
		s.Require().NoError(err)
		s.Require().Len(rows, 2)
		s.Equal(int64(99), rows[1].NewCases)
	}
	s.Equal(1, hits)
}

func (s *CachedHTTPSuite) TestExpiredEntryRefetches() {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = io.WriteString(w, "Date,Confirmed\n2020-01-22,555\n")
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	asOf := time.Date(2020, 7, 27, 0, 0, 0, 0, time.UTC)
	src := source.NewCachedHTTP(
		source.NewHTTP(srv.URL, dataset.SchemaDayWise, asOf, 5*time.Second),
		s.client, time.Second, logger,
	)

	_, err := src.Load(context.Background())
	s.Require().NoError(err)

	time.Sleep(1500 * time.Millisecond)

	_, err = src.Load(context.Background())
	s.Require().NoError(err)
	s.Equal(2, hits)
}
