// Package source loads observation rows from the places a deployment may
// stage the dataset: a local CSV, a remote CSV, or a Postgres table. Sources
// are interface-driven so ingestion and the admin reload never care where the
// rows came from.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	dErrors "covidboard/pkg/domain-errors"
)

// Source yields one batch of observations per load.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	Load(ctx context.Context) ([]models.Observation, error)
}

// decode turns a raw CSV stream into observations for the given schema. The
// wide time-series form runs the full melt/aggregate/diff pipeline here so
// every source hands back long-form rows.
func decode(r io.Reader, schema dataset.Schema, asOf time.Time) ([]models.Observation, error) {
	switch schema {
	case dataset.SchemaDayWise:
		return dataset.DecodeDayWise(r)
	case dataset.SchemaRegionLatest:
		return dataset.DecodeRegionLatest(r, asOf)
	case dataset.SchemaTimeSeries:
		wide, err := dataset.DecodeTimeSeries(r)
		if err != nil {
			return nil, err
		}
		return dataset.DiffByRegion(dataset.SumByRegionDate(dataset.Melt(wide))), nil
	}
	return nil, dErrors.Newf(dErrors.CodeValidation, "unknown dataset schema %q", schema)
}

// File loads a CSV from the local filesystem.
type File struct {
	path   string
	schema dataset.Schema
	asOf   time.Time
}

// NewFile constructs a file source. asOf stamps undated schemas.
func NewFile(path string, schema dataset.Schema, asOf time.Time) *File {
	return &File{path: path, schema: schema, asOf: asOf}
}

func (f *File) Name() string { return fmt.Sprintf("file:%s", f.path) }

func (f *File) Load(_ context.Context) ([]models.Observation, error) {
	r, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer r.Close()
	return decode(r, f.schema, f.asOf)
}

// HTTP loads a CSV from a remote URL.
type HTTP struct {
	url    string
	schema dataset.Schema
	asOf   time.Time
	client *http.Client
}

// NewHTTP constructs an HTTP source with a bounded request timeout.
func NewHTTP(url string, schema dataset.Schema, asOf time.Time, timeout time.Duration) *HTTP {
	return &HTTP{
		url:    url,
		schema: schema,
		asOf:   asOf,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) Name() string { return fmt.Sprintf("http:%s", h.url) }

func (h *HTTP) Load(ctx context.Context) ([]models.Observation, error) {
	payload, err := h.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return decodeBytes(payload, h.schema, h.asOf)
}

// fetch retrieves the raw CSV payload so the caching wrapper can reuse it
// without re-decoding concerns leaking into the cache.
func (h *HTTP) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "fetch dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.Newf(dErrors.CodeUnavailable, "fetch dataset: upstream returned %d", resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read dataset body")
	}
	return payload, nil
}
