package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/dataset/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestComputeEmptyWindow(t *testing.T) {
	_, ok := Compute(nil)
	assert.False(t, ok)
}

func TestCompute(t *testing.T) {
	rows := []models.Observation{
		{Region: models.GlobalRegion, Date: day("2020-01-22"), Confirmed: 555, Deaths: 17, Recovered: 28, Active: 510, NewCases: 0},
		{Region: models.GlobalRegion, Date: day("2020-01-23"), Confirmed: 654, Deaths: 18, Recovered: 30, Active: 606, NewCases: 99},
		{Region: models.GlobalRegion, Date: day("2020-01-24"), Confirmed: 941, Deaths: 26, Recovered: 36, Active: 879, NewCases: 287},
	}

	s, ok := Compute(rows)
	require.True(t, ok)

	assert.Equal(t, day("2020-01-22"), s.From)
	assert.Equal(t, day("2020-01-24"), s.To)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, int64(941), s.TotalConfirmed)
	assert.Equal(t, int64(99+287), s.NewCases)
	assert.Equal(t, day("2020-01-24"), s.PeakDate)
	assert.Equal(t, int64(287), s.PeakNewCases)
	assert.Equal(t, int64(26), s.TotalDeaths)
	assert.Equal(t, int64(879), s.TotalActive)
	assert.Contains(t, s.Text, "2020-01-24")
	assert.Contains(t, s.Text, "287 new cases")
}

func TestComputePeakTieTakesLatestDay(t *testing.T) {
	rows := []models.Observation{
		{Region: models.GlobalRegion, Date: day("2020-01-22"), Confirmed: 100, NewCases: 50},
		{Region: models.GlobalRegion, Date: day("2020-01-23"), Confirmed: 150, NewCases: 50},
	}
	s, ok := Compute(rows)
	require.True(t, ok)
	assert.Equal(t, day("2020-01-23"), s.PeakDate)
}
