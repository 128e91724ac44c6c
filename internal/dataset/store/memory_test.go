package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/dataset"
	dErrors "covidboard/pkg/domain-errors"
)

func TestCurrentBeforeLoad(t *testing.T) {
	s := NewInMemorySnapshotStore()
	_, err := s.Current(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestReplaceAndCurrent(t *testing.T) {
	s := NewInMemorySnapshotStore()
	tbl := dataset.NewTable(nil)
	require.NoError(t, s.Replace(context.Background(), tbl))

	got, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, tbl, got)
}

func TestConcurrentReadersDuringSwap(t *testing.T) {
	s := NewInMemorySnapshotStore()
	require.NoError(t, s.Replace(context.Background(), dataset.NewTable(nil)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tbl, err := s.Current(context.Background())
				assert.NoError(t, err)
				assert.NotNil(t, tbl)
			}
		}()
	}
	for j := 0; j < 100; j++ {
		require.NoError(t, s.Replace(context.Background(), dataset.NewTable(nil)))
	}
	wg.Wait()
}
