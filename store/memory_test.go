package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/creastat/circuits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Registry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string]()
	x := circuits.NewCircuit("x")

	require.NoError(t, circuits.SetCircuit(ctx, s, "conn-A", x))

	got, err := circuits.GetCircuit(ctx, s, "conn-A")
	require.NoError(t, err)
	assert.Same(t, x, got)

	got, err = circuits.GetCircuit(ctx, s, "conn-B")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, circuits.SetCircuit(ctx, s, "conn-A", nil))
	entry, ok, err := circuits.Lookup(ctx, s, "conn-A")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, entry.IsAbsent())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int]()
	require.NoError(t, circuits.SetCircuit(ctx, s, 7, circuits.NewCircuit("")))

	require.NoError(t, s.Delete(ctx, 7))
	require.NoError(t, s.Delete(ctx, 8))

	_, ok, err := s.Load(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string]()
	require.NoError(t, s.Close())

	_, _, err := s.Load(ctx, "k")
	assert.ErrorIs(t, err, circuits.ErrStoreClosed)
	assert.ErrorIs(t, s.Save(ctx, "k", circuits.Absent()), circuits.ErrStoreClosed)
	assert.ErrorIs(t, s.Delete(ctx, "k"), circuits.ErrStoreClosed)

	_, err = circuits.GetCircuit[string](ctx, s, "k")
	assert.ErrorIs(t, err, circuits.ErrStoreClosed)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string]()

	const workers = 16
	held := make([]*circuits.Circuit, workers)
	var wg sync.WaitGroup
	for i := range workers {
		held[i] = circuits.NewCircuit("")
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("conn-%d", i)
			for range 100 {
				assert.NoError(t, circuits.SetCircuit(ctx, s, key, held[i]))
				got, err := circuits.GetCircuit(ctx, s, key)
				assert.NoError(t, err)
				assert.Same(t, held[i], got)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, s.Len())
}
