//go:build unix || windows

package ovector

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSafeVector(t *testing.T) {
	s := NewSafeVector[int](16)
	defer s.Free()

	assert.Equal(t, 16, s.Cap())
	assert.Zero(t, s.Len())
	assert.True(t, s.v.Backed())
}

func TestSafeVectorUnbacked(t *testing.T) {
	s := NewSafeVector[int](0)

	_, ok := s.PushBack(1)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestSafeVectorOperations(t *testing.T) {
	s := NewSafeVector[int](3)
	defer s.Free()

	for i := range 3 {
		idx, ok := s.PushBack(i * 2)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
	_, ok := s.PushBack(99)
	assert.False(t, ok, "push beyond capacity must be refused")

	v, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = s.Get(3)
	assert.False(t, ok)
	_, ok = s.Get(-1)
	assert.False(t, ok)

	assert.True(t, s.Set(1, 7))
	assert.False(t, s.Set(5, 7))
	assert.True(t, s.Update(2, func(p *int) { *p += 1 }))
	assert.False(t, s.Update(9, func(*int) {}))
	assert.Equal(t, []int{0, 7, 5}, s.Snapshot())

	last, ok := s.PopBack()
	assert.True(t, ok)
	assert.Equal(t, 5, last)
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
	_, ok = s.PopBack()
	assert.False(t, ok)
}

func TestSafeVectorPopBackDestroys(t *testing.T) {
	s := NewSafeVector[dtorCounted](2)
	defer s.Free()
	s.PushBack(dtorCounted{id: 42})

	dtorCount = 0
	got, ok := s.PopBack()
	require.True(t, ok)
	assert.Equal(t, int64(42), got.id)
	assert.Equal(t, 1, dtorCount)
}

func TestSafeVectorConcurrency(t *testing.T) {
	const numWorkers = 8
	const perWorker = 1000

	s := NewSafeVector[int64](numWorkers * perWorker)
	defer s.Free()

	var wg sync.WaitGroup
	for w := range numWorkers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perWorker {
				if _, ok := s.PushBack(int64(id*perWorker + i)); !ok {
					t.Errorf("worker %d: push %d refused", id, i)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	got := s.Snapshot()
	require.Len(t, got, numWorkers*perWorker)
	slices.Sort(got)
	for i, v := range got {
		if v != int64(i) {
			t.Fatalf("sorted[%d] = %d, want %d", i, v, i)
		}
	}

	m := s.Metrics()
	assert.Equal(t, 1.0, m.Utilization)
}

func TestSafeVectorFree(t *testing.T) {
	s := NewSafeVector[int](4)
	s.PushBack(1)
	s.Free()

	assert.Zero(t, s.Cap())
	_, ok := s.PushBack(2)
	assert.False(t, ok)
}
