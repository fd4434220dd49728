package ids

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDAllocator_Unique(t *testing.T) {
	alloc := NewUUIDAllocator()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := alloc.Allocate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}

		_, err := uuid.Parse(id)
		require.NoError(t, err)
	}
}

func TestSequence_Deterministic(t *testing.T) {
	seq := NewSequence("exp")
	assert.Equal(t, "exp-1", seq.Allocate())
	assert.Equal(t, "exp-2", seq.Allocate())
	assert.Equal(t, "exp-3", seq.Allocate())
}

func TestSequence_ConcurrentUnique(t *testing.T) {
	seq := NewSequence("id")
	const workers, perWorker = 8, 250

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := seq.Allocate()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestFunc(t *testing.T) {
	var alloc Allocator = Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", alloc.Allocate())
}
