package slotpool

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC)
}

func TestPoolOrdering(t *testing.T) {
	pool := New()
	pool.Add(day(7), TimeRanges[0], CategoryCaseStudy)
	pool.Add(day(5), TimeRanges[3], CategoryTechnicalSkills)
	pool.Add(day(5), TimeRanges[1], CategoryCommunication)
	pool.Add(day(6), TimeRanges[0], CategorySystemDesignLow)

	slots := pool.ListAll()
	require.Len(t, slots, 4)

	assert.Equal(t, TimeRanges[1], slots[0].TimeRange)
	assert.True(t, slots[0].Date.Equal(day(5)))
	assert.Equal(t, TimeRanges[3], slots[1].TimeRange)
	assert.True(t, slots[2].Date.Equal(day(6)))
	assert.True(t, slots[3].Date.Equal(day(7)))
}

func TestPoolListByCategory(t *testing.T) {
	pool := New()
	pool.Add(day(5), TimeRanges[0], CategoryCommunication)
	pool.Add(day(6), TimeRanges[0], CategoryCaseStudy)
	pool.Add(day(7), TimeRanges[0], CategoryCommunication)

	comm := pool.ListByCategory(CategoryCommunication)
	require.Len(t, comm, 2)
	assert.True(t, comm[0].Date.Before(comm[1].Date))

	// Filtering an empty pool never fails.
	empty := New().ListByCategory(CategoryCaseStudy)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPoolListByDateRange(t *testing.T) {
	pool := New()
	pool.Add(day(5), TimeRanges[0], CategoryCommunication)
	pool.Add(day(10), TimeRanges[0], CategoryCaseStudy)
	pool.Add(day(20), TimeRanges[0], CategoryCommunication)

	slots, err := pool.ListByDateRange(day(6), day(15))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Date.Equal(day(10)))

	// Inclusive bounds.
	slots, err = pool.ListByDateRange(day(5), day(20))
	require.NoError(t, err)
	assert.Len(t, slots, 3)

	_, err = pool.ListByDateRange(day(15), day(6))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPoolBook(t *testing.T) {
	pool := New()
	id := pool.Add(day(5), TimeRanges[0], CategoryTechnicalSkills)
	pool.Add(day(6), TimeRanges[0], CategoryCaseStudy)

	slot, err := pool.Book(id)
	require.NoError(t, err)
	assert.Equal(t, id, slot.ID)
	assert.Equal(t, 1, pool.Len())

	// Booking a stale reference fails and leaves the pool untouched.
	_, err = pool.Book(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, pool.Len())

	_, err = pool.Book(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, pool.Len())
}

func TestPoolDuplicatesAreLegal(t *testing.T) {
	pool := New()
	a := pool.Add(day(5), TimeRanges[0], CategoryCommunication)
	b := pool.Add(day(5), TimeRanges[0], CategoryCommunication)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, pool.Len())
}

// A slot reference must be won by exactly one of the concurrent bookers.
func TestPoolBookIsAtomic(t *testing.T) {
	pool := New()
	id := pool.Add(day(5), TimeRanges[0], CategoryCaseStudy)

	const bookers = 16

	var wg sync.WaitGroup
	wins := make(chan Slot, bookers)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if slot, err := pool.Book(id); err == nil {
				wins <- slot
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
	assert.Zero(t, pool.Len())
}

func TestGenerate(t *testing.T) {
	pool := New()
	start := day(5)
	Generate(pool, 30, start, rand.New(rand.NewSource(42)))

	slots := pool.ListAll()
	require.Len(t, slots, 30)

	end := start.AddDate(0, 0, generateWindowDays)
	for i, s := range slots {
		assert.False(t, s.Date.Before(start), "slot %d before window", i)
		assert.False(t, s.Date.After(end), "slot %d after window", i)
		assert.Contains(t, TimeRanges, s.TimeRange)
		if i > 0 {
			assert.False(t, slotLess(s, slots[i-1]), "slots out of order at %d", i)
		}
	}
}
