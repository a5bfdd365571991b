package slotpool

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Book when the referenced slot is no longer in the pool.
	ErrNotFound = errors.New("slot not found")
	// ErrInvalidRange is returned by ListByDateRange when start is after end.
	ErrInvalidRange = errors.New("invalid date range: start is after end")
)

// Category is an interview category from the closed set the company runs.
type Category string

const (
	CategoryTechnicalSkills  Category = "technical-skills"
	CategorySystemDesignLow  Category = "system-design-low-level"
	CategorySystemDesignHigh Category = "system-design-high-level"
	CategoryCommunication    Category = "communication"
	CategoryCaseStudy        Category = "case-study"
)

// TimeRanges is the fixed business-hours grid of one-hour interview slots.
var TimeRanges = []string{
	"9:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"12:00 PM - 1:00 PM",
	"1:00 PM - 2:00 PM",
	"2:00 PM - 3:00 PM",
	"3:00 PM - 4:00 PM",
	"4:00 PM - 5:00 PM",
}

// Slot is one bookable interview opportunity. Duplicate (date, time range,
// category) tuples are legal and represent distinct interviewer availability.
type Slot struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	TimeRange string    `json:"time_range"`
	Category  Category  `json:"category"`
}

// Pool holds the unbooked interview slots for the process. A slot leaves the
// pool only through Book; enumeration is always ascending by date and then by
// position of the time range on the business-hours grid.
type Pool struct {
	mu    sync.Mutex
	slots []Slot
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{}
}

// Add inserts a new slot, preserving the pool's sort order, and returns its reference.
func (p *Pool) Add(date time.Time, timeRange string, category Category) uuid.UUID {
	slot := Slot{
		ID:        uuid.New(),
		Date:      date,
		TimeRange: timeRange,
		Category:  category,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	idx := sort.Search(len(p.slots), func(i int) bool {
		return !slotLess(p.slots[i], slot)
	})
	p.slots = append(p.slots, Slot{})
	copy(p.slots[idx+1:], p.slots[idx:])
	p.slots[idx] = slot

	return slot.ID
}

// ListAll returns a snapshot of all remaining slots.
func (p *Pool) ListAll() []Slot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return snapshot(p.slots)
}

// ListByCategory returns a snapshot of the remaining slots with the given category.
func (p *Pool) ListByCategory(c Category) []Slot {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Slot, 0)
	for _, s := range p.slots {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// ListByDateRange returns a snapshot of the remaining slots whose date falls
// within [start, end] inclusive.
func (p *Pool) ListByDateRange(start, end time.Time) ([]Slot, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Slot, 0)
	for _, s := range p.slots {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Book removes the referenced slot from the pool and returns it. The removal is
// atomic with respect to concurrent bookers: at most one caller wins a given
// reference, every other caller gets ErrNotFound.
func (p *Pool) Book(id uuid.UUID) (Slot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, s := range p.slots {
		if s.ID == id {
			p.slots = append(p.slots[:i], p.slots[i+1:]...)
			return s, nil
		}
	}
	return Slot{}, ErrNotFound
}

// Len reports the number of remaining slots.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.slots)
}

func snapshot(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

func slotLess(a, b Slot) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return timeRangeRank(a.TimeRange) < timeRangeRank(b.TimeRange)
}

// timeRangeRank orders time ranges by their position on the business-hours
// grid. Ranges outside the grid sort last.
func timeRangeRank(tr string) int {
	for i, known := range TimeRanges {
		if known == tr {
			return i
		}
	}
	return len(TimeRanges)
}
