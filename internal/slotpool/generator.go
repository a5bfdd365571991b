package slotpool

import (
	"math/rand"
	"time"
)

var categories = []Category{
	CategoryTechnicalSkills,
	CategorySystemDesignLow,
	CategorySystemDesignHigh,
	CategoryCommunication,
	CategoryCaseStudy,
}

const generateWindowDays = 60

// Generate populates the pool with n random slots spread over a 60-day window
// starting at the given date. It is a fixture generator for demos and tests;
// pass a seeded rand.Rand for deterministic output.
func Generate(p *Pool, n int, start time.Time, r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, r.Intn(generateWindowDays+1))
		timeRange := TimeRanges[r.Intn(len(TimeRanges))]
		category := categories[r.Intn(len(categories))]
		p.Add(date, timeRange, category)
	}
}
