package mocks

import (
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Identity makes Intn return n-1 once the queue is empty,
	// so random.Shuffle leaves the order unchanged
	Identity bool
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// NewIdentityRandom creates a MockRandom under which shuffles keep their input order
func NewIdentityRandom() *MockRandom {
	return &MockRandom{Identity: true}
}

// Intn returns the next queued result, or the fallback if none remain
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		if r.Identity && n > 0 {
			return n - 1
		}
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
}
