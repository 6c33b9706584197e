package repository

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// referenceFilter is a bloom filter over known reference codes. Customer
// tracking lookups mostly arrive with mistyped or guessed codes; the
// filter answers "definitely unknown" without touching the database.
type referenceFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// newReferenceFilter sizes the filter for the expected number of orders
// with a 1% false-positive rate. False positives only cost a database
// round trip; false negatives cannot occur.
func newReferenceFilter(expectedOrders uint) *referenceFilter {
	return &referenceFilter{
		filter: bloom.NewWithEstimates(expectedOrders, 0.01),
	}
}

// Add records a reference code.
func (f *referenceFilter) Add(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(code)
}

// MayContain reports whether the code could exist. A false result is
// definitive.
func (f *referenceFilter) MayContain(code string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(code)
}
