// Package counter provides the frequency counters used to tally login
// attempts along each reported dimension.
package counter

import "sort"

type (
	// Counter maps a key to the number of times it was observed. Keys
	// remember the order in which they were first seen; rankings use that
	// order to break ties between equal counts.
	Counter[K comparable] struct {
		counts map[K]int64
		keys   []K
		total  int64
	}

	// Entry is a single key and its count
	Entry[K comparable] struct {
		Key   K
		Count int64
	}
)

// New returns an empty counter
func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int64)}
}

// Increment records one observation of key
func (c *Counter[K]) Increment(key K) {
	c.Add(key, 1)
}

// Add records n observations of key. Counts never decrease, so n < 1 is ignored.
func (c *Counter[K]) Add(key K, n int64) {
	if n < 1 {
		return
	}
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
	c.total += n
}

// Count returns the number of observations of key, zero if it was never seen
func (c *Counter[K]) Count(key K) int64 {
	return c.counts[key]
}

// Len returns the number of distinct keys
func (c *Counter[K]) Len() int {
	return len(c.keys)
}

// Total returns the sum of all counts
func (c *Counter[K]) Total() int64 {
	return c.total
}

// Entries returns every key and count in first-seen order
func (c *Counter[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.keys))
	for _, key := range c.keys {
		entries = append(entries, Entry[K]{Key: key, Count: c.counts[key]})
	}
	return entries
}

// Sorted returns every entry ordered by count, largest first
func (c *Counter[K]) Sorted() []Entry[K] {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Top returns the n entries with the largest counts. All entries are
// returned when n < 1 or the counter holds fewer than n keys.
func (c *Counter[K]) Top(n int) []Entry[K] {
	entries := c.Sorted()
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Ascending returns every entry ordered by count, smallest first
func (c *Counter[K]) Ascending() []Entry[K] {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count < entries[j].Count
	})
	return entries
}

// ToMap copies the counts into a plain map
func (c *Counter[K]) ToMap() map[K]int64 {
	out := make(map[K]int64, len(c.counts))
	for key, count := range c.counts {
		out[key] = count
	}
	return out
}
