package observability

import "sync"

// Metrics provides basic in-memory counters for one sync run.
type Metrics struct {
	mu           sync.Mutex
	pagesFetched map[string]int64
	itemsFetched map[string]int64
	rowsUpserted map[string]int64
	invalidRefs  map[string]int64
	rowsDropped  map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		pagesFetched: make(map[string]int64),
		itemsFetched: make(map[string]int64),
		rowsUpserted: make(map[string]int64),
		invalidRefs:  make(map[string]int64),
		rowsDropped:  make(map[string]int64),
	}
}

// RecordPage increments the page counter for an entity fetch.
func (m *Metrics) RecordPage(entity string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesFetched[entity]++
}

// RecordItems adds fetched item counts for an entity.
func (m *Metrics) RecordItems(entity string, n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itemsFetched[entity] += int64(n)
}

// RecordUpserted adds written row counts for an entity.
func (m *Metrics) RecordUpserted(entity string, n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowsUpserted[entity] += int64(n)
}

// RecordInvalidRef counts a dangling foreign key replaced with null.
func (m *Metrics) RecordInvalidRef(entity string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidRefs[entity]++
}

// RecordDropped counts a row discarded before persistence.
func (m *Metrics) RecordDropped(entity string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowsDropped[entity]++
}

// EntitySummary is the per-entity counter snapshot.
type EntitySummary struct {
	Pages       int64 `json:"pages"`
	Items       int64 `json:"items"`
	Upserted    int64 `json:"upserted"`
	InvalidRefs int64 `json:"invalid_refs"`
	Dropped     int64 `json:"dropped"`
}

// Snapshot returns the counters for every entity seen so far.
func (m *Metrics) Snapshot() map[string]EntitySummary {
	out := make(map[string]EntitySummary)
	if m == nil {
		return out
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	get := func(entity string) EntitySummary { return out[entity] }
	for entity, v := range m.pagesFetched {
		s := get(entity)
		s.Pages = v
		out[entity] = s
	}
	for entity, v := range m.itemsFetched {
		s := get(entity)
		s.Items = v
		out[entity] = s
	}
	for entity, v := range m.rowsUpserted {
		s := get(entity)
		s.Upserted = v
		out[entity] = s
	}
	for entity, v := range m.invalidRefs {
		s := get(entity)
		s.InvalidRefs = v
		out[entity] = s
	}
	for entity, v := range m.rowsDropped {
		s := get(entity)
		s.Dropped = v
		out[entity] = s
	}
	return out
}

// InvalidRefs returns the dangling-reference count for one entity.
func (m *Metrics) InvalidRefs(entity string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidRefs[entity]
}
