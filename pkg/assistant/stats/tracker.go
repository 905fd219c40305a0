package stats

import (
	"sync"
	"time"
)

// Entry is one resolved message
type Entry struct {
	Strategy        string
	Category        string
	Table           string
	IdentifierFound bool
	Duration        time.Duration
	At              time.Time
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Total           int64            `json:"total"`
	ByStrategy      map[string]int64 `json:"by_strategy"`
	ByCategory      map[string]int64 `json:"by_category"`
	ByTable         map[string]int64 `json:"by_table"`
	IdentifierFound int64            `json:"identifier_found"`
	AvgDurationMs   float64          `json:"avg_duration_ms"`
	LastResolvedAt  *time.Time       `json:"last_resolved_at,omitempty"`
}

// Tracker aggregates resolution counters in memory
type Tracker struct {
	mu              sync.RWMutex
	total           int64
	byStrategy      map[string]int64
	byCategory      map[string]int64
	byTable         map[string]int64
	identifierFound int64
	totalDuration   time.Duration
	lastResolvedAt  time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		byStrategy: make(map[string]int64),
		byCategory: make(map[string]int64),
		byTable:    make(map[string]int64),
	}
}

func (t *Tracker) Record(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.byStrategy[e.Strategy]++
	if e.Category != "" {
		t.byCategory[e.Category]++
	}
	if e.Table != "" {
		t.byTable[e.Table]++
	}
	if e.IdentifierFound {
		t.identifierFound++
	}
	t.totalDuration += e.Duration
	if e.At.After(t.lastResolvedAt) {
		t.lastResolvedAt = e.At
	}
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Snapshot{
		Total:           t.total,
		ByStrategy:      copyCounts(t.byStrategy),
		ByCategory:      copyCounts(t.byCategory),
		ByTable:         copyCounts(t.byTable),
		IdentifierFound: t.identifierFound,
	}
	if t.total > 0 {
		s.AvgDurationMs = float64(t.totalDuration.Milliseconds()) / float64(t.total)
	}
	if !t.lastResolvedAt.IsZero() {
		last := t.lastResolvedAt
		s.LastResolvedAt = &last
	}
	return s
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
