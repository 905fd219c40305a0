package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecord(t *testing.T) {
	tr := NewTracker()
	empty := tr.Snapshot()
	assert.Zero(t, empty.Total)
	assert.Nil(t, empty.LastResolvedAt)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tr.Record(Entry{Strategy: "STATUS_LOOKUP", IdentifierFound: true, Duration: 10 * time.Millisecond, At: now})
	tr.Record(Entry{Strategy: "KNOWLEDGE_BASE", Category: "Navigation Guidance", Table: "navigation", Duration: 30 * time.Millisecond, At: now.Add(-time.Minute)})

	s := tr.Snapshot()
	assert.Equal(t, int64(2), s.Total)
	assert.Equal(t, int64(1), s.ByStrategy["STATUS_LOOKUP"])
	assert.Equal(t, int64(1), s.ByTable["navigation"])
	assert.Equal(t, int64(1), s.ByCategory["Navigation Guidance"])
	assert.Equal(t, int64(1), s.IdentifierFound)
	assert.Equal(t, 20.0, s.AvgDurationMs)
	require.NotNil(t, s.LastResolvedAt)
	assert.Equal(t, now, *s.LastResolvedAt)

	// snapshots are copies
	s.ByStrategy["STATUS_LOOKUP"] = 99
	assert.Equal(t, int64(1), tr.Snapshot().ByStrategy["STATUS_LOOKUP"])
}

func TestTrackerConcurrentRecord(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record(Entry{Strategy: "DEFAULT", At: time.Now()})
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), tr.Snapshot().ByStrategy["DEFAULT"])
}
