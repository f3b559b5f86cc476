package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordPage("employees")
	m.RecordPage("employees")
	m.RecordItems("employees", 40)
	m.RecordUpserted("employees", 38)
	m.RecordInvalidRef("assets")
	m.RecordInvalidRef("assets")
	m.RecordDropped("offboards")

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap["employees"].Pages)
	assert.EqualValues(t, 40, snap["employees"].Items)
	assert.EqualValues(t, 38, snap["employees"].Upserted)
	assert.EqualValues(t, 2, snap["assets"].InvalidRefs)
	assert.EqualValues(t, 1, snap["offboards"].Dropped)

	assert.EqualValues(t, 2, m.InvalidRefs("assets"))
	assert.EqualValues(t, 0, m.InvalidRefs("employees"))
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordPage("x")
	m.RecordItems("x", 1)
	m.RecordUpserted("x", 1)
	m.RecordInvalidRef("x")
	m.RecordDropped("x")
	assert.Empty(t, m.Snapshot())
	assert.EqualValues(t, 0, m.InvalidRefs("x"))
}

func TestMetricsConcurrentRecording(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.RecordItems("load", 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1000, m.Snapshot()["load"].Items)
}
