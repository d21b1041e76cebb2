package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFiresInTimeThenScheduleOrder(t *testing.T) {
	q := NewQueue()
	var got []string
	q.After(0.3, func() { got = append(got, "c") })
	q.After(0.1, func() { got = append(got, "a") })
	q.After(0.1, func() { got = append(got, "b") })

	assert.Equal(t, 0, q.Advance(0.05))
	assert.Empty(t, got)

	assert.Equal(t, 2, q.Advance(0.05))
	assert.Equal(t, []string{"a", "b"}, got)

	q.Advance(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, q.Len())
	assert.InDelta(t, 1.1, q.Now(), 1e-12)
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	fired := false
	tok := q.After(1, func() { fired = true })
	require.True(t, q.Pending(tok))

	assert.True(t, q.Cancel(tok))
	assert.False(t, q.Cancel(tok), "second cancel is a no-op")
	assert.False(t, q.Pending(tok))

	q.Advance(2)
	assert.False(t, fired)
}

func TestQueueCancelAfterFire(t *testing.T) {
	q := NewQueue()
	tok := q.After(0, func() {})
	q.Advance(0)
	assert.False(t, q.Cancel(tok))
}

func TestQueueCallbackSchedulesForNextAdvance(t *testing.T) {
	q := NewQueue()
	count := 0
	var again func()
	again = func() {
		count++
		q.After(0, again)
	}
	q.After(0, again)

	q.Advance(0)
	assert.Equal(t, 1, count)
	q.Advance(0)
	assert.Equal(t, 2, count)
}

func TestQueueCallbackCancelsSibling(t *testing.T) {
	q := NewQueue()
	var second Token
	fired := false
	q.After(0.1, func() { q.Cancel(second) })
	second = q.After(0.1, func() { fired = true })

	q.Advance(0.1)
	assert.False(t, fired)
	assert.Equal(t, 0, q.Len())
}

func TestQueueCallbackCancelsDeferred(t *testing.T) {
	q := NewQueue()
	var late Token
	q.After(0, func() { late = q.After(0, func() { t.Fatal("cancelled callback fired") }) })
	q.After(0, func() { q.Cancel(late) })

	q.Advance(0)
	q.Advance(0)
	assert.Equal(t, 0, q.Len())
}

func TestQueueReset(t *testing.T) {
	q := NewQueue()
	q.After(0.1, func() { t.Fatal("reset callback fired") })
	q.Reset()
	q.Advance(1)
	assert.Equal(t, 0, q.Len())
}

func TestQueueRearmKeepsCadence(t *testing.T) {
	q := NewQueue()
	var fired []float64
	var tick func()
	tick = func() {
		fired = append(fired, q.Now())
		q.After(0.5, tick)
	}
	q.After(0.5, tick)

	for i := 0; i < 8; i++ {
		q.Advance(0.4)
	}
	require.Len(t, fired, 6)
	for i, at := range fired {
		assert.InDelta(t, 0.5*float64(i+1), at, 1e-9)
	}
	assert.InDelta(t, 3.2, q.Now(), 1e-9, "the clock ends at the frame time")
}
