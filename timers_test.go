package polaris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	var s Scheduler
	var got []int
	s.After(300*time.Millisecond, func() { got = append(got, 3) })
	s.After(100*time.Millisecond, func() { got = append(got, 1) })
	s.After(200*time.Millisecond, func() { got = append(got, 2) })

	s.Advance(150 * time.Millisecond)
	assert.Equal(t, []int{1}, got)
	s.Advance(time.Second)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerChainedTimers(t *testing.T) {
	var s Scheduler
	fired := time.Duration(-1)
	s.After(800*time.Millisecond, func() {
		s.After(500*time.Millisecond, func() { fired = s.Now() })
	})
	s.Advance(time.Second)
	assert.Equal(t, time.Duration(-1), fired)
	assert.Equal(t, 1, s.Pending())
	s.Advance(500 * time.Millisecond)
	assert.Equal(t, 1300*time.Millisecond, fired)
	assert.Equal(t, 1500*time.Millisecond, s.Now())
}

func TestSchedulerCancelAndClear(t *testing.T) {
	var s Scheduler
	calls := 0
	h := s.After(time.Second, func() { calls++ })
	s.After(time.Second, func() { calls++ })

	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.Equal(t, 1, s.Pending())

	s.Clear()
	s.Advance(time.Hour)
	assert.Equal(t, 0, calls)
	assert.False(t, TimerHandle{}.Cancel())
}

func TestSchedulerIgnoresNegativeDelta(t *testing.T) {
	var s Scheduler
	s.Advance(-time.Second)
	assert.Equal(t, time.Duration(0), s.Now())
}
