package service

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSlotLockSerialisesSameKey(t *testing.T) {
	svc := NewSlotLockService(quietLogger())
	defer svc.Stop()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := svc.Lock("3", "2026-03-02")
			defer release()

			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestSlotLockIndependentKeys(t *testing.T) {
	svc := NewSlotLockService(quietLogger())
	defer svc.Stop()

	release := svc.Lock("3", "2026-03-02")
	defer release()

	done := make(chan struct{})
	go func() {
		svc.Lock("3", "2026-03-03")()
		svc.Lock("4", "2026-03-02")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different doctor/date blocked")
	}
}

func TestSlotLockCleanupStale(t *testing.T) {
	svc := NewSlotLockService(quietLogger())
	defer svc.Stop()

	svc.Lock("3", "2026-03-02")()
	held := svc.Lock("4", "2026-03-02")

	assert.Equal(t, 1, svc.cleanupStale(time.Now().Add(time.Hour)))
	held()
	assert.Equal(t, 1, svc.cleanupStale(time.Now().Add(time.Hour)))
	assert.Zero(t, svc.cleanupStale(time.Now().Add(time.Hour)))
}

func TestSlotLockCleanupKeepsWaitingEntry(t *testing.T) {
	svc := NewSlotLockService(quietLogger())
	defer svc.Stop()

	svc.Lock("3", "2026-03-02")()

	// A caller that has looked the mutex up but not locked it yet.
	waiting := svc.acquire("3|2026-03-02")
	assert.Zero(t, svc.cleanupStale(time.Now().Add(time.Hour)))

	release := svc.Lock("3", "2026-03-02")
	svc.mu.Lock()
	assert.Same(t, waiting, svc.slots["3|2026-03-02"])
	svc.mu.Unlock()
	assert.False(t, waiting.mu.TryLock())
	release()

	svc.release(waiting)
	assert.Equal(t, 1, svc.cleanupStale(time.Now().Add(time.Hour)))
}

func TestSlotLockStopIsIdempotent(t *testing.T) {
	svc := NewSlotLockService(quietLogger())
	svc.Stop()
	assert.NotPanics(t, svc.Stop)
}

func TestMonotonicClock(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := NewMonotonicClock(func() time.Time { return fixed }, time.Millisecond)

	first := clock.Now()
	second := clock.Now()
	third := clock.Now()

	assert.Equal(t, fixed, first)
	assert.Equal(t, fixed.Add(time.Millisecond), second)
	assert.Equal(t, fixed.Add(2*time.Millisecond), third)
}

func TestMonotonicClockFollowsWallClock(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := NewMonotonicClock(func() time.Time { return now }, time.Nanosecond)

	assert.Equal(t, now, clock.Now())
	now = now.Add(time.Second)
	assert.Equal(t, now, clock.Now())
}
