package service

import (
	"sync"
	"sync/atomic"
	"time"

	"hospital-portal/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// Interval for cleaning up stale slot mutexes
	slotLockCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	slotLockStaleThreshold = 10 * time.Minute
)

// =============================================================================
// Types
// =============================================================================

// SlotLockService serialises conflict-check-then-commit for one doctor and
// date inside this process. It does not coordinate separate processes.
type SlotLockService struct {
	log *logrus.Logger

	// Per doctor/date mutex, guarded by mu
	mu    sync.Mutex
	slots map[string]*slotMutex

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// slotMutex counts the callers holding or waiting for it. An entry is only
// removed while refs is zero.
type slotMutex struct {
	mu       sync.Mutex
	refs     int
	lastUsed time.Time
}

// NewSlotLockService starts the background mutex cleanup goroutine.
// Call Stop() during graceful shutdown.
func NewSlotLockService(log *logrus.Logger) *SlotLockService {
	svc := &SlotLockService{
		log:      log,
		slots:    make(map[string]*slotMutex),
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop shuts down the cleanup goroutine. Safe to call multiple times.
func (s *SlotLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Debug("SlotLockService stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Lock acquires the mutex for doctor/date and returns its release function.
func (s *SlotLockService) Lock(doctor entity.DoctorID, date string) func() {
	sm := s.acquire(string(doctor) + "|" + date)
	sm.mu.Lock()
	return func() {
		sm.mu.Unlock()
		s.release(sm)
	}
}

// =============================================================================
// Private Helper Methods
// =============================================================================

func (s *SlotLockService) acquire(key string) *slotMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	sm, ok := s.slots[key]
	if !ok {
		sm = &slotMutex{}
		s.slots[key] = sm
	}
	sm.refs++
	sm.lastUsed = time.Now()
	return sm
}

func (s *SlotLockService) release(sm *slotMutex) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sm.refs--
	sm.lastUsed = time.Now()
}

func (s *SlotLockService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(slotLockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStale(time.Now().Add(-slotLockStaleThreshold))
		}
	}
}

// cleanupStale drops mutexes nobody holds or waits for that were last used
// before cutoff.
func (s *SlotLockService) cleanupStale(cutoff time.Time) int {
	s.mu.Lock()
	var cleaned int
	for key, sm := range s.slots {
		if sm.refs == 0 && sm.lastUsed.Before(cutoff) {
			delete(s.slots, key)
			cleaned++
		}
	}
	s.mu.Unlock()

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
	return cleaned
}
