package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ActivityLogService appends administrative audit entries. Entries are
// written on the caller's transaction so they commit with the change they
// describe.
type ActivityLogService interface {
	Record(ctx context.Context, tx *gorm.DB, format string, args ...any) error
}

type activityLogService struct {
	log     *logrus.Logger
	logRepo repository.ActivityLogRepository
	clock   *MonotonicClock
}

func NewActivityLogService(log *logrus.Logger, logRepo repository.ActivityLogRepository, clock *MonotonicClock) ActivityLogService {
	return &activityLogService{
		log:     log,
		logRepo: logRepo,
		clock:   clock,
	}
}

func (s *activityLogService) Record(ctx context.Context, tx *gorm.DB, format string, args ...any) error {
	entry := &entity.ActivityLog{
		Timestamp: entity.FormatLogTimestamp(s.clock.Now()),
		Action:    fmt.Sprintf(format, args...),
	}

	if err := s.logRepo.Create(tx.WithContext(ctx), entry); err != nil {
		s.log.Warnf("Failed to create activity log: %+v", err)
		return err
	}

	return nil
}

// MonotonicClock returns strictly increasing instants even when the wall
// clock stalls or repeats, so time-derived keys never collide in-process.
type MonotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
	step time.Duration
}

// NewMonotonicClock wraps now; successive readings differ by at least step.
func NewMonotonicClock(now func() time.Time, step time.Duration) *MonotonicClock {
	if now == nil {
		now = time.Now
	}
	if step <= 0 {
		step = time.Nanosecond
	}
	return &MonotonicClock{now: now, step: step}
}

func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now()
	if !t.After(c.last) {
		t = c.last.Add(c.step)
	}
	c.last = t
	return t
}
