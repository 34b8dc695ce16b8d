package usecase

import (
	"context"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"

	"github.com/sirupsen/logrus"
)

const defaultActivityLimit = 100

type ActivityLogUsecase interface {
	// List returns the newest entries first.
	List(ctx context.Context, limit int) (*dto.ActivityLogListResponse, error)
}

type activityLogUsecase struct {
	store   *store.Handle
	log     *logrus.Logger
	logRepo repository.ActivityLogRepository
}

func NewActivityLogUsecase(handle *store.Handle, log *logrus.Logger, logRepo repository.ActivityLogRepository) ActivityLogUsecase {
	return &activityLogUsecase{
		store:   handle,
		log:     log,
		logRepo: logRepo,
	}
}

func (u *activityLogUsecase) List(ctx context.Context, limit int) (*dto.ActivityLogListResponse, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	logs, err := u.logRepo.FindRecent(u.store.DB(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list activity logs: %+v", err)
		return nil, err
	}

	total, err := u.logRepo.Count(u.store.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to count activity logs: %+v", err)
		return nil, err
	}

	return &dto.ActivityLogListResponse{
		Logs:  converter.ActivityLogsToResponses(logs),
		Total: int(total),
	}, nil
}
