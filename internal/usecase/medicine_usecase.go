package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidStockLevel = errors.New("stock filter must be empty, low or out")
)

const manualRestockReason = "Requested manually"

type MedicineUsecase interface {
	List(ctx context.Context, search, level string) (*dto.MedicineListResponse, error)
	SetStock(ctx context.Context, id uint, req *dto.SetStockRequest) (*dto.MedicineResponse, error)
	RequestRestock(ctx context.Context, session entity.Session, id uint, req *dto.RestockRequestRequest) error
	ListRestockRequests(ctx context.Context) (*dto.RestockRequestListResponse, error)
}

type medicineUsecase struct {
	store        *store.Handle
	log          *logrus.Logger
	medicineRepo repository.MedicineRepository
	restockRepo  repository.RestockRequestRepository
	activity     service.ActivityLogService
	now          func() time.Time
}

func NewMedicineUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	medicineRepo repository.MedicineRepository,
	restockRepo repository.RestockRequestRepository,
	activity service.ActivityLogService,
) MedicineUsecase {
	return &medicineUsecase{
		store:        handle,
		log:          log,
		medicineRepo: medicineRepo,
		restockRepo:  restockRepo,
		activity:     activity,
		now:          time.Now,
	}
}

func (u *medicineUsecase) List(ctx context.Context, search, level string) (*dto.MedicineListResponse, error) {
	filter := entity.MedicineFilter{
		Search: strings.TrimSpace(search),
		Level:  entity.StockLevel(strings.ToLower(strings.TrimSpace(level))),
	}
	switch filter.Level {
	case entity.StockLevelAny, entity.StockLevelLow, entity.StockLevelOut:
	default:
		return nil, ErrInvalidStockLevel
	}

	medicines, err := u.medicineRepo.FindAll(u.store.DB(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list medicines: %+v", err)
		return nil, err
	}

	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(medicines),
		Total:     len(medicines),
	}, nil
}

func (u *medicineUsecase) SetStock(ctx context.Context, id uint, req *dto.SetStockRequest) (*dto.MedicineResponse, error) {
	var medicine *entity.Medicine

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		var err error
		medicine, err = u.medicineRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if medicine == nil {
			return ErrMedicineNotFound
		}

		previous := medicine.Stock
		medicine.Stock = *req.Stock
		if err := u.medicineRepo.Update(tx, medicine); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Stock of %s changed from %d to %d", medicine.Drug, previous, medicine.Stock)
	})
	if err != nil {
		if !errors.Is(err, ErrMedicineNotFound) {
			u.log.Warnf("Failed to set stock of medicine %d: %+v", id, err)
		}
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) RequestRestock(ctx context.Context, session entity.Session, id uint, req *dto.RestockRequestRequest) error {
	reason := firstNonBlank(strings.TrimSpace(req.Reason), manualRestockReason)

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		medicine, err := u.medicineRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if medicine == nil {
			return ErrMedicineNotFound
		}
		return raiseRestock(ctx, tx, u.restockRepo, u.activity, medicine, session.Profile, reason, u.now())
	})
	if err != nil && !errors.Is(err, ErrMedicineNotFound) {
		u.log.Warnf("Failed to request restock of medicine %d: %+v", id, err)
	}
	return err
}

func (u *medicineUsecase) ListRestockRequests(ctx context.Context) (*dto.RestockRequestListResponse, error) {
	requests, err := u.restockRepo.FindAll(u.store.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to list restock requests: %+v", err)
		return nil, err
	}

	return &dto.RestockRequestListResponse{
		Requests: converter.RestockRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}
