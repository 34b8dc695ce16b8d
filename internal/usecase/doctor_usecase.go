package usecase

import (
	"context"
	"errors"
	"strings"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/service"
	"hospital-portal/pkg/phone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	List(ctx context.Context, search string) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uint) error
}

type doctorUsecase struct {
	store       *store.Handle
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	activity    service.ActivityLogService
	phoneRegion string
}

func NewDoctorUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	activity service.ActivityLogService,
	phoneRegion string,
) DoctorUsecase {
	return &doctorUsecase{
		store:       handle,
		log:         log,
		doctorRepo:  doctorRepo,
		activity:    activity,
		phoneRegion: phoneRegion,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{
		Name:           strings.TrimSpace(req.Name),
		NHS:            strings.TrimSpace(req.NHS),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Specialization: strings.TrimSpace(req.Specialization),
		Phone:          phone.Normalize(req.Phone, u.phoneRegion),
		Address:        strings.TrimSpace(req.Address),
		Notes:          req.Notes,
	}

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Added doctor %s", doctor.Name)
	})
	if err != nil {
		u.log.Warnf("Failed to create doctor %s: %+v", doctor.Name, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) List(ctx context.Context, search string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.store.DB(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uint) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.store.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// Update applies the non-empty fields of req. Appointments already booked
// keep the doctor name they were booked under.
func (u *doctorUsecase) Update(ctx context.Context, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		var err error
		doctor, err = u.doctorRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		if req.Name != "" {
			doctor.Name = strings.TrimSpace(req.Name)
		}
		if req.NHS != "" {
			doctor.NHS = strings.TrimSpace(req.NHS)
		}
		if req.Email != "" {
			doctor.Email = strings.ToLower(strings.TrimSpace(req.Email))
		}
		if req.Specialization != "" {
			doctor.Specialization = strings.TrimSpace(req.Specialization)
		}
		if req.Phone != "" {
			doctor.Phone = phone.Normalize(req.Phone, u.phoneRegion)
		}
		if req.Address != "" {
			doctor.Address = strings.TrimSpace(req.Address)
		}
		if req.Notes != "" {
			doctor.Notes = req.Notes
		}

		if err := u.doctorRepo.Update(tx, doctor); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Updated doctor %s", doctor.Name)
	})
	if err != nil {
		if !errors.Is(err, ErrDoctorNotFound) {
			u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		}
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, id uint) error {
	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		if _, err := u.doctorRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Deleted doctor %s", doctor.Name)
	})
	if err != nil && !errors.Is(err, ErrDoctorNotFound) {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
	}
	return err
}
