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

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	List(ctx context.Context, search string) (*dto.PatientListResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uint) error
}

type patientUsecase struct {
	store       *store.Handle
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	activity    service.ActivityLogService
	phoneRegion string
}

func NewPatientUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	activity service.ActivityLogService,
	phoneRegion string,
) PatientUsecase {
	return &patientUsecase{
		store:       handle,
		log:         log,
		patientRepo: patientRepo,
		activity:    activity,
		phoneRegion: phoneRegion,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		Name:     strings.TrimSpace(req.Name),
		NHS:      strings.TrimSpace(req.NHS),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		DOB:      req.DOB,
		Gender:   req.Gender,
		Phone:    phone.Normalize(req.Phone, u.phoneRegion),
		Address:  strings.TrimSpace(req.Address),
		Password: req.Password,
	}

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		if err := u.ensureUnique(tx, patient); err != nil {
			return err
		}
		if err := u.patientRepo.Create(tx, patient); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Added patient %s", patient.Name)
	})
	if err != nil {
		u.logFailure("create patient", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, search string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.store.DB(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.store.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// Update applies the non-empty fields of req.
func (u *patientUsecase) Update(ctx context.Context, id uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	var patient *entity.Patient

	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		var err error
		patient, err = u.patientRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if req.Name != "" {
			patient.Name = strings.TrimSpace(req.Name)
		}
		if req.NHS != "" {
			patient.NHS = strings.TrimSpace(req.NHS)
		}
		if req.Email != "" {
			patient.Email = strings.ToLower(strings.TrimSpace(req.Email))
		}
		if req.DOB != "" {
			patient.DOB = req.DOB
		}
		if req.Gender != "" {
			patient.Gender = req.Gender
		}
		if req.Phone != "" {
			patient.Phone = phone.Normalize(req.Phone, u.phoneRegion)
		}
		if req.Address != "" {
			patient.Address = strings.TrimSpace(req.Address)
		}
		if req.Password != "" {
			patient.Password = req.Password
		}

		if err := u.ensureUnique(tx, patient); err != nil {
			return err
		}
		if err := u.patientRepo.Update(tx, patient); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Updated patient %s", patient.Name)
	})
	if err != nil {
		u.logFailure("update patient", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, id uint) error {
	err := u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}
		if _, err := u.patientRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.activity.Record(ctx, tx, "Deleted patient %s", patient.Name)
	})
	if err != nil {
		u.logFailure("delete patient", err)
	}
	return err
}

// ensureUnique rejects an email or NHS number already held by another
// patient.
func (u *patientUsecase) ensureUnique(tx *gorm.DB, patient *entity.Patient) error {
	if patient.Email != "" {
		other, err := u.patientRepo.FindByEmail(tx, patient.Email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != patient.ID {
			return ErrEmailAlreadyExists
		}
	}
	if patient.NHS != "" {
		other, err := u.patientRepo.FindByNHS(tx, patient.NHS)
		if err != nil {
			return err
		}
		if other != nil && other.ID != patient.ID {
			return ErrNHSAlreadyExists
		}
	}
	return nil
}

func (u *patientUsecase) logFailure(op string, err error) {
	switch {
	case errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrNHSAlreadyExists):
		u.log.Debugf("Rejected %s: %v", op, err)
	default:
		u.log.Warnf("Failed to %s: %+v", op, err)
	}
}
