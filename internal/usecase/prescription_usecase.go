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
	"hospital-portal/internal/infrastructure/fixture"
	"hospital-portal/internal/infrastructure/metrics"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOutOfStock       = errors.New("medicine is out of stock, a restock request was raised")
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrNotDoctorSession = errors.New("only doctors can prescribe")
)

const outOfStockReason = "Out of stock at prescription time"

type PrescriptionUsecase interface {
	// Prescribe takes one unit of stock and records the prescription in a
	// single unit of work. With no stock left it raises a restock request
	// instead and returns ErrOutOfStock.
	Prescribe(ctx context.Context, session entity.Session, req *dto.PrescribeRequest) (*dto.PrescriptionResponse, error)
	ListForPatient(ctx context.Context, session entity.Session) (*dto.PrescriptionListResponse, error)
	ListAll(ctx context.Context) (*dto.PrescriptionListResponse, error)
}

type prescriptionUsecase struct {
	store            *store.Handle
	log              *logrus.Logger
	medicineRepo     repository.MedicineRepository
	prescriptionRepo repository.PrescriptionRepository
	restockRepo      repository.RestockRequestRepository
	patientRepo      repository.PatientRepository
	catalog          *fixture.Catalog
	activity         service.ActivityLogService
	metrics          *metrics.Metrics
	materializeStock int
	now              func() time.Time
}

func NewPrescriptionUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	medicineRepo repository.MedicineRepository,
	prescriptionRepo repository.PrescriptionRepository,
	restockRepo repository.RestockRequestRepository,
	patientRepo repository.PatientRepository,
	catalog *fixture.Catalog,
	activity service.ActivityLogService,
	m *metrics.Metrics,
	materializeStock int,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		store:            handle,
		log:              log,
		medicineRepo:     medicineRepo,
		prescriptionRepo: prescriptionRepo,
		restockRepo:      restockRepo,
		patientRepo:      patientRepo,
		catalog:          catalog,
		activity:         activity,
		metrics:          m,
		materializeStock: materializeStock,
		now:              time.Now,
	}
}

func (u *prescriptionUsecase) Prescribe(ctx context.Context, session entity.Session, req *dto.PrescribeRequest) (*dto.PrescriptionResponse, error) {
	if session.Role != entity.RoleDoctor {
		return nil, ErrNotDoctorSession
	}

	patient, err := u.resolvePatient(ctx, req.Patient)
	if err != nil {
		return nil, err
	}

	if err := u.materialize(ctx, req.MedicineID); err != nil {
		return nil, err
	}

	prescriber := firstNonBlank(session.Name, session.Profile)
	var (
		prescription *entity.Prescription
		remaining    int
		outOfStock   bool
	)

	err = u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		medicine, err := u.medicineRepo.FindByID(tx, req.MedicineID)
		if err != nil {
			return err
		}
		if medicine == nil {
			return ErrMedicineNotFound
		}

		taken, err := u.medicineRepo.DecrementStock(tx, medicine.ID)
		if err != nil {
			return err
		}
		if taken == 0 {
			outOfStock = true
			return raiseRestock(ctx, tx, u.restockRepo, u.activity, medicine, session.Profile, outOfStockReason, u.now())
		}

		prescription = &entity.Prescription{
			Doctor:       session.Profile,
			Patient:      patient,
			MedicineID:   medicine.ID,
			MedicineName: medicine.Drug,
			Dosage:       strings.TrimSpace(req.Dosage),
			TS:           u.now().UTC(),
		}
		if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
			return err
		}
		remaining = medicine.Stock - 1

		return u.activity.Record(ctx, tx, "Prescribed %s to %s by %s", medicine.Drug, patient, prescriber)
	})
	if err != nil {
		if !errors.Is(err, ErrMedicineNotFound) {
			u.metrics.Prescription(metrics.ResultFailed)
			u.log.Errorf("Failed to prescribe medicine %d to %s: %+v", req.MedicineID, patient, err)
		}
		return nil, err
	}

	if outOfStock {
		u.metrics.Prescription(metrics.ResultOutOfStock)
		u.log.Infof("Medicine %d out of stock, restock requested by %s", req.MedicineID, session.Profile)
		return nil, ErrOutOfStock
	}

	u.metrics.Prescription(metrics.ResultPrescribed)
	response := converter.PrescriptionToResponse(prescription)
	response.RemainingStock = remaining
	return response, nil
}

func (u *prescriptionUsecase) ListForPatient(ctx context.Context, session entity.Session) (*dto.PrescriptionListResponse, error) {
	patient := entity.NewPatientID(session.Profile)
	prescriptions, err := u.prescriptionRepo.FindByPatient(u.store.DB(ctx), patient)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for %s: %+v", patient, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) ListAll(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindAll(u.store.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// resolvePatient maps a free-form email or NHS reference onto the stored
// patient's canonical identifier.
func (u *prescriptionUsecase) resolvePatient(ctx context.Context, ref string) (entity.PatientID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrPatientNotFound
	}

	db := u.store.DB(ctx)
	var (
		patient *entity.Patient
		err     error
	)
	if entity.IsEmailIdentifier(ref) {
		patient, err = u.patientRepo.FindByEmail(db, ref)
	} else {
		patient, err = u.patientRepo.FindByNHS(db, ref)
	}
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", ref, err)
		return "", err
	}
	if patient == nil {
		return "", ErrPatientNotFound
	}
	return patient.Identifier(), nil
}

// materialize copies a medicine that only exists in medicines.json into the
// store so it can be prescribed.
func (u *prescriptionUsecase) materialize(ctx context.Context, id uint) error {
	existing, err := u.medicineRepo.FindByID(u.store.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %d: %+v", id, err)
		return err
	}
	if existing != nil {
		return nil
	}

	seed, err := u.catalog.Medicine(ctx, id)
	if err != nil {
		if errors.Is(err, fixture.ErrFetchFailed) {
			u.log.Warnf("Medicine %d not stored and fixtures unavailable: %v", id, err)
			return ErrMedicineNotFound
		}
		return err
	}
	if seed == nil {
		return ErrMedicineNotFound
	}

	medicine := seed.Medicine
	medicine.ID = seed.ID
	medicine.Stock = u.materializeStock
	if seed.Stock != nil {
		medicine.Stock = *seed.Stock
	}

	return u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		inserted, err := u.medicineRepo.InsertIfAbsent(tx, &medicine)
		if err != nil || !inserted {
			return err
		}
		return u.activity.Record(ctx, tx, "Loaded medicine %s from %s with stock %d", medicine.Drug, fixture.FileMedicines, medicine.Stock)
	})
}

// raiseRestock records a restock request and its activity entry on tx.
func raiseRestock(
	ctx context.Context,
	tx *gorm.DB,
	restockRepo repository.RestockRequestRepository,
	activity service.ActivityLogService,
	medicine *entity.Medicine,
	requestedBy, reason string,
	at time.Time,
) error {
	request := &entity.RestockRequest{
		MedicineID:   medicine.ID,
		MedicineName: medicine.Drug,
		RequestedBy:  requestedBy,
		Reason:       reason,
		TS:           at.UTC(),
	}
	if err := restockRepo.Create(tx, request); err != nil {
		return err
	}
	return activity.Record(ctx, tx, "Restock requested for %s (stock %d)", medicine.Drug, medicine.Stock)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
