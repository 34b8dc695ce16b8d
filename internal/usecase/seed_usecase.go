package usecase

import (
	"context"
	"fmt"

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

// SeedUsecase populates empty collections from the fixture files. Non-empty
// collections are never touched, so repeated runs are harmless.
type SeedUsecase interface {
	Seed(ctx context.Context) (*dto.SeedReport, error)
}

type seedUsecase struct {
	store        *store.Handle
	log          *logrus.Logger
	catalog      *fixture.Catalog
	accountRepo  repository.AccountRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	medicineRepo repository.MedicineRepository
	activity     service.ActivityLogService
	metrics      *metrics.Metrics
	seedStock    int
}

func NewSeedUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	catalog *fixture.Catalog,
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	medicineRepo repository.MedicineRepository,
	activity service.ActivityLogService,
	m *metrics.Metrics,
	seedStock int,
) SeedUsecase {
	return &seedUsecase{
		store:        handle,
		log:          log,
		catalog:      catalog,
		accountRepo:  accountRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		medicineRepo: medicineRepo,
		activity:     activity,
		metrics:      m,
		seedStock:    seedStock,
	}
}

// seedStep seeds one collection. fetch loads fixture records; insert writes
// them on tx and returns how many were new.
type seedStep struct {
	collection string
	file       string
	count      func(db *gorm.DB) (int64, error)
	fetch      func(ctx context.Context) (int, func(tx *gorm.DB) (int, error), error)
}

// Seed runs accounts, patients, doctors and medicines in that order. A
// missing or malformed fixture skips its collection; storage failures abort.
func (u *seedUsecase) Seed(ctx context.Context) (*dto.SeedReport, error) {
	report := &dto.SeedReport{}

	for _, step := range u.steps() {
		result, err := u.run(ctx, step)
		if err != nil {
			return report, err
		}
		report.Collections = append(report.Collections, result)
	}

	return report, nil
}

func (u *seedUsecase) run(ctx context.Context, step seedStep) (dto.SeedCollectionReport, error) {
	result := dto.SeedCollectionReport{Collection: step.collection}

	if err := u.store.Require(ctx, step.collection); err != nil {
		return result, err
	}

	n, err := step.count(u.store.DB(ctx))
	if err != nil {
		return result, err
	}
	if n > 0 {
		result.Skipped = true
		result.Reason = fmt.Sprintf("already holds %d records", n)
		return result, nil
	}

	total, insert, err := step.fetch(ctx)
	if err != nil {
		u.log.Warnf("Skipping seed of %s: %v", step.collection, err)
		result.Skipped = true
		result.Reason = err.Error()
		return result, nil
	}

	hasLogs := u.store.HasCollection(ctx, entity.CollectionLogs)
	err = u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
		// A concurrent seeder may have filled the collection since the
		// count above.
		n, err := step.count(tx)
		if err != nil {
			return err
		}
		if n > 0 {
			result.Skipped = true
			result.Reason = "filled concurrently"
			return nil
		}

		inserted, err := insert(tx)
		if err != nil {
			return err
		}
		result.Inserted = inserted
		if !hasLogs {
			return nil
		}
		return u.activity.Record(ctx, tx, "Loaded %d %s from %s", inserted, step.collection, step.file)
	})
	if err != nil {
		u.log.Errorf("Failed to seed %s: %+v", step.collection, err)
		return result, err
	}

	u.metrics.Seeded(step.collection, result.Inserted)
	u.log.Infof("Seeded %s: %d of %d fixture records inserted", step.collection, result.Inserted, total)
	return result, nil
}

func (u *seedUsecase) steps() []seedStep {
	return []seedStep{
		{
			collection: entity.CollectionAccounts,
			file:       fixture.FileAccounts,
			count:      u.accountRepo.Count,
			fetch: func(ctx context.Context) (int, func(*gorm.DB) (int, error), error) {
				accounts, err := u.catalog.Accounts(ctx)
				if err != nil {
					return 0, nil, err
				}
				return len(accounts), func(tx *gorm.DB) (int, error) {
					return insertEach(accounts, func(a *entity.Account) (bool, error) {
						return u.accountRepo.InsertIfAbsent(tx, a)
					})
				}, nil
			},
		},
		{
			collection: entity.CollectionPatients,
			file:       fixture.FilePatients,
			count:      u.patientRepo.Count,
			fetch: func(ctx context.Context) (int, func(*gorm.DB) (int, error), error) {
				patients, err := u.catalog.Patients(ctx)
				if err != nil {
					return 0, nil, err
				}
				return len(patients), func(tx *gorm.DB) (int, error) {
					return insertEach(patients, func(p *entity.Patient) (bool, error) {
						return u.patientRepo.InsertIfAbsent(tx, p)
					})
				}, nil
			},
		},
		{
			collection: entity.CollectionDoctors,
			file:       fixture.FileDoctors,
			count:      u.doctorRepo.Count,
			fetch: func(ctx context.Context) (int, func(*gorm.DB) (int, error), error) {
				doctors, err := u.catalog.Doctors(ctx)
				if err != nil {
					return 0, nil, err
				}
				return len(doctors), func(tx *gorm.DB) (int, error) {
					return insertEach(doctors, func(d *entity.Doctor) (bool, error) {
						return u.doctorRepo.InsertIfAbsent(tx, d)
					})
				}, nil
			},
		},
		{
			collection: entity.CollectionMedicines,
			file:       fixture.FileMedicines,
			count:      u.medicineRepo.Count,
			fetch: func(ctx context.Context) (int, func(*gorm.DB) (int, error), error) {
				list, err := u.catalog.Medicines(ctx)
				if err != nil {
					return 0, nil, err
				}
				medicines := make([]entity.Medicine, len(list))
				for i, f := range list {
					medicines[i] = f.Medicine
					medicines[i].ID = f.ID
					medicines[i].Stock = u.seedStock
					if f.Stock != nil {
						medicines[i].Stock = *f.Stock
					}
				}
				return len(medicines), func(tx *gorm.DB) (int, error) {
					return insertEach(medicines, func(m *entity.Medicine) (bool, error) {
						return u.medicineRepo.InsertIfAbsent(tx, m)
					})
				}, nil
			},
		},
	}
}

func insertEach[T any](records []T, insert func(*T) (bool, error)) (int, error) {
	inserted := 0
	for i := range records {
		ok, err := insert(&records[i])
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}
