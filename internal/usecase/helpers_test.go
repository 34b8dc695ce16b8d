package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/fixture"
	"hospital-portal/internal/infrastructure/store"
	impl "hospital-portal/internal/repository"
	"hospital-portal/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv is an opened healthcareDB on a temporary SQLite file plus the real
// repositories over it.
type testEnv struct {
	handle        *store.Handle
	log           *logrus.Logger
	fixtureDir    string
	catalog       *fixture.Catalog
	accounts      repository.AccountRepository
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	medicines     repository.MedicineRepository
	appointments  repository.AppointmentRepository
	prescriptions repository.PrescriptionRepository
	restocks      repository.RestockRequestRepository
	contacts      repository.ContactMessageRepository
	logs          repository.ActivityLogRepository
	activity      service.ActivityLogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "portal.db")), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	log := logrus.New()
	log.SetOutput(io.Discard)

	handle, err := store.NewManager(db, log).Open(context.Background(), "healthcareDB", 4)
	require.NoError(t, err)
	t.Cleanup(func() { handle.Close() })

	fixtureDir := filepath.Join(dir, "fixtures")
	require.NoError(t, os.MkdirAll(fixtureDir, 0o755))

	logs := impl.NewActivityLogRepository()
	return &testEnv{
		handle:        handle,
		log:           log,
		fixtureDir:    fixtureDir,
		catalog:       fixture.NewCatalog(fixture.NewDirSource(fixtureDir)),
		accounts:      impl.NewAccountRepository(),
		patients:      impl.NewPatientRepository(),
		doctors:       impl.NewDoctorRepository(),
		medicines:     impl.NewMedicineRepository(),
		appointments:  impl.NewAppointmentRepository(),
		prescriptions: impl.NewPrescriptionRepository(),
		restocks:      impl.NewRestockRequestRepository(),
		contacts:      impl.NewContactMessageRepository(),
		logs:          logs,
		activity:      service.NewActivityLogService(log, logs, service.NewMonotonicClock(time.Now, time.Microsecond)),
	}
}

func (e *testEnv) db() *gorm.DB {
	return e.handle.DB(context.Background())
}

func (e *testEnv) writeFixture(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.fixtureDir, name), []byte(content), 0o644))
}

func (e *testEnv) addDoctor(t *testing.T, name, email string) *entity.Doctor {
	t.Helper()
	doctor := &entity.Doctor{Name: name, Email: email}
	require.NoError(t, e.doctors.Create(e.db(), doctor))
	return doctor
}

func (e *testEnv) addPatient(t *testing.T, patient *entity.Patient) *entity.Patient {
	t.Helper()
	require.NoError(t, e.patients.Create(e.db(), patient))
	return patient
}

func (e *testEnv) addMedicine(t *testing.T, drug string, stock int) *entity.Medicine {
	t.Helper()
	medicine := &entity.Medicine{Drug: drug, Stock: stock}
	require.NoError(t, e.medicines.Create(e.db(), medicine))
	return medicine
}

func (e *testEnv) activityCount(t *testing.T) int64 {
	t.Helper()
	n, err := e.logs.Count(e.db())
	require.NoError(t, err)
	return n
}

// mockAppointmentRepository delegates to a real repository unless a function
// field overrides the call.
type mockAppointmentRepository struct {
	repository.AppointmentRepository

	CreateFunc      func(db *gorm.DB, appointment *entity.Appointment) error
	CreateCallCount int32
}

var _ repository.AppointmentRepository = (*mockAppointmentRepository)(nil)

func (m *mockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(db, appointment)
	}
	return m.AppointmentRepository.Create(db, appointment)
}

type mockPrescriptionRepository struct {
	repository.PrescriptionRepository

	CreateFunc func(db *gorm.DB, prescription *entity.Prescription) error
}

var _ repository.PrescriptionRepository = (*mockPrescriptionRepository)(nil)

func (m *mockPrescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(db, prescription)
	}
	return m.PrescriptionRepository.Create(db, prescription)
}

type mockDoctorRepository struct {
	repository.DoctorRepository

	FindByIDFunc func(db *gorm.DB, id uint) (*entity.Doctor, error)
}

var _ repository.DoctorRepository = (*mockDoctorRepository)(nil)

func (m *mockDoctorRepository) FindByID(db *gorm.DB, id uint) (*entity.Doctor, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(db, id)
	}
	return m.DoctorRepository.FindByID(db, id)
}
