package usecase

import (
	"context"
	"errors"
	"testing"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	impl "hospital-portal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var greySession = entity.Session{Profile: "m.grey@example.org", Role: entity.RoleDoctor, Name: "Meredith Grey"}

func newPrescriptionTestUsecase(env *testEnv, prescriptionRepo repository.PrescriptionRepository) PrescriptionUsecase {
	if prescriptionRepo == nil {
		prescriptionRepo = env.prescriptions
	}
	return NewPrescriptionUsecase(env.handle, env.log, env.medicines, prescriptionRepo, env.restocks,
		env.patients, env.catalog, env.activity, nil, 10)
}

func TestPrescribeTakesOneUnit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addPatient(t, &entity.Patient{Name: "Ada Lovelace", NHS: "9434765919", Email: "Ada@Example.org"})
	medicine := env.addMedicine(t, "Amoxicillin", 5)
	uc := newPrescriptionTestUsecase(env, nil)

	resp, err := uc.Prescribe(ctx, greySession, &dto.PrescribeRequest{Patient: "9434765919", MedicineID: medicine.ID, Dosage: " 500mg twice daily "})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.org", resp.Patient)
	assert.Equal(t, "Amoxicillin", resp.MedicineName)
	assert.Equal(t, "500mg twice daily", resp.Dosage)
	assert.Equal(t, 4, resp.RemainingStock)

	stored, err := env.medicines.FindByID(env.db(), medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Stock)
	assert.Equal(t, int64(1), env.activityCount(t))

	mine, err := uc.ListForPatient(ctx, entity.Session{Profile: "ADA@example.org", Role: entity.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)
}

func TestPrescribeOutOfStockRaisesRestock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addPatient(t, &entity.Patient{Name: "Ada Lovelace", Email: "ada@example.org"})
	medicine := env.addMedicine(t, "Salbutamol", 1)
	uc := newPrescriptionTestUsecase(env, nil)
	req := &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: medicine.ID}

	resp, err := uc.Prescribe(ctx, greySession, req)
	require.NoError(t, err)
	assert.Zero(t, resp.RemainingStock)

	_, err = uc.Prescribe(ctx, greySession, req)
	assert.ErrorIs(t, err, ErrOutOfStock)

	requests, err := env.restocks.FindAll(env.db())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, medicine.ID, requests[0].MedicineID)
	assert.Equal(t, "m.grey@example.org", requests[0].RequestedBy)

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)

	stored, err := env.medicines.FindByID(env.db(), medicine.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Stock)
	assert.Equal(t, int64(2), env.activityCount(t))
}

func TestPrescribeRollsBackOnFailedWrite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addPatient(t, &entity.Patient{Name: "Ada Lovelace", Email: "ada@example.org"})
	medicine := env.addMedicine(t, "Ibuprofen", 3)

	failing := &mockPrescriptionRepository{
		PrescriptionRepository: impl.NewPrescriptionRepository(),
		CreateFunc: func(db *gorm.DB, prescription *entity.Prescription) error {
			return errors.New("write failed")
		},
	}
	uc := newPrescriptionTestUsecase(env, failing)

	_, err := uc.Prescribe(ctx, greySession, &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: medicine.ID})
	require.Error(t, err)

	stored, err := env.medicines.FindByID(env.db(), medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
	assert.Zero(t, env.activityCount(t))

	all, err := env.prescriptions.FindAll(env.db())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPrescribeMaterializesFixtureMedicine(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addPatient(t, &entity.Patient{Name: "Ada Lovelace", Email: "ada@example.org"})
	env.writeFixture(t, "medicines.json", `{"medicines": [
		{"id": 3, "Drug": "Insulin", "Strength": "100u/ml"},
		{"id": 4, "Drug": "Warfarin", "stock": 2}
	]}`)
	uc := newPrescriptionTestUsecase(env, nil)

	resp, err := uc.Prescribe(ctx, greySession, &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Insulin", resp.MedicineName)
	assert.Equal(t, 9, resp.RemainingStock)

	resp, err = uc.Prescribe(ctx, greySession, &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RemainingStock)

	resp, err = uc.Prescribe(ctx, greySession, &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: 3})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.RemainingStock)

	_, err = uc.Prescribe(ctx, greySession, &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: 99})
	assert.ErrorIs(t, err, ErrMedicineNotFound)
}

func TestPrescribeRejections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addPatient(t, &entity.Patient{Name: "Ada Lovelace", Email: "ada@example.org"})
	medicine := env.addMedicine(t, "Cetirizine", 8)
	uc := newPrescriptionTestUsecase(env, nil)

	tests := []struct {
		name    string
		session entity.Session
		req     *dto.PrescribeRequest
		wantErr error
	}{
		{
			name:    "patient session",
			session: adaSession,
			req:     &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: medicine.ID},
			wantErr: ErrNotDoctorSession,
		},
		{
			name:    "unknown patient",
			session: greySession,
			req:     &dto.PrescribeRequest{Patient: "nobody@example.org", MedicineID: medicine.ID},
			wantErr: ErrPatientNotFound,
		},
		{
			name:    "blank patient",
			session: greySession,
			req:     &dto.PrescribeRequest{Patient: "  ", MedicineID: medicine.ID},
			wantErr: ErrPatientNotFound,
		},
		{
			name:    "no fixtures for unknown medicine",
			session: greySession,
			req:     &dto.PrescribeRequest{Patient: "ada@example.org", MedicineID: 42},
			wantErr: ErrMedicineNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Prescribe(ctx, tt.session, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := env.medicines.FindByID(env.db(), medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Stock)
}
