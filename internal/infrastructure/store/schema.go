package store

import (
	"slices"

	"hospital-portal/internal/domain/entity"
)

// CollectionSpec declares one collection: its backing model, key column and
// the indexes that must exist once the collection is created.
type CollectionSpec struct {
	Name          string
	Model         any
	KeyPath       string
	AutoIncrement bool
	Indexes       []string
}

// Version lists the collections introduced at a schema version.
type Version struct {
	Number      int
	Collections []CollectionSpec
}

// Schema is an ordered, additive list of versions.
type Schema struct {
	Versions []Version
}

// CanonicalSchema is the healthcareDB layout. Later versions only add.
var CanonicalSchema = Schema{
	Versions: []Version{
		{
			Number: 1,
			Collections: []CollectionSpec{
				{Name: entity.CollectionPatients, Model: &entity.Patient{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_patients_name", "idx_patients_nhs", "idx_patients_email"}},
				{Name: entity.CollectionDoctors, Model: &entity.Doctor{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_doctors_name", "idx_doctors_specialization", "idx_doctors_email"}},
				{Name: entity.CollectionAccounts, Model: &entity.Account{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_accounts_username"}},
			},
		},
		{
			Number: 2,
			Collections: []CollectionSpec{
				{Name: entity.CollectionContactMessages, Model: &entity.ContactMessage{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_contact_messages_ts"}},
			},
		},
		{
			Number: 3,
			Collections: []CollectionSpec{
				{Name: entity.CollectionLogs, Model: &entity.ActivityLog{}, KeyPath: "timestamp"},
				{Name: entity.CollectionAppointments, Model: &entity.Appointment{}, KeyPath: "id",
					Indexes: []string{"idx_appointments_by_doctor", "idx_appointments_by_patient", "idx_appointments_by_date"}},
				{Name: entity.CollectionMedicines, Model: &entity.Medicine{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_medicines_drug", "idx_medicines_stock"}},
				{Name: entity.CollectionPrescriptions, Model: &entity.Prescription{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_prescriptions_by_doctor", "idx_prescriptions_by_patient", "idx_prescriptions_by_medicine"}},
			},
		},
		{
			Number: 4,
			Collections: []CollectionSpec{
				{Name: entity.CollectionRestockRequests, Model: &entity.RestockRequest{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_restock_requests_medicine"}},
			},
		},
	},
}

// Latest returns the highest declared version number.
func (s Schema) Latest() int {
	latest := 0
	for _, v := range s.Versions {
		latest = max(latest, v.Number)
	}
	return latest
}

// CollectionsUpTo returns every collection introduced at or below version.
func (s Schema) CollectionsUpTo(version int) []CollectionSpec {
	var out []CollectionSpec
	for _, v := range s.Versions {
		if v.Number <= version {
			out = append(out, v.Collections...)
		}
	}
	return out
}

// Lookup finds a collection by name across all versions.
func (s Schema) Lookup(name string) (CollectionSpec, bool) {
	for _, v := range s.Versions {
		idx := slices.IndexFunc(v.Collections, func(c CollectionSpec) bool { return c.Name == name })
		if idx >= 0 {
			return v.Collections[idx], true
		}
	}
	return CollectionSpec{}, false
}
