package fixture

import (
	"context"
	"fmt"

	"hospital-portal/internal/domain/entity"
)

// Catalog decodes the named fixture files of a Source.
type Catalog struct {
	src Source
}

func NewCatalog(src Source) *Catalog {
	return &Catalog{src: src}
}

func (c *Catalog) Accounts(ctx context.Context) ([]entity.Account, error) {
	return load(ctx, c.src, FileAccounts, DecodeAccounts)
}

func (c *Catalog) Patients(ctx context.Context) ([]entity.Patient, error) {
	return load(ctx, c.src, FilePatients, DecodePatients)
}

func (c *Catalog) Doctors(ctx context.Context) ([]entity.Doctor, error) {
	return load(ctx, c.src, FileDoctors, DecodeDoctors)
}

func (c *Catalog) Medicines(ctx context.Context) ([]MedicineFixture, error) {
	return load(ctx, c.src, FileMedicines, DecodeMedicines)
}

func (c *Catalog) Appointments(ctx context.Context) ([]entity.Appointment, error) {
	return load(ctx, c.src, FileAppointments, DecodeAppointments)
}

// Medicine looks up one medicines.json entry by id. Returns nil when absent.
func (c *Catalog) Medicine(ctx context.Context, id uint) (*MedicineFixture, error) {
	list, err := c.Medicines(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func load[T any](ctx context.Context, src Source, name string, decode func([]byte) ([]T, error)) ([]T, error) {
	data, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	out, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return out, nil
}
