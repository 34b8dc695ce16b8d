package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital-portal/internal/domain/entity"
)

// records extracts the list from a fixture document that is either a bare
// array or an object wrapping the array under key.
func records(data []byte, key string) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var list []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	raw, ok := wrapper[key]
	if !ok {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return list, nil
}

func decodeEach[T any](data []byte, key string) ([]T, error) {
	raws, err := records(data, key)
	if err != nil {
		return nil, fmt.Errorf("decode %s fixture: %w", key, err)
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s fixture item %d: %w", key, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type accountDoc struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	LastActive string `json:"lastActive"`
}

// DecodeAccounts parses accounts.json.
func DecodeAccounts(data []byte) ([]entity.Account, error) {
	docs, err := decodeEach[accountDoc](data, "accounts")
	if err != nil {
		return nil, err
	}
	accounts := make([]entity.Account, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Username) == "" {
			continue
		}
		acc := entity.Account{
			Username: strings.TrimSpace(d.Username),
			Password: d.Password,
			Role:     entity.ParseRole(d.Role),
		}
		if t, err := time.Parse(time.RFC3339, d.LastActive); err == nil {
			acc.LastActive = &t
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

type patientDoc struct {
	Name      string `json:"name"`
	First     string `json:"First"`
	Last      string `json:"Last"`
	NHS       string `json:"nhs"`
	NHSUpper  string `json:"NHS"`
	Email     string `json:"email"`
	EmailCap  string `json:"Email"`
	DOB       string `json:"dob"`
	DOBUpper  string `json:"DOB"`
	Gender    string `json:"gender"`
	GenderCap string `json:"Gender"`
	Phone     string `json:"phone"`
	Telephone string `json:"Telephone"`
	Address   string `json:"address"`
	AddrCap   string `json:"Address"`
	Password  string `json:"password"`
}

// DecodePatients parses patients.json.
func DecodePatients(data []byte) ([]entity.Patient, error) {
	docs, err := decodeEach[patientDoc](data, "patients")
	if err != nil {
		return nil, err
	}
	patients := make([]entity.Patient, 0, len(docs))
	for _, d := range docs {
		patients = append(patients, entity.Patient{
			Name:     firstNonEmpty(d.Name, strings.TrimSpace(d.First+" "+d.Last)),
			NHS:      firstNonEmpty(d.NHS, d.NHSUpper),
			Email:    firstNonEmpty(d.Email, d.EmailCap),
			DOB:      firstNonEmpty(d.DOB, d.DOBUpper),
			Gender:   firstNonEmpty(d.Gender, d.GenderCap),
			Phone:    firstNonEmpty(d.Phone, d.Telephone),
			Address:  firstNonEmpty(d.Address, d.AddrCap),
			Password: d.Password,
		})
	}
	return patients, nil
}

type doctorDoc struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Name           string `json:"name"`
	NHS            string `json:"nhs"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	Telephone      string `json:"Telephone"`
	Address        string `json:"Address"`
	Notes          string `json:"notes"`
}

// DecodeDoctors parses doctors.json. The display name is the first and last
// name joined, falling back to name.
func DecodeDoctors(data []byte) ([]entity.Doctor, error) {
	docs, err := decodeEach[doctorDoc](data, "doctors")
	if err != nil {
		return nil, err
	}
	doctors := make([]entity.Doctor, 0, len(docs))
	for _, d := range docs {
		doctors = append(doctors, entity.Doctor{
			Name:           firstNonEmpty(strings.TrimSpace(d.FirstName+" "+d.LastName), d.Name),
			NHS:            d.NHS,
			Email:          d.Email,
			Specialization: d.Specialization,
			Phone:          firstNonEmpty(d.Telephone, d.Phone),
			Address:        d.Address,
			Notes:          d.Notes,
		})
	}
	return doctors, nil
}

// MedicineFixture is a medicines.json entry. Stock is nil when the file does
// not state one, so callers apply their own default.
type MedicineFixture struct {
	ID       uint
	Medicine entity.Medicine
	Stock    *int
}

type medicineDoc struct {
	ID           *uint    `json:"id"`
	Drug         string   `json:"Drug"`
	DrugLower    string   `json:"drug"`
	Stock        *int     `json:"stock"`
	InitialStock *int     `json:"InitialStock"`
	Form         string   `json:"Form"`
	Forms        []string `json:"Forms"`
	Strength     string   `json:"Strength"`
	Manufacturer string   `json:"Manufacturer"`
}

// DecodeMedicines parses medicines.json. Entries without an id are numbered
// by their 1-based position.
func DecodeMedicines(data []byte) ([]MedicineFixture, error) {
	docs, err := decodeEach[medicineDoc](data, "medicines")
	if err != nil {
		return nil, err
	}
	out := make([]MedicineFixture, 0, len(docs))
	for i, d := range docs {
		id := uint(i + 1)
		if d.ID != nil && *d.ID > 0 {
			id = *d.ID
		}
		form := d.Form
		if form == "" && len(d.Forms) > 0 {
			form = d.Forms[0]
		}
		stock := d.Stock
		if stock == nil {
			stock = d.InitialStock
		}
		out = append(out, MedicineFixture{
			ID: id,
			Medicine: entity.Medicine{
				Drug:         firstNonEmpty(d.Drug, d.DrugLower),
				Form:         form,
				Strength:     d.Strength,
				Manufacturer: d.Manufacturer,
			},
			Stock: stock,
		})
	}
	return out, nil
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type appointmentDoc struct {
	ID           flexString `json:"id"`
	Doctor       flexString `json:"doctor"`
	DoctorID     flexString `json:"doctorId"`
	DoctorName   string     `json:"doctorName"`
	DoctorSnake  string     `json:"doctor_name"`
	Patient      string     `json:"patient"`
	UserEmail    string     `json:"userEmail"`
	PatientName  string     `json:"patientName"`
	PatientSnake string     `json:"patient_name"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Status       string     `json:"status"`
}

// DecodeAppointments parses appointments.json and the export-appointments
// document.
func DecodeAppointments(data []byte) ([]entity.Appointment, error) {
	docs, err := decodeEach[appointmentDoc](data, "appointments")
	if err != nil {
		return nil, err
	}
	out := make([]entity.Appointment, 0, len(docs))
	for _, d := range docs {
		id, _ := strconv.ParseInt(string(d.ID), 10, 64)
		status := entity.AppointmentStatus(firstNonEmpty(d.Status, string(entity.AppointmentStatusScheduled)))
		out = append(out, entity.Appointment{
			ID:          id,
			Doctor:      entity.DoctorID(firstNonEmpty(string(d.Doctor), string(d.DoctorID))),
			DoctorName:  firstNonEmpty(d.DoctorName, d.DoctorSnake),
			Patient:     entity.NewPatientID(firstNonEmpty(d.Patient, d.UserEmail)),
			PatientName: firstNonEmpty(d.PatientName, d.PatientSnake),
			Date:        strings.TrimSpace(d.Date),
			Time:        strings.TrimSpace(d.Time),
			Status:      status,
		})
	}
	return out, nil
}
