package entity

import (
	"strconv"
	"strings"
)

// DoctorID identifies a doctor across every appointment source. It is the
// decimal rendering of the doctor's store key.
type DoctorID string

// PatientID identifies a patient across every appointment source: the
// lowercased email when the patient has one, the NHS number otherwise.
type PatientID string

func DoctorIDFromKey(key uint) DoctorID {
	return DoctorID(strconv.FormatUint(uint64(key), 10))
}

// Key returns the store key behind the id, or false when the id does not
// name a stored doctor.
func (id DoctorID) Key() (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(string(id)), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (id DoctorID) String() string {
	return string(id)
}

// NewPatientID canonicalizes a raw email or NHS identifier.
func NewPatientID(raw string) PatientID {
	raw = strings.TrimSpace(raw)
	if IsEmailIdentifier(raw) {
		return PatientID(strings.ToLower(raw))
	}
	return PatientID(raw)
}

func (id PatientID) String() string {
	return string(id)
}

// IsEmailIdentifier reports whether a login identifier should be matched
// against email rather than NHS number.
func IsEmailIdentifier(identifier string) bool {
	return strings.Contains(identifier, "@")
}
