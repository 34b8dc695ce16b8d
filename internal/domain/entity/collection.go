package entity

// Collection names of the healthcareDB schema.
const (
	CollectionPatients        = "patients"
	CollectionDoctors         = "doctors"
	CollectionAccounts        = "accounts"
	CollectionContactMessages = "contactMessages"
	CollectionLogs            = "logs"
	CollectionAppointments    = "appointments"
	CollectionMedicines       = "medicines"
	CollectionPrescriptions   = "prescriptions"
	CollectionRestockRequests = "restockRequests"
)
