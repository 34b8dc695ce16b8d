package entity

// Principal is the identity established by a successful login: exactly one of
// Account or Patient is set, plus the resolved doctor or patient profile when
// one exists.
type Principal struct {
	Role    Role
	Account *Account
	Patient *Patient
	Doctor  *Doctor
}

// Profile returns the identifier the session is keyed on.
func (p *Principal) Profile() string {
	switch {
	case p.Patient != nil && p.Role == RolePatient:
		return string(p.Patient.Identifier())
	case p.Account != nil:
		return p.Account.Username
	}
	return ""
}

// DisplayName is the human-readable name used for snapshots.
func (p *Principal) DisplayName() string {
	switch {
	case p.Doctor != nil && p.Doctor.Name != "":
		return p.Doctor.Name
	case p.Patient != nil && p.Patient.Name != "":
		return p.Patient.Name
	case p.Account != nil:
		return p.Account.Username
	}
	return ""
}

// Session is the minimal per-browser state carried between requests.
type Session struct {
	Profile string `json:"profile"`
	Role    Role   `json:"role"`
	Name    string `json:"name,omitempty"`
}

func (p *Principal) Session() Session {
	return Session{Profile: p.Profile(), Role: p.Role, Name: p.DisplayName()}
}
