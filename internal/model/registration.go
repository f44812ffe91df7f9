package model

import "time"

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusVerified RegistrationStatus = "verified"
	StatusRejected RegistrationStatus = "rejected"
)

// Registration is the durable record representing one submitted team.
type Registration struct {
	TeamID          string             `json:"teamId"`
	TeamName        string             `json:"teamName"`
	TeamLeaderName  string             `json:"teamLeaderName"`
	TeamLeaderEmail string             `json:"teamLeaderEmail"`
	TeamMembers     []*TeamMember      `json:"teamMembers"`
	IDCardPath      string             `json:"idCardPath,omitempty"`
	IDCardVerified  bool               `json:"idCardVerified"`
	Status          RegistrationStatus `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Submission carries the raw registration form fields as received from the
// client. TeamMembers is the undecoded JSON array string from the multipart
// form; the service tolerates malformed payloads by treating them as empty.
type Submission struct {
	TeamName        string `json:"teamName" validate:"required"`
	TeamLeaderName  string `json:"teamLeaderName" validate:"required"`
	TeamLeaderEmail string `json:"teamLeaderEmail" validate:"required,email"`
	TeamMembers     string `json:"teamMembers"`
	RecaptchaToken  string `json:"recaptchaToken"`
	IDCardPath      string `json:"-"`
}

// PublicRegistration is the projection returned from the API. Internal
// bookkeeping fields (status, upload path) stay server-side.
type PublicRegistration struct {
	TeamID          string        `json:"teamId"`
	TeamName        string        `json:"teamName"`
	TeamLeaderName  string        `json:"teamLeaderName"`
	TeamLeaderEmail string        `json:"teamLeaderEmail"`
	TeamMembers     []*TeamMember `json:"teamMembers"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Public returns the API projection of the registration.
func (r *Registration) Public() *PublicRegistration {
	members := r.TeamMembers
	if members == nil {
		members = []*TeamMember{}
	}
	return &PublicRegistration{
		TeamID:          r.TeamID,
		TeamName:        r.TeamName,
		TeamLeaderName:  r.TeamLeaderName,
		TeamLeaderEmail: r.TeamLeaderEmail,
		TeamMembers:     members,
		CreatedAt:       r.CreatedAt,
	}
}
