package repository

import (
	"context"
	"time"
)

type Registration struct {
	TeamID          string    `db:"team_id"`
	TeamName        string    `db:"team_name"`
	TeamLeaderName  string    `db:"team_leader_name"`
	TeamLeaderEmail string    `db:"team_leader_email"`
	TeamMembers     []Member  `db:"team_members"`
	IDCardPath      string    `db:"id_card_path"`
	IDCardVerified  bool      `db:"id_card_verified"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// RegistrationRepository persists team registrations. Create returns
// ErrAlreadyExists on a duplicate team id; Get returns ErrNotFound for an
// unknown id. Both backends share these semantics.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	Get(ctx context.Context, teamID string) (*Registration, error)
}
