// Package wizard models the four-step registration flow as a small state
// machine: each forward transition is gated by the current step's validator,
// backward transitions are unguarded, and submission re-runs the final guard
// before calling the registration backend.
package wizard

import (
	"context"
	"regexp"

	"github.com/pkg/errors"

	"github.com/teamreg/backend/internal/model"
)

type Step int

const (
	StepVerification Step = iota + 1
	StepTeamInfo
	StepMembers
	StepUpload
)

// MaxMembers is the roster soft cap enforced by the form, not the server.
const MaxMembers = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrMissingToken    = errors.New("verification token is required")
	ErrMissingTeamInfo = errors.New("team name and leader name are required")
	ErrInvalidEmail    = errors.New("a valid email address is required")
	ErrNoValidMembers  = errors.New("at least one member with name and email is required")
	ErrMissingUpload   = errors.New("an id document must be attached")
)

// Form holds everything the wizard collects across its steps.
type Form struct {
	RecaptchaToken  string
	TeamName        string
	TeamLeaderName  string
	TeamLeaderEmail string
	Members         []model.TeamMember
	FileAttached    bool
}

// Submitter is the registration backend the wizard submits to.
type Submitter interface {
	Submit(ctx context.Context, form *Form) (*model.PublicRegistration, error)
}

type Wizard struct {
	step      Step
	form      Form
	submitter Submitter
}

func New(submitter Submitter) *Wizard {
	return &Wizard{
		step:      StepVerification,
		submitter: submitter,
	}
}

func (w *Wizard) Step() Step  { return w.step }
func (w *Wizard) Form() *Form { return &w.form }

// Next validates the current step and advances on success. From the final
// step it stays put; submission is a separate action.
func (w *Wizard) Next() error {
	if err := w.validate(w.step); err != nil {
		return err
	}
	if w.step < StepUpload {
		w.step++
	}
	return nil
}

// Previous moves one step back without validation, flooring at the first
// step.
func (w *Wizard) Previous() {
	if w.step > StepVerification {
		w.step--
	}
}

// Submit re-runs the final guard and hands the form to the backend. On
// failure the wizard stays on the upload step so the user can retry.
func (w *Wizard) Submit(ctx context.Context) (*model.PublicRegistration, error) {
	if err := w.validate(StepUpload); err != nil {
		return nil, err
	}
	return w.submitter.Submit(ctx, &w.form)
}

func (w *Wizard) validate(step Step) error {
	switch step {
	case StepVerification:
		if w.form.RecaptchaToken == "" {
			return ErrMissingToken
		}
	case StepTeamInfo:
		if w.form.TeamName == "" || w.form.TeamLeaderName == "" {
			return ErrMissingTeamInfo
		}
		if !emailPattern.MatchString(w.form.TeamLeaderEmail) {
			return ErrInvalidEmail
		}
	case StepMembers:
		valid := 0
		for _, m := range w.form.Members {
			if m.Name == "" || m.Email == "" {
				// Blank roster rows do not count and do not block.
				continue
			}
			if !emailPattern.MatchString(m.Email) {
				return errors.Wrap(ErrInvalidEmail, m.Name)
			}
			valid++
		}
		if valid == 0 {
			return ErrNoValidMembers
		}
	case StepUpload:
		if !w.form.FileAttached {
			return ErrMissingUpload
		}
	}
	return nil
}
