package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamreg/backend/internal/model"
)

type stubSubmitter struct {
	result *model.PublicRegistration
	err    error
	calls  int
}

func (s *stubSubmitter) Submit(_ context.Context, _ *Form) (*model.PublicRegistration, error) {
	s.calls++
	return s.result, s.err
}

func fillVerification(w *Wizard) { w.Form().RecaptchaToken = "token" }

func fillTeamInfo(w *Wizard) {
	w.Form().TeamName = "Rocket"
	w.Form().TeamLeaderName = "Ada Lovelace"
	w.Form().TeamLeaderEmail = "ada@example.com"
}

func fillMembers(w *Wizard) {
	w.Form().Members = []model.TeamMember{{Name: "Grace Hopper", Email: "grace@example.com"}}
}

func TestWizard_LinearFlow(t *testing.T) {
	w := New(&stubSubmitter{})
	assert.Equal(t, StepVerification, w.Step())

	fillVerification(w)
	assert.NoError(t, w.Next())
	assert.Equal(t, StepTeamInfo, w.Step())

	fillTeamInfo(w)
	assert.NoError(t, w.Next())
	assert.Equal(t, StepMembers, w.Step())

	fillMembers(w)
	assert.NoError(t, w.Next())
	assert.Equal(t, StepUpload, w.Step())

	// The final step does not advance past itself.
	w.Form().FileAttached = true
	assert.NoError(t, w.Next())
	assert.Equal(t, StepUpload, w.Step())
}

func TestWizard_GuardsBlockAdvancement(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*Wizard)
		expectedErr error
	}{
		{
			name:        "empty token",
			setup:       func(w *Wizard) {},
			expectedErr: ErrMissingToken,
		},
		{
			name: "missing leader name",
			setup: func(w *Wizard) {
				fillVerification(w)
				assert.NoError(t, w.Next())
				w.Form().TeamName = "Rocket"
				w.Form().TeamLeaderEmail = "ada@example.com"
			},
			expectedErr: ErrMissingTeamInfo,
		},
		{
			name: "malformed leader email",
			setup: func(w *Wizard) {
				fillVerification(w)
				assert.NoError(t, w.Next())
				fillTeamInfo(w)
				w.Form().TeamLeaderEmail = "not-an-email"
			},
			expectedErr: ErrInvalidEmail,
		},
		{
			name: "no valid members",
			setup: func(w *Wizard) {
				fillVerification(w)
				assert.NoError(t, w.Next())
				fillTeamInfo(w)
				assert.NoError(t, w.Next())
			},
			expectedErr: ErrNoValidMembers,
		},
		{
			name: "member with malformed email",
			setup: func(w *Wizard) {
				fillVerification(w)
				assert.NoError(t, w.Next())
				fillTeamInfo(w)
				assert.NoError(t, w.Next())
				w.Form().Members = []model.TeamMember{{Name: "Grace Hopper", Email: "grace"}}
			},
			expectedErr: ErrInvalidEmail,
		},
		{
			name: "no file attached",
			setup: func(w *Wizard) {
				fillVerification(w)
				assert.NoError(t, w.Next())
				fillTeamInfo(w)
				assert.NoError(t, w.Next())
				fillMembers(w)
				assert.NoError(t, w.Next())
			},
			expectedErr: ErrMissingUpload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(&stubSubmitter{})
			tt.setup(w)

			before := w.Step()
			err := w.Next()
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, before, w.Step(), "failed guard must not advance")
		})
	}
}

func TestWizard_AddingValidMemberUnblocksStepThree(t *testing.T) {
	w := New(&stubSubmitter{})
	fillVerification(w)
	assert.NoError(t, w.Next())
	fillTeamInfo(w)
	assert.NoError(t, w.Next())

	// Blank roster rows do not count.
	w.Form().Members = []model.TeamMember{{}, {Name: "Grace Hopper"}}
	assert.ErrorIs(t, w.Next(), ErrNoValidMembers)
	assert.Equal(t, StepMembers, w.Step())

	w.Form().Members = append(w.Form().Members, model.TeamMember{
		Name:  "Alan Turing",
		Email: "alan@example.com",
	})
	assert.NoError(t, w.Next())
	assert.Equal(t, StepUpload, w.Step())
}

func TestWizard_PreviousIsUnguarded(t *testing.T) {
	w := New(&stubSubmitter{})
	fillVerification(w)
	assert.NoError(t, w.Next())

	w.Previous()
	assert.Equal(t, StepVerification, w.Step())

	// Floors at the first step.
	w.Previous()
	assert.Equal(t, StepVerification, w.Step())
}

func TestWizard_Submit(t *testing.T) {
	advanceToUpload := func(w *Wizard) {
		fillVerification(w)
		assert.NoError(t, w.Next())
		fillTeamInfo(w)
		assert.NoError(t, w.Next())
		fillMembers(w)
		assert.NoError(t, w.Next())
	}

	t.Run("success returns the created record", func(t *testing.T) {
		sub := &stubSubmitter{result: &model.PublicRegistration{TeamID: "TEAM-1A2B-3C4D"}}
		w := New(sub)
		advanceToUpload(w)
		w.Form().FileAttached = true

		got, err := w.Submit(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "TEAM-1A2B-3C4D", got.TeamID)
		assert.Equal(t, 1, sub.calls)
	})

	t.Run("re-runs the upload guard", func(t *testing.T) {
		sub := &stubSubmitter{}
		w := New(sub)
		advanceToUpload(w)

		_, err := w.Submit(context.Background())
		assert.ErrorIs(t, err, ErrMissingUpload)
		assert.Zero(t, sub.calls)
	})

	t.Run("backend failure keeps the wizard on the upload step", func(t *testing.T) {
		sub := &stubSubmitter{err: errors.New("server error")}
		w := New(sub)
		advanceToUpload(w)
		w.Form().FileAttached = true

		_, err := w.Submit(context.Background())
		assert.Error(t, err)
		assert.Equal(t, StepUpload, w.Step())
	})
}
