package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/teamreg/backend/internal/model"
	"github.com/teamreg/backend/internal/repository"
	"github.com/teamreg/backend/internal/teamid"
	"github.com/teamreg/backend/pkg/logger"
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) bool
}

type Mailer interface {
	SendConfirmation(ctx context.Context, reg *model.Registration) error
}

type RegistrationService struct {
	registrations repository.RegistrationRepository
	captcha       CaptchaVerifier
	mailer        Mailer
}

func NewRegistrationService() *RegistrationService {
	return &RegistrationService{}
}

func (s *RegistrationService) WithRegistrationRepo(r repository.RegistrationRepository) *RegistrationService {
	s.registrations = r
	return s
}

func (s *RegistrationService) WithCaptchaVerifier(c CaptchaVerifier) *RegistrationService {
	s.captcha = c
	return s
}

func (s *RegistrationService) WithMailer(m Mailer) *RegistrationService {
	s.mailer = m
	return s
}

// Register validates and persists a team submission, then sends the
// confirmation email as a best-effort side effect: a delivery failure is
// logged and never changes the outcome decided by the persistence step.
func (s *RegistrationService) Register(ctx context.Context, sub *model.Submission) (*model.Registration, *Error) {
	l := logger.FromContext(ctx)

	if sub.TeamName == "" || sub.TeamLeaderName == "" || sub.TeamLeaderEmail == "" {
		return nil, NewError(ErrorCodeInvalidBody,
			"missing required fields: teamName, teamLeaderName, teamLeaderEmail")
	}

	if !s.captcha.Verify(ctx, sub.RecaptchaToken) {
		l.Warn("captcha verification failed", zap.String("team_name", sub.TeamName))
		return nil, NewError(ErrorCodeCaptchaFailed, "reCAPTCHA verification failed, please try again")
	}

	// A malformed members payload degrades to an empty roster rather than
	// failing the whole submission.
	var members []*model.TeamMember
	if sub.TeamMembers != "" {
		if err := json.Unmarshal([]byte(sub.TeamMembers), &members); err != nil {
			l.Warn("failed to parse team members, treating as empty", zap.Error(err))
			members = nil
		}
	}
	if members == nil {
		members = []*model.TeamMember{}
	}

	now := time.Now().UTC()
	reg := &model.Registration{
		TeamID:          teamid.Generate(),
		TeamName:        sub.TeamName,
		TeamLeaderName:  sub.TeamLeaderName,
		TeamLeaderEmail: strings.ToLower(sub.TeamLeaderEmail),
		TeamMembers:     members,
		IDCardPath:      sub.IDCardPath,
		IDCardVerified:  sub.IDCardPath != "",
		Status:          model.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.registrations.Create(ctx, toRepository(reg)); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			l.Warn("team id collision", zap.String("team_id", reg.TeamID))
			return nil, NewError(ErrorCodeAlreadyExists, "team id already exists, please retry")
		}
		l.Error("failed to save registration", zap.String("team_id", reg.TeamID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to register team, please try again")
	}

	l.Info("team registered", zap.String("team_id", reg.TeamID), zap.String("team_name", reg.TeamName))

	if err := s.mailer.SendConfirmation(ctx, reg); err != nil {
		l.Error("failed to send confirmation email",
			zap.String("team_id", reg.TeamID),
			zap.String("to", reg.TeamLeaderEmail),
			zap.Error(err))
	}

	return reg, nil
}

// GetTeam looks up a registration by team id. The store facade already
// consults both backends, so a record written during a durable-store outage
// remains readable within the process lifetime.
func (s *RegistrationService) GetTeam(ctx context.Context, teamID string) (*model.Registration, *Error) {
	l := logger.FromContext(ctx)

	stored, err := s.registrations.Get(ctx, teamID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("team not found", zap.String("team_id", teamID))
		return nil, NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		l.Error("failed to fetch team", zap.String("team_id", teamID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to fetch team data")
	}

	return fromRepository(stored), nil
}

// VerifyToken exposes bot verification as a standalone check.
func (s *RegistrationService) VerifyToken(ctx context.Context, token string) (bool, *Error) {
	if token == "" {
		return false, NewError(ErrorCodeInvalidBody, "missing reCAPTCHA token")
	}
	return s.captcha.Verify(ctx, token), nil
}

func toRepository(reg *model.Registration) *repository.Registration {
	members := make([]repository.Member, 0, len(reg.TeamMembers))
	for _, m := range reg.TeamMembers {
		members = append(members, repository.Member(*m))
	}
	return &repository.Registration{
		TeamID:          reg.TeamID,
		TeamName:        reg.TeamName,
		TeamLeaderName:  reg.TeamLeaderName,
		TeamLeaderEmail: reg.TeamLeaderEmail,
		TeamMembers:     members,
		IDCardPath:      reg.IDCardPath,
		IDCardVerified:  reg.IDCardVerified,
		Status:          string(reg.Status),
		CreatedAt:       reg.CreatedAt,
		UpdatedAt:       reg.UpdatedAt,
	}
}

func fromRepository(stored *repository.Registration) *model.Registration {
	members := make([]*model.TeamMember, 0, len(stored.TeamMembers))
	for _, m := range stored.TeamMembers {
		member := model.TeamMember(m)
		members = append(members, &member)
	}
	return &model.Registration{
		TeamID:          stored.TeamID,
		TeamName:        stored.TeamName,
		TeamLeaderName:  stored.TeamLeaderName,
		TeamLeaderEmail: stored.TeamLeaderEmail,
		TeamMembers:     members,
		IDCardPath:      stored.IDCardPath,
		IDCardVerified:  stored.IDCardVerified,
		Status:          model.RegistrationStatus(stored.Status),
		CreatedAt:       stored.CreatedAt,
		UpdatedAt:       stored.UpdatedAt,
	}
}
