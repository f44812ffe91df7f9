package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/teamreg/backend/internal/model"
	"github.com/teamreg/backend/internal/repository"
)

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *repository.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Get(ctx context.Context, teamID string) (*repository.Registration, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Registration), args.Error(1)
}

type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendConfirmation(ctx context.Context, reg *model.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

type MockGenerativeClient struct {
	mock.Mock
}

func (m *MockGenerativeClient) Generate(ctx context.Context, message string, history []*model.ChatMessage) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}
