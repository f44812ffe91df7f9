package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func alwaysUp(context.Context) bool   { return true }
func alwaysDown(context.Context) bool { return false }

func TestFallbackRepository_RoutesWritesByProbe(t *testing.T) {
	tests := []struct {
		name           string
		probe          Probe
		wantInPrimary  bool
		wantInFallback bool
	}{
		{"durable reachable", alwaysUp, true, false},
		{"durable unreachable", alwaysDown, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := NewMemoryRegistrationRepository()
			fallback := NewMemoryRegistrationRepository()
			repo := NewFallbackRegistrationRepository(primary, fallback, tt.probe)
			ctx := context.Background()

			assert.NoError(t, repo.Create(ctx, testRegistration("TEAM-AAAA-0001")))

			_, primaryErr := primary.Get(ctx, "TEAM-AAAA-0001")
			_, fallbackErr := fallback.Get(ctx, "TEAM-AAAA-0001")
			assert.Equal(t, tt.wantInPrimary, primaryErr == nil)
			assert.Equal(t, tt.wantInFallback, fallbackErr == nil)
		})
	}
}

func TestFallbackRepository_GetTriesBothBackends(t *testing.T) {
	primary := NewMemoryRegistrationRepository()
	fallback := NewMemoryRegistrationRepository()
	ctx := context.Background()

	// Written while the durable store was down, read after it came back.
	assert.NoError(t, fallback.Create(ctx, testRegistration("TEAM-AAAA-0002")))

	repo := NewFallbackRegistrationRepository(primary, fallback, alwaysUp)

	got, err := repo.Get(ctx, "TEAM-AAAA-0002")
	assert.NoError(t, err)
	assert.Equal(t, "TEAM-AAAA-0002", got.TeamID)
}

func TestFallbackRepository_GetNotFoundInEitherBackend(t *testing.T) {
	repo := NewFallbackRegistrationRepository(
		NewMemoryRegistrationRepository(),
		NewMemoryRegistrationRepository(),
		alwaysUp,
	)

	_, err := repo.Get(context.Background(), "TEAM-0000-0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackRepository_NilPrimaryAlwaysUsesFallback(t *testing.T) {
	fallback := NewMemoryRegistrationRepository()
	repo := NewFallbackRegistrationRepository(nil, fallback, alwaysUp)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, testRegistration("TEAM-AAAA-0003")))

	got, err := repo.Get(ctx, "TEAM-AAAA-0003")
	assert.NoError(t, err)
	assert.Equal(t, "TEAM-AAAA-0003", got.TeamID)
}
