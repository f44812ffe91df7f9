package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/teamreg/backend/pkg/logger"
	"go.uber.org/zap"
)

// Probe reports whether the durable backend is currently reachable. It is
// evaluated fresh on every call, so backend selection is per-call, never
// pinned per record.
type Probe func(ctx context.Context) bool

// fallbackRegistrationRepository routes each call to the durable backend
// when the probe passes and to the in-process fallback otherwise. Reads try
// the routed backend first and then the other one, since a record written
// during an outage lives only in the fallback.
type fallbackRegistrationRepository struct {
	primary  RegistrationRepository
	fallback RegistrationRepository
	probe    Probe
}

func NewFallbackRegistrationRepository(primary, fallback RegistrationRepository, probe Probe) RegistrationRepository {
	return &fallbackRegistrationRepository{
		primary:  primary,
		fallback: fallback,
		probe:    probe,
	}
}

func (f *fallbackRegistrationRepository) Create(ctx context.Context, reg *Registration) error {
	if f.primary != nil && f.probe(ctx) {
		return f.primary.Create(ctx, reg)
	}

	logger.FromContext(ctx).Warn("durable store unreachable, saving registration to memory",
		zap.String("team_id", reg.TeamID))

	return f.fallback.Create(ctx, reg)
}

func (f *fallbackRegistrationRepository) Get(ctx context.Context, teamID string) (*Registration, error) {
	first, second := f.fallback, RegistrationRepository(nil)
	if f.primary != nil && f.probe(ctx) {
		first, second = f.primary, f.fallback
	}

	reg, err := first.Get(ctx, teamID)
	if err == nil || !errors.Is(err, ErrNotFound) || second == nil {
		return reg, err
	}

	return second.Get(ctx, teamID)
}
