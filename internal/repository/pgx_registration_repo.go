package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type pgxRegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &pgxRegistrationRepository{pool: pool}
}

func (p *pgxRegistrationRepository) Create(ctx context.Context, reg *Registration) error {
	members, err := json.Marshal(reg.TeamMembers)
	if err != nil {
		return errors.Wrap(err, "failed to encode team members")
	}

	q := psql.Insert(
		im.Into("registrations",
			"team_id", "team_name", "team_leader_name", "team_leader_email",
			"team_members", "id_card_path", "id_card_verified", "status",
			"created_at", "updated_at"),
		im.Values(psql.Arg(
			reg.TeamID, reg.TeamName, reg.TeamLeaderName, reg.TeamLeaderEmail,
			members, reg.IDCardPath, reg.IDCardVerified, reg.Status,
			reg.CreatedAt, reg.UpdatedAt)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, sql, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return err
}

func (p *pgxRegistrationRepository) Get(ctx context.Context, teamID string) (*Registration, error) {
	q := psql.Select(
		sm.Columns(
			"team_id", "team_name", "team_leader_name", "team_leader_email",
			"team_members", "id_card_path", "id_card_verified", "status",
			"created_at", "updated_at"),
		sm.From("registrations"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	reg := &Registration{}
	var members []byte
	err = p.pool.QueryRow(ctx, sql, args...).Scan(
		&reg.TeamID, &reg.TeamName, &reg.TeamLeaderName, &reg.TeamLeaderEmail,
		&members, &reg.IDCardPath, &reg.IDCardVerified, &reg.Status,
		&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err = json.Unmarshal(members, &reg.TeamMembers); err != nil {
		return nil, errors.Wrap(err, "failed to decode team members")
	}

	return reg, nil
}
