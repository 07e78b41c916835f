package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tabashir-engine/pkg/models"
)

// ClientStore reads candidate profiles. Profiles are owned by the account
// service; this layer is read-only.
type ClientStore struct {
	pool *pgxpool.Pool
}

// NewClientStore creates a client store backed by the given pool.
func NewClientStore(pool *pgxpool.Pool) *ClientStore {
	return &ClientStore{pool: pool}
}

// ProfileByEmail fetches the matching inputs of a candidate. Returns
// ErrNotFound when no client exists for the email.
func (s *ClientStore) ProfileByEmail(ctx context.Context, email string) (models.CandidateProfile, error) {
	const query = `SELECT client_id, COALESCE(email, ''), COALESCE(positions, ''),
		COALESCE(skills, ''), COALESCE(location, '')
	FROM clients
	WHERE LOWER(email) = LOWER($1)`

	var profile models.CandidateProfile
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&profile.ClientID, &profile.Email, &profile.Positions,
		&profile.Skills, &profile.Location,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile, ErrNotFound
	}
	if err != nil {
		return profile, fmt.Errorf("failed to fetch client profile: %w", err)
	}
	return profile, nil
}
