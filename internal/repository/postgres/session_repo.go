package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Save stores the token for s.UserID, replacing an older one.
func (r *SessionRepository) Save(ctx context.Context, s *domain.StoredSession) error {
	query := `INSERT INTO sessions (user_id, token, updated_at)
						VALUES ($1, $2, now())
						ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at
						RETURNING updated_at`
	return r.db.QueryRow(ctx, query, s.UserID, s.Token).Scan(&s.UpdatedAt)
}

func (r *SessionRepository) GetByUserID(ctx context.Context, userID string) (*domain.StoredSession, error) {
	query := `SELECT user_id, token, updated_at FROM sessions WHERE user_id = $1`
	s := &domain.StoredSession{}
	err := r.db.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Token, &s.UpdatedAt)
	if err != nil {
		return nil, sessionError(err)
	}
	return s, nil
}

func sessionError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrSessionNotFound
	}
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
