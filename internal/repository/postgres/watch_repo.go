package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

var ErrWatchAlreadyExists = errors.New("a pending watch for this route and window already exists")

type WatchRepository struct {
	db *pgxpool.Pool
}

func NewWatchRepository(db *pgxpool.Pool) *WatchRepository {
	return &WatchRepository{
		db: db,
	}
}

func (r *WatchRepository) Create(ctx context.Context, w *domain.Watch) error {
	passengers, err := json.Marshal(w.Passengers)
	if err != nil {
		return fmt.Errorf("marshal passengers: %w", err)
	}
	query := `INSERT INTO watches (user_id, from_station, to_station, depart_after, depart_before, passengers, priority, status)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
						RETURNING id, created_at`
	err = r.db.QueryRow(ctx, query, w.UserID, w.From.Code, w.To.Code, w.DepartAfter, w.DepartBefore,
		passengers, string(w.Priority), string(domain.WatchPending)).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return createWatchError(err)
	}
	w.Status = domain.WatchPending
	return nil
}

func createWatchError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == domain.ErrUniqueViolation {
			return ErrWatchAlreadyExists
		}
	}
	return err
}

// GetPending returns the pending watches of userID, oldest first.
func (r *WatchRepository) GetPending(ctx context.Context, userID string) ([]*domain.Watch, error) {
	query := `SELECT id, user_id, from_station, to_station, depart_after, depart_before, passengers, priority, status, created_at
						FROM watches WHERE status = $1 AND user_id = $2 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, string(domain.WatchPending), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pendings := make([]*domain.Watch, 0, 10)
	for rows.Next() {
		var (
			w          = &domain.Watch{}
			from, to   string
			passengers []byte
			priority   string
			status     string
		)
		err := rows.Scan(&w.ID, &w.UserID, &from, &to, &w.DepartAfter, &w.DepartBefore, &passengers, &priority, &status, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(passengers, &w.Passengers); err != nil {
			return nil, fmt.Errorf("watch %d passengers: %w", w.ID, err)
		}
		w.From = domain.StationByCode(from)
		w.To = domain.StationByCode(to)
		w.Priority = domain.PriorityPolicy(priority)
		w.Status = domain.WatchStatus(status)
		pendings = append(pendings, w)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return pendings, nil
}

func (r *WatchRepository) MarkBooked(ctx context.Context, id int64, reservationID string) error {
	query := `UPDATE watches SET status = $1, reservation_id = $2, last_error = '' WHERE id = $3`
	return r.mark(ctx, query, string(domain.WatchBooked), reservationID, id)
}

func (r *WatchRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	query := `UPDATE watches SET status = $1, last_error = $2 WHERE id = $3`
	return r.mark(ctx, query, string(domain.WatchFailed), reason, id)
}

func (r *WatchRepository) mark(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWatchNotFound
	}
	return nil
}
