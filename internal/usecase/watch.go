package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

// WatchUsecase searches pending watches for a bookable train and reserves
// it.
type WatchUsecase struct {
	watches domain.WatchRepository
	trains  domain.TrainService
	now     func() time.Time
}

func NewWatchUsecase(watches domain.WatchRepository, trains domain.TrainService) *WatchUsecase {
	return &WatchUsecase{
		watches: watches,
		trains:  trains,
		now:     time.Now,
	}
}

func (u *WatchUsecase) Create(ctx context.Context, w *domain.Watch) error {
	if w.UserID == "" {
		return ErrUserIDEmpty
	}
	if !w.DepartBefore.After(w.DepartAfter) {
		return domain.ErrWatchWindowEmpty
	}
	if domain.TotalPassengers(w.Passengers) <= 0 {
		return domain.ErrWatchNoPassengers
	}
	if !w.Priority.Valid() {
		return domain.ErrInvalidPriority
	}
	for _, s := range []domain.Station{w.From, w.To} {
		if _, err := domain.GetStation(s.Name); err != nil || s.Code == "" {
			return domain.ErrStationNotFound
		}
	}
	return u.watches.Create(ctx, w)
}

// Pending returns the open watches of userID. Watches whose window has
// closed are marked failed on the way.
func (u *WatchUsecase) Pending(ctx context.Context, userID string) ([]*domain.Watch, error) {
	watches, err := u.watches.GetPending(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	open := watches[:0]
	for _, w := range watches {
		if !w.Closed(now) {
			open = append(open, w)
			continue
		}
		if err := u.watches.MarkFailed(ctx, w.ID, domain.ErrWatchWindowClosed.Error()); err != nil {
			return nil, fmt.Errorf("close watch %d: %w", w.ID, err)
		}
		slog.Info("watch window closed", "watch", w.ID)
	}
	return open, nil
}

// Attempt scans the watch window in departure order and reserves the first
// SRT train with a seat the priority policy accepts. It returns nil without
// error when nothing is bookable yet.
func (u *WatchUsecase) Attempt(ctx context.Context, w *domain.Watch) (*domain.Reservation, error) {
	from := w.DepartAfter
	if now := u.now(); now.After(from) {
		from = now
	}
	if w.Closed(from) {
		return nil, nil
	}

	for page, err := range u.trains.Pages(ctx, w.From, w.To, from) {
		if err != nil {
			return nil, err
		}
		for _, t := range page {
			if t.DepartureTime.After(w.DepartBefore) {
				return nil, nil
			}
			if !w.Covers(t) || !t.IsSRT() || !t.HasSeat(w.Priority) {
				continue
			}
			return u.trains.Reserve(ctx, t, w.Passengers, w.Priority)
		}
	}
	return nil, nil
}

// Process runs one attempt for w and records the outcome. Errors that a
// later attempt cannot fix mark the watch failed; the rest are returned so
// the caller can retry on its next round.
func (u *WatchUsecase) Process(ctx context.Context, w *domain.Watch) error {
	r, err := u.Attempt(ctx, w)
	if err != nil {
		if permanent(err) {
			if markErr := u.watches.MarkFailed(ctx, w.ID, err.Error()); markErr != nil {
				return errors.Join(err, markErr)
			}
		}
		return err
	}
	if r == nil {
		return nil
	}

	slog.Info("watch booked", "watch", w.ID, "reservation", r.ID, "train", r.Train.Number)
	return u.watches.MarkBooked(ctx, w.ID, r.ID)
}

func permanent(err error) bool {
	switch domain.KindOf(err) {
	case domain.KindStationNotFound, domain.KindOnlySRTTrain, domain.KindUserNotFound, domain.KindPasswordIncorrect:
		return true
	}
	return false
}
