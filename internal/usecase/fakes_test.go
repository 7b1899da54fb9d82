package usecase

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

type fakeSessions struct {
	mu     sync.Mutex
	stored map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{stored: map[string]string{}}
}

func (f *fakeSessions) Save(_ context.Context, s *domain.StoredSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[s.UserID] = s.Token
	s.UpdatedAt = time.Now()
	return nil
}

func (f *fakeSessions) GetByUserID(_ context.Context, userID string) (*domain.StoredSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.stored[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &domain.StoredSession{UserID: userID, Token: token}, nil
}

func (f *fakeSessions) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, userID)
	return nil
}

// fakeTrains serves fixed schedule pages and books whatever it is asked to.
type fakeTrains struct {
	mu        sync.Mutex
	loginErr  error
	resumeErr error
	logins    int
	resumed   string
	token     string

	pages      [][]*domain.Train
	pageErr    error
	pagesRead  int
	reserveErr error
	reserved   []*domain.Train
	passengers []domain.Passenger
}

func (f *fakeTrains) Login(_ context.Context, userID, password, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "token-of-" + userID
	return nil
}

func (f *fakeTrains) Resume(token, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resumeErr != nil {
		return f.resumeErr
	}
	f.resumed = token
	f.token = token
	return nil
}

func (f *fakeTrains) ExportToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTrains) Find(ctx context.Context, from, to domain.Station, date time.Time, all bool) ([]*domain.Train, error) {
	var out []*domain.Train
	for page, err := range f.Pages(ctx, from, to, date) {
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if !all {
			break
		}
	}
	return out, nil
}

func (f *fakeTrains) Pages(_ context.Context, _, _ domain.Station, date time.Time) iter.Seq2[[]*domain.Train, error] {
	return func(yield func([]*domain.Train, error) bool) {
		for _, page := range f.pages {
			f.mu.Lock()
			f.pagesRead++
			f.mu.Unlock()
			var window []*domain.Train
			for _, t := range page {
				if !t.DepartureTime.Before(date) {
					window = append(window, t)
				}
			}
			if len(window) == 0 {
				continue
			}
			if !yield(window, nil) {
				return
			}
		}
		if f.pageErr != nil {
			yield(nil, f.pageErr)
		}
	}
}

func (f *fakeTrains) Reserve(_ context.Context, t *domain.Train, passengers []domain.Passenger, _ domain.PriorityPolicy) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	f.reserved = append(f.reserved, t)
	f.passengers = passengers
	return &domain.Reservation{ID: "R-" + t.Number, Train: t}, nil
}

func (f *fakeTrains) Reservations(context.Context) ([]*domain.Reservation, error) { return nil, nil }

func (f *fakeTrains) ReservationByID(context.Context, string) (*domain.Reservation, error) {
	return nil, nil
}

func (f *fakeTrains) Cancel(context.Context, *domain.Reservation) error { return nil }

func (f *fakeTrains) Tickets(context.Context, *domain.Reservation) ([]domain.Ticket, error) {
	return nil, nil
}

type fakeWatches struct {
	mu      sync.Mutex
	nextID  int64
	watches map[int64]*domain.Watch
}

func newFakeWatches() *fakeWatches {
	return &fakeWatches{watches: map[int64]*domain.Watch{}}
}

func (f *fakeWatches) Create(_ context.Context, w *domain.Watch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	w.ID = f.nextID
	w.Status = domain.WatchPending
	f.watches[w.ID] = w
	return nil
}

func (f *fakeWatches) GetPending(_ context.Context, userID string) ([]*domain.Watch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Watch
	for id := int64(1); id <= f.nextID; id++ {
		if w, ok := f.watches[id]; ok && w.Status == domain.WatchPending && w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWatches) MarkBooked(_ context.Context, id int64, reservationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.watches[id]
	if !ok {
		return domain.ErrWatchNotFound
	}
	w.Status = domain.WatchBooked
	w.ReservationID = reservationID
	return nil
}

func (f *fakeWatches) MarkFailed(_ context.Context, id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.watches[id]
	if !ok {
		return domain.ErrWatchNotFound
	}
	w.Status = domain.WatchFailed
	w.LastError = reason
	return nil
}
