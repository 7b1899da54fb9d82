package domain

import (
	"context"
	"errors"
	"time"
)

type WatchStatus string

var (
	WatchPending WatchStatus = "pending"
	WatchBooked  WatchStatus = "booked"
	WatchFailed  WatchStatus = "failed"
)

var (
	ErrWatchNotFound     = errors.New("watch not found")
	ErrWatchWindowEmpty  = errors.New("depart_before must be after depart_after")
	ErrWatchNoPassengers = errors.New("at least one passenger is required")
	ErrInvalidPriority   = errors.New("unknown priority policy")
	ErrWatchWindowClosed = errors.New("departure window closed before a seat was found")
)

// Watch asks the worker to keep searching a route and reserve the first
// train departing inside the window that has a seat matching Priority.
type Watch struct {
	ID            int64
	UserID        string
	From          Station
	To            Station
	DepartAfter   time.Time
	DepartBefore  time.Time
	Passengers    []Passenger
	Priority      PriorityPolicy
	Status        WatchStatus
	ReservationID string
	LastError     string
	CreatedAt     time.Time
}

// Closed reports whether no train departing inside the window is left at now.
func (w *Watch) Closed(now time.Time) bool {
	return now.After(w.DepartBefore)
}

// Covers reports whether t departs inside the watch window.
func (w *Watch) Covers(t *Train) bool {
	return !t.DepartureTime.Before(w.DepartAfter) && !t.DepartureTime.After(w.DepartBefore)
}

type WatchRepository interface {
	Create(ctx context.Context, w *Watch) error
	GetPending(ctx context.Context, userID string) ([]*Watch, error)
	MarkBooked(ctx context.Context, id int64, reservationID string) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}
