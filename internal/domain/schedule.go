package domain

import (
	"context"
	"iter"
	"time"
)

// ScheduleProvider searches train schedules.
type ScheduleProvider interface {
	Find(ctx context.Context, from, to Station, date time.Time, all bool) ([]*Train, error)
	Pages(ctx context.Context, from, to Station, date time.Time) iter.Seq2[[]*Train, error]
}

// Booker manages reservations of the logged-in account.
type Booker interface {
	Reserve(ctx context.Context, train *Train, passengers []Passenger, priority PriorityPolicy) (*Reservation, error)
	Reservations(ctx context.Context) ([]*Reservation, error)
	ReservationByID(ctx context.Context, id string) (*Reservation, error)
	Cancel(ctx context.Context, r *Reservation) error
	Tickets(ctx context.Context, r *Reservation) ([]Ticket, error)
}

// Authenticator logs an account in or resumes an exported session.
type Authenticator interface {
	Login(ctx context.Context, userID, password, referer string) error
	Resume(token, userID, password string) error
	ExportToken() (string, error)
}

// TrainService is everything the usecases need from the SRT client.
type TrainService interface {
	Authenticator
	ScheduleProvider
	Booker
}
