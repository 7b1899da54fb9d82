package domain

import (
	"sync"
	"time"
)

type Ticket struct {
	Car           string
	Seat          string
	SeatType      string
	PassengerType string
	Price         int
	OriginalPrice int
	DiscountPrice int
}

type Reservation struct {
	ID          string
	TotalPrice  int
	SeatCount   int
	Train       *Train
	PaymentDate time.Time // deadline for paying the reservation
	Paid        bool

	mu      sync.Mutex
	tickets []Ticket
}

// CachedTickets returns the tickets stored by a previous successful fetch.
func (r *Reservation) CachedTickets() ([]Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickets, r.tickets != nil
}

// SetTickets caches tickets for the lifetime of the reservation. Later calls
// are ignored so the first successful fetch wins.
func (r *Reservation) SetTickets(tickets []Ticket) []Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tickets == nil {
		if tickets == nil {
			tickets = []Ticket{}
		}
		r.tickets = tickets
	}
	return r.tickets
}
