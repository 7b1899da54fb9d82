package srt

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

const (
	pathReserve      = "/arc/selectListArc05013_n.do"
	pathReservations = "/atc/selectListAtc14016_n.do"
	pathTickets      = "/ard/selectListArd02017_n.do"
	pathCancel       = "/ard/selectListArd02045_n.do"
)

// Reserve books seats on train and returns the reservation as listed by the
// server afterwards. An empty passenger list books one adult; an empty
// priority books a general seat.
func (c *Client) Reserve(ctx context.Context, train *domain.Train, passengers []domain.Passenger, priority domain.PriorityPolicy) (*domain.Reservation, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	if !train.IsSRT() {
		return nil, domain.ErrOnlySRTTrain
	}

	if len(passengers) == 0 {
		passengers = []domain.Passenger{domain.Adult(1)}
	}
	seat := domain.SeatGeneral
	if priority.WantsSpecialSeat(train.HasGeneralSeat, train.HasSpecialSeat) {
		seat = domain.SeatSpecial
	}

	departure := train.DepartureTime.In(domain.KST)
	form := url.Values{
		"reserveType":    {"11"},
		"jobId":          {"1101"},
		"jrnyCnt":        {"1"},
		"jrnyTpCd":       {"11"},
		"jrnySqno1":      {"001"},
		"stndFlg":        {"N"},
		"trnGpCd1":       {"300"},
		"stlbTrnClsfCd1": {train.Code},
		"dptDt1":         {departure.Format("20060102")},
		"dptTm1":         {departure.Format("150405")},
		"runDt1":         {departure.Format("20060102")},
		"trnNo1":         {trainNumber(train.Number)},
		"dptRsStnCd1":    {train.DepartureStation.Code},
		"dptRsStnCdNm1":  {train.DepartureStation.Name},
		"arvRsStnCd1":    {train.ArrivalStation.Code},
		"arvRsStnCdNm1":  {train.ArrivalStation.Name},
	}
	addPassengers(form, passengers, seat)

	env, err := c.call(ctx, pathReserve, form)
	if err != nil {
		return nil, err
	}
	var created []reservationTripRow
	if err := env.Decode("reservListMap", &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, domain.ErrFailToReserve
	}

	r, err := c.ReservationByID(ctx, created[0].ReservationID.String())
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrFailToReserve
	}
	c.log.Info("reserved", "reservation", r.ID, "train", train.Number, "seat", domain.SeatName(seat))
	return r, nil
}

// trainNumber zero-pads a train number to the five digits the form expects.
func trainNumber(n string) string {
	if len(n) >= 5 {
		return n
	}
	return strings.Repeat("0", 5-len(n)) + n
}

func addPassengers(form url.Values, passengers []domain.Passenger, seat string) {
	form.Set("totPrnb", strconv.Itoa(domain.TotalPassengers(passengers)))
	form.Set("psgGridcnt", strconv.Itoa(len(passengers)))
	for i, p := range passengers {
		n := strconv.Itoa(i + 1)
		form.Set("psgTpCd"+n, p.TypeCode)
		form.Set("psgInfoPerPrnb"+n, strconv.Itoa(p.Count))
		form.Set("locSeatAttCd"+n, "000")
		form.Set("rqSeatAttCd"+n, "015")
		form.Set("dirSeatAttCd"+n, "009")
		form.Set("smkSeatAttCd"+n, "000")
		form.Set("etcSeatAttCd"+n, "000")
		form.Set("psrmClCd"+n, seat)
	}
}

// Reservations lists the account's current reservations.
func (c *Client) Reservations(ctx context.Context) ([]*domain.Reservation, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	env, err := c.call(ctx, pathReservations, url.Values{"pageNo": {"0"}})
	if err != nil {
		return nil, err
	}
	var trips []reservationTripRow
	var pays []reservationPayRow
	if err := env.Decode("trainListMap", &trips); err != nil {
		return nil, err
	}
	if err := env.Decode("payListMap", &pays); err != nil {
		return nil, err
	}

	// The two lists describe the same reservations position by position.
	n := min(len(trips), len(pays))
	reservations := make([]*domain.Reservation, 0, n)
	for i := 0; i < n; i++ {
		reservations = append(reservations, reservation(trips[i], pays[i]))
	}
	return reservations, nil
}

// ReservationByID returns nil without error when no reservation matches.
func (c *Client) ReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	reservations, err := c.Reservations(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

// Tickets fetches the tickets of r once and serves later calls from r.
func (c *Client) Tickets(ctx context.Context, r *domain.Reservation) ([]domain.Ticket, error) {
	if tickets, ok := r.CachedTickets(); ok {
		return tickets, nil
	}
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	env, err := c.call(ctx, pathTickets, url.Values{"pnrNo": {r.ID}, "jrnySqno": {"1"}})
	if err != nil {
		return nil, err
	}
	var rows []ticketRow
	if err := env.Decode("trainListMap", &rows); err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, row.ticket())
	}
	return r.SetTickets(tickets), nil
}

// Cancel cancels r. Cancelling twice fails with ALREADY_CANCELLED.
func (c *Client) Cancel(ctx context.Context, r *domain.Reservation) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	_, err := c.call(ctx, pathCancel, url.Values{"pnrNo": {r.ID}, "jrnyCnt": {"1"}, "rsvChgTno": {"0"}})
	if err != nil {
		return err
	}
	c.log.Info("cancelled", "reservation", r.ID)
	return nil
}
