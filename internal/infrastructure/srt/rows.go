package srt

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

// text accepts both JSON strings and numbers; the service mixes them for
// the same field.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	*t = text(b)
	return nil
}

func (t text) String() string { return string(t) }

func (t text) Int() int {
	n, _ := strconv.Atoi(strings.TrimSpace(string(t)))
	return n
}

const layoutDateTime = "20060102 150405"

func parseDateTime(date, tm text) time.Time {
	t, err := time.ParseInLocation(layoutDateTime, string(date)+" "+string(tm), domain.KST)
	if err != nil {
		return time.Time{}
	}
	return t
}

type trainRow struct {
	TrainCode        text `json:"stlbTrnClsfCd"`
	TrainNumber      text `json:"trnNo"`
	DepartureDate    text `json:"dptDt"`
	DepartureTime    text `json:"dptTm"`
	ArrivalDate      text `json:"arvDt"`
	ArrivalTime      text `json:"arvTm"`
	DepartureStation text `json:"dptRsStnCd"`
	ArrivalStation   text `json:"arvRsStnCd"`
	GeneralSeat      text `json:"gnrmRsvPsbStr"`
	SpecialSeat      text `json:"sprmRsvPsbStr"`
}

const seatAvailable = "예약가능"

func (r trainRow) train() *domain.Train {
	arrivalDate := r.ArrivalDate
	if arrivalDate == "" {
		arrivalDate = r.DepartureDate
	}
	return &domain.Train{
		Code:             r.TrainCode.String(),
		Name:             domain.TrainName(r.TrainCode.String()),
		Number:           r.TrainNumber.String(),
		DepartureTime:    parseDateTime(r.DepartureDate, r.DepartureTime),
		ArrivalTime:      parseDateTime(arrivalDate, r.ArrivalTime),
		DepartureStation: domain.StationByCode(r.DepartureStation.String()),
		ArrivalStation:   domain.StationByCode(r.ArrivalStation.String()),
		HasGeneralSeat:   strings.Contains(r.GeneralSeat.String(), seatAvailable),
		HasSpecialSeat:   strings.Contains(r.SpecialSeat.String(), seatAvailable),
	}
}

type reservationTripRow struct {
	ReservationID text `json:"pnrNo"`
	TotalPrice    text `json:"rcvdAmt"`
	SeatCount     text `json:"tkSpecNum"`
}

type reservationPayRow struct {
	trainRow
	PaymentDate text `json:"iseLmtDt"`
	PaymentTime text `json:"iseLmtTm"`
	Settled     text `json:"stlFlg"`
}

func reservation(trip reservationTripRow, pay reservationPayRow) *domain.Reservation {
	return &domain.Reservation{
		ID:          trip.ReservationID.String(),
		TotalPrice:  trip.TotalPrice.Int(),
		SeatCount:   trip.SeatCount.Int(),
		Train:       pay.train(),
		PaymentDate: parseDateTime(pay.PaymentDate, pay.PaymentTime),
		Paid:        pay.Settled == "Y",
	}
}

type ticketRow struct {
	Car           text `json:"scarNo"`
	Seat          text `json:"seatNo"`
	SeatType      text `json:"psrmClCd"`
	PassengerType text `json:"psgTpCd"`
	Price         text `json:"rcvdAmt"`
	OriginalPrice text `json:"stdrPrc"`
	DiscountPrice text `json:"dcntPrc"`
}

func (r ticketRow) ticket() domain.Ticket {
	return domain.Ticket{
		Car:           r.Car.String(),
		Seat:          r.Seat.String(),
		SeatType:      domain.SeatName(r.SeatType.String()),
		PassengerType: domain.PassengerName(r.PassengerType.String()),
		Price:         r.Price.Int(),
		OriginalPrice: r.OriginalPrice.Int(),
		DiscountPrice: r.DiscountPrice.Int(),
	}
}
