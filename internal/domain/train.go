package domain

import (
	"fmt"
	"time"
)

// trainCodes maps train class names to the codes used by stlbTrnClsfCd.
var trainCodes = map[string]string{
	"KTX-산천":  "07",
	"SRT":     "17",
	"KTX":     "00",
	"무궁화":     "02",
	"통근열차":    "03",
	"누리로":     "04",
	"전체":      "05",
	"ITX-새마을": "08",
	"ITX-청춘":  "09",
}

var trainNames = invert(trainCodes)

const TrainCodeSRT = "17"

// KST is the zone every timestamp of the service is expressed in.
var KST = time.FixedZone("KST", 9*60*60)

// TrainName returns the display name of a train class code.
func TrainName(code string) string {
	return trainNames[code]
}

type Train struct {
	Code             string
	Name             string
	Number           string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	DepartureStation Station
	ArrivalStation   Station
	HasGeneralSeat   bool
	HasSpecialSeat   bool
}

// IsSRT reports whether the train can be reserved through this service.
func (t *Train) IsSRT() bool {
	return t.Code == TrainCodeSRT
}

// HasSeat reports whether any seat matching the policy is currently
// reservable.
func (t *Train) HasSeat(p PriorityPolicy) bool {
	switch p {
	case SpecialOnly:
		return t.HasSpecialSeat
	case GeneralFirst, SpecialFirst:
		return t.HasGeneralSeat || t.HasSpecialSeat
	default:
		return t.HasGeneralSeat
	}
}

func (t *Train) String() string {
	return fmt.Sprintf("[%s %s] %s -> %s (%s)", t.Name, t.Number,
		t.DepartureStation, t.ArrivalStation, t.DepartureTime.Format("2006-01-02 15:04"))
}
