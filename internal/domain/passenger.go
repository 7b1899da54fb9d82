package domain

import "fmt"

var passengerCodes = map[string]string{
	"어른/청소년":  "1",
	"장애 1~3급": "2",
	"장애 4~6급": "3",
	"경로":      "4",
	"어린이":     "5",
}

var passengerNames = invert(passengerCodes)

// PassengerName returns the display name of a passenger type code.
func PassengerName(code string) string {
	return passengerNames[code]
}

type Passenger struct {
	Name     string `json:"name"`
	TypeCode string `json:"type_code"`
	Count    int    `json:"count"`
}

func newPassenger(name string, count int) Passenger {
	return Passenger{Name: name, TypeCode: passengerCodes[name], Count: count}
}

func Adult(count int) Passenger          { return newPassenger("어른/청소년", count) }
func Child(count int) Passenger          { return newPassenger("어린이", count) }
func Senior(count int) Passenger         { return newPassenger("경로", count) }
func Disability1To3(count int) Passenger { return newPassenger("장애 1~3급", count) }
func Disability4To6(count int) Passenger { return newPassenger("장애 4~6급", count) }

func (p Passenger) String() string {
	return fmt.Sprintf("%s %d명", p.Name, p.Count)
}

// TotalPassengers sums the head count of a passenger list.
func TotalPassengers(passengers []Passenger) int {
	total := 0
	for _, p := range passengers {
		total += p.Count
	}
	return total
}
