package domain

// Seat class codes sent as psrmClCd.
const (
	SeatGeneral = "1"
	SeatSpecial = "2"
)

var seatNames = map[string]string{
	SeatGeneral: "일반실",
	SeatSpecial: "특실",
}

// SeatName returns the display name of a seat class code.
func SeatName(code string) string {
	return seatNames[code]
}

// PriorityPolicy decides between general and special seating.
type PriorityPolicy string

const (
	GeneralOnly  PriorityPolicy = "GENERAL_ONLY"
	SpecialOnly  PriorityPolicy = "SPECIAL_ONLY"
	GeneralFirst PriorityPolicy = "GENERAL_FIRST"
	SpecialFirst PriorityPolicy = "SPECIAL_FIRST"
)

// Valid reports whether p is one of the known policies. The empty policy is
// valid and means GeneralOnly.
func (p PriorityPolicy) Valid() bool {
	switch p {
	case "", GeneralOnly, SpecialOnly, GeneralFirst, SpecialFirst:
		return true
	}
	return false
}

// WantsSpecialSeat resolves the policy against the seats a train currently
// offers. The *First policies fall back to the other class only when the
// preferred one is unavailable.
func (p PriorityPolicy) WantsSpecialSeat(hasGeneralSeat, hasSpecialSeat bool) bool {
	switch p {
	case SpecialOnly:
		return true
	case GeneralFirst:
		return !hasGeneralSeat
	case SpecialFirst:
		return hasSpecialSeat
	default:
		return false
	}
}
