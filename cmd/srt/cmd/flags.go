package cmd

import (
	"fmt"
	"time"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"20060102150405",
	"2006-01-02",
}

// parseTime reads a departure time in KST. An empty value is the zero time.
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, domain.KST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q, use YYYY-MM-DD or YYYY-MM-DDTHH:MM", value)
}

func parseRoute(from, to string) (domain.Station, domain.Station, error) {
	dep, err := domain.GetStation(from)
	if err != nil {
		return domain.Station{}, domain.Station{}, fmt.Errorf("%s: %w", from, err)
	}
	arr, err := domain.GetStation(to)
	if err != nil {
		return domain.Station{}, domain.Station{}, fmt.Errorf("%s: %w", to, err)
	}
	return dep, arr, nil
}

type passengerFlags struct {
	adults, children, seniors int
}

func (p passengerFlags) list() []domain.Passenger {
	var out []domain.Passenger
	if p.adults > 0 {
		out = append(out, domain.Adult(p.adults))
	}
	if p.children > 0 {
		out = append(out, domain.Child(p.children))
	}
	if p.seniors > 0 {
		out = append(out, domain.Senior(p.seniors))
	}
	return out
}
