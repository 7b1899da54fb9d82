package utils

import (
	"strings"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

const maxStationResults = 10

// SearchStations searches stations by a case-insensitive substring of their
// name. An empty query returns the first stations of the network.
// Returns up to 10 matching stations
func SearchStations(query string) []domain.Station {
	all := domain.Stations()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all[:min(len(all), maxStationResults)]
	}

	results := []domain.Station{}
	for _, station := range all {
		if strings.Contains(strings.ToLower(station.Name), query) {
			results = append(results, station)
		}
	}

	if len(results) > maxStationResults {
		return results[:maxStationResults]
	}

	return results
}
