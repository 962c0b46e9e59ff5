package departures

import (
	"slices"
	"strings"

	"departures.lillekyla.ee/internal/transitland"
)

// Trip is the trimmed departure record returned to clients. Times are
// zero-padded HH:MM:SS service times.
type Trip struct {
	OriginDepartureTime    string `json:"origin_departure_time"`
	DestinationArrivalTime string `json:"destination_arrival_time"`
	RouteName              string `json:"route_name,omitempty"`
	RouteOnestopID         string `json:"route_onestop_id,omitempty"`
	// Headsign keeps the historical "headsig" key that clients read.
	Headsign string `json:"headsig,omitempty"`
}

// Result is the body of a successful departures response.
type Result struct {
	Trips []Trip `json:"trips"`
	From  string `json:"from"`
	To    string `json:"to"`
}

func newTrip(pair transitland.ScheduleStopPair) Trip {
	return Trip{
		OriginDepartureTime:    pair.OriginDepartureTime,
		DestinationArrivalTime: pair.DestinationArrivalTime,
		RouteName:              pair.RouteName,
		RouteOnestopID:         pair.RouteOnestopID,
		Headsign:               pair.TripHeadsign,
	}
}

// remainingTrips maps pairs to trips, keeps those departing at or after
// notBefore and sorts them by departure time. Fixed-width times compare
// correctly as strings.
func remainingTrips(pairs []transitland.ScheduleStopPair, notBefore string) []Trip {
	trips := make([]Trip, 0, len(pairs))
	for _, pair := range pairs {
		trip := newTrip(pair)
		if trip.OriginDepartureTime < notBefore {
			continue
		}
		trips = append(trips, trip)
	}

	slices.SortStableFunc(trips, func(a, b Trip) int {
		return strings.Compare(a.OriginDepartureTime, b.OriginDepartureTime)
	})
	return trips
}
