package api

import (
	"context"
	"strconv"

	"flightdesk/internal/domain/flightlog"
)

// FlightLog returns the logbook entry recorded for a flight, or
// KindNotFound when the flight has no entry yet.
func (c *Client) FlightLog(ctx context.Context, flightID int) (flightlog.Entry, error) {
	var out struct {
		Entry flightlog.Entry `json:"bitacora"`
	}
	if err := c.get(ctx, "/tutor/bitacora/vuelo/"+strconv.Itoa(flightID), nil, &out); err != nil {
		return flightlog.Entry{}, err
	}
	return out.Entry, nil
}

// CreateFlightLog records the logbook entry for a completed flight.
func (c *Client) CreateFlightLog(ctx context.Context, flightID int, entry flightlog.Entry) (flightlog.Entry, error) {
	var out struct {
		Entry flightlog.Entry `json:"bitacora"`
	}
	if err := c.post(ctx, "/tutor/bitacora/vuelo/"+strconv.Itoa(flightID), entry, &out); err != nil {
		return flightlog.Entry{}, err
	}
	return out.Entry, nil
}

// StudentLogHistory returns a student's full logbook with its aggregate
// stats.
func (c *Client) StudentLogHistory(ctx context.Context, studentID int) (flightlog.History, error) {
	var h flightlog.History
	if err := c.get(ctx, "/tutor/bitacora/alumno/"+strconv.Itoa(studentID), nil, &h); err != nil {
		return flightlog.History{}, err
	}
	return h, nil
}

// Maneuvers returns the catalog of gradable maneuvers.
func (c *Client) Maneuvers(ctx context.Context) ([]flightlog.Maneuver, error) {
	var list []flightlog.Maneuver
	if err := c.get(ctx, "/tutor/maniobras", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
