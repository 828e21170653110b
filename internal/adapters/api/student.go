package api

import (
	"context"

	"flightdesk/internal/domain/flight"
	"flightdesk/internal/domain/tutoring"
)

// StudentFlightHistory lists the authenticated student's past flights
// (dual-shape). The backend scopes the route to the bearer's own record.
func (c *Client) StudentFlightHistory(ctx context.Context, filter FlightFilter) (ListResult[flight.Flight], error) {
	return getList[flight.Flight](ctx, c, "/alumno/historial-vuelos", filter.query())
}

// MyProgress returns the authenticated student's own progress payload,
// the self-service counterpart of StudentProgress.
func (c *Client) MyProgress(ctx context.Context) (tutoring.Progress, error) {
	var p tutoring.Progress
	if err := c.get(ctx, "/alumno/mi-progreso", nil, &p); err != nil {
		return tutoring.Progress{}, err
	}
	return p, nil
}
