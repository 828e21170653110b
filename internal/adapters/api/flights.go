package api

import (
	"context"
	"fmt"
	"net/url"

	"flightdesk/internal/domain/flight"
)

// FlightFilter narrows flight list endpoints. Zero values are omitted from
// the query string. PerPage > 0 asks the backend for a paginated envelope.
type FlightFilter struct {
	Status     string
	Date       string
	DateFrom   string
	DateTo     string
	StudentID  int
	TutorID    int
	AircraftID int
	Search     string
	PerPage    int
	Page       int
}

func (f FlightFilter) query() url.Values {
	q := url.Values{}
	setIf(q, "estado", f.Status)
	setIf(q, "fecha", f.Date)
	setIf(q, "fecha_inicio", f.DateFrom)
	setIf(q, "fecha_fin", f.DateTo)
	setIfInt(q, "alumno_id", f.StudentID)
	setIfInt(q, "tutor_id", f.TutorID)
	setIfInt(q, "avioneta_id", f.AircraftID)
	setIf(q, "search", f.Search)
	setIfInt(q, "per_page", f.PerPage)
	setIfInt(q, "page", f.Page)
	if f.PerPage > 0 {
		q.Set("paginate", "true")
	}
	return q
}

// Flights lists flights matching the filter. The backend returns a bare list
// or a paginator envelope depending on the filter; both normalize here.
func (c *Client) Flights(ctx context.Context, filter FlightFilter) (ListResult[flight.Flight], error) {
	return getList[flight.Flight](ctx, c, "/vuelos", filter.query())
}

// MyFlights lists the authenticated tutor's own flights (dual-shape).
func (c *Client) MyFlights(ctx context.Context, filter FlightFilter) (ListResult[flight.Flight], error) {
	return getList[flight.Flight](ctx, c, "/tutor/mis-vuelos", filter.query())
}

// Flight fetches one flight by id.
func (c *Client) Flight(ctx context.Context, id int) (flight.Flight, error) {
	var f flight.Flight
	if err := c.get(ctx, fmt.Sprintf("/vuelos/%d", id), nil, &f); err != nil {
		return flight.Flight{}, err
	}
	return f, nil
}

// CreateFlight schedules a new flight.
func (c *Client) CreateFlight(ctx context.Context, form flight.Form) (flight.Flight, error) {
	var resp struct {
		Flight flight.Flight `json:"vuelo"`
	}
	if err := c.post(ctx, "/vuelos", form, &resp); err != nil {
		return flight.Flight{}, err
	}
	return resp.Flight, nil
}

// UpdateFlight updates a scheduled flight.
func (c *Client) UpdateFlight(ctx context.Context, id int, form flight.Form) (flight.Flight, error) {
	var resp struct {
		Flight flight.Flight `json:"vuelo"`
	}
	if err := c.put(ctx, fmt.Sprintf("/vuelos/%d", id), form, &resp); err != nil {
		return flight.Flight{}, err
	}
	return resp.Flight, nil
}

// DeleteFlight removes a flight.
func (c *Client) DeleteFlight(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/vuelos/%d", id))
}

// SetFlightStatus transitions a flight's status (admin path).
func (c *Client) SetFlightStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"estado": status}
	return c.post(ctx, fmt.Sprintf("/vuelos/%d/cambiar-estado", id), body, nil)
}

// UpdateFlightStatusAsTutor transitions a flight's status on the tutor path,
// optionally recording the end time and observations.
func (c *Client) UpdateFlightStatusAsTutor(ctx context.Context, id int, update flight.StatusUpdate) (flight.Flight, error) {
	var resp struct {
		Flight flight.Flight `json:"vuelo"`
	}
	if err := c.put(ctx, fmt.Sprintf("/tutor/vuelos/%d/estado", id), update, &resp); err != nil {
		return flight.Flight{}, err
	}
	return resp.Flight, nil
}

// FlightStats returns aggregate flight counters.
func (c *Client) FlightStats(ctx context.Context) (flight.Stats, error) {
	var stats flight.Stats
	if err := c.get(ctx, "/vuelos-estadisticas", nil, &stats); err != nil {
		return flight.Stats{}, err
	}
	return stats, nil
}
