package api

import (
	"context"
	"strconv"

	"flightdesk/internal/domain/aircraft"
	"flightdesk/internal/domain/tutoring"
)

// MyStudents returns the tutor's student roster with summary stats.
func (c *Client) MyStudents(ctx context.Context) ([]tutoring.StudentOverview, error) {
	var list []tutoring.StudentOverview
	if err := c.get(ctx, "/tutor/mis-alumnos", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// StudentProgress returns the full progress payload for one student.
func (c *Client) StudentProgress(ctx context.Context, studentID int) (tutoring.Progress, error) {
	var p tutoring.Progress
	if err := c.get(ctx, "/tutor/alumno/"+strconv.Itoa(studentID)+"/progreso", nil, &p); err != nil {
		return tutoring.Progress{}, err
	}
	return p, nil
}

// Availability returns the tutor's availability windows.
func (c *Client) Availability(ctx context.Context) ([]tutoring.Availability, error) {
	var list []tutoring.Availability
	if err := c.get(ctx, "/tutor/disponibilidad", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveAvailability creates or updates an availability window.
func (c *Client) SaveAvailability(ctx context.Context, a tutoring.Availability) (tutoring.Availability, error) {
	var out struct {
		Availability tutoring.Availability `json:"disponibilidad"`
	}
	if err := c.post(ctx, "/tutor/disponibilidad", a, &out); err != nil {
		return tutoring.Availability{}, err
	}
	return out.Availability, nil
}

// AvailableAircraft lists aircraft a tutor can pick when reporting a fault.
func (c *Client) AvailableAircraft(ctx context.Context) ([]aircraft.Aircraft, error) {
	var list []aircraft.Aircraft
	if err := c.get(ctx, "/tutor/avionetas-disponibles", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
