package api

import (
	"context"
	"fmt"
	"net/url"

	"flightdesk/internal/domain/aircraft"
)

// AircraftFilter narrows the aircraft list endpoint.
type AircraftFilter struct {
	Status string
	Search string
}

// ListAircraft lists aircraft matching the filter.
func (c *Client) ListAircraft(ctx context.Context, filter AircraftFilter) ([]aircraft.Aircraft, error) {
	q := url.Values{}
	setIf(q, "estado", filter.Status)
	setIf(q, "search", filter.Search)
	var list []aircraft.Aircraft
	if err := c.get(ctx, "/avionetas", q, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Aircraft fetches one aircraft by id.
func (c *Client) Aircraft(ctx context.Context, id int) (aircraft.Aircraft, error) {
	var a aircraft.Aircraft
	if err := c.get(ctx, fmt.Sprintf("/avionetas/%d", id), nil, &a); err != nil {
		return aircraft.Aircraft{}, err
	}
	return a, nil
}

// CreateAircraft registers a new aircraft.
func (c *Client) CreateAircraft(ctx context.Context, form aircraft.Form) (aircraft.Aircraft, error) {
	var resp struct {
		Aircraft aircraft.Aircraft `json:"avioneta"`
	}
	if err := c.post(ctx, "/avionetas", form, &resp); err != nil {
		return aircraft.Aircraft{}, err
	}
	return resp.Aircraft, nil
}

// UpdateAircraft updates an aircraft record.
func (c *Client) UpdateAircraft(ctx context.Context, id int, form aircraft.Form) (aircraft.Aircraft, error) {
	var resp struct {
		Aircraft aircraft.Aircraft `json:"avioneta"`
	}
	if err := c.put(ctx, fmt.Sprintf("/avionetas/%d", id), form, &resp); err != nil {
		return aircraft.Aircraft{}, err
	}
	return resp.Aircraft, nil
}

// DeleteAircraft removes an aircraft record.
func (c *Client) DeleteAircraft(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/avionetas/%d", id))
}

// SetAircraftStatus toggles an aircraft between Activo and Mantenimiento.
func (c *Client) SetAircraftStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"estado": status}
	return c.post(ctx, fmt.Sprintf("/avionetas/%d/cambiar-estado", id), body, nil)
}

// AircraftStats returns aggregate fleet counters.
func (c *Client) AircraftStats(ctx context.Context) (aircraft.Stats, error) {
	var stats aircraft.Stats
	if err := c.get(ctx, "/avionetas-estadisticas", nil, &stats); err != nil {
		return aircraft.Stats{}, err
	}
	return stats, nil
}

// SearchAircraft is the typeahead endpoint for aircraft.
func (c *Client) SearchAircraft(ctx context.Context, search string) ([]aircraft.Ref, error) {
	q := url.Values{}
	setIf(q, "search", search)
	var list []aircraft.Ref
	if err := c.get(ctx, "/buscar-avionetas", q, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FaultReports lists the tutor's own aircraft fault reports.
func (c *Client) FaultReports(ctx context.Context) ([]aircraft.FaultReport, error) {
	var list []aircraft.FaultReport
	if err := c.get(ctx, "/tutor/reportes-fallas", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReportFault files an aircraft fault report.
func (c *Client) ReportFault(ctx context.Context, report aircraft.FaultReport) (aircraft.FaultReport, error) {
	var resp struct {
		Report aircraft.FaultReport `json:"reporte"`
	}
	if err := c.post(ctx, "/tutor/reportar-falla", report, &resp); err != nil {
		return aircraft.FaultReport{}, err
	}
	return resp.Report, nil
}
