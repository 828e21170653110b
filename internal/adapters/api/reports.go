package api

import (
	"context"
	"net/url"
	"strconv"

	"flightdesk/internal/domain/report"
)

// ReportQuery carries the shared report filter. Paginate controls whether
// the backend wraps the rows in a paginator envelope.
type ReportQuery struct {
	DateFrom string
	DateTo   string
	Search   string
	PerPage  int
	Page     int
	OrderBy  string
	OrderDir string
	Paginate bool
}

func (q ReportQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "fecha_inicio", q.DateFrom)
	setIf(v, "fecha_fin", q.DateTo)
	setIf(v, "search", q.Search)
	setIfInt(v, "per_page", q.PerPage)
	setIfInt(v, "page", q.Page)
	setIf(v, "order_by", q.OrderBy)
	setIf(v, "order_dir", q.OrderDir)
	if q.Paginate {
		v.Set("paginate", "true")
	}
	return v
}

// ReportDashboard returns the aggregate dashboard counters.
func (c *Client) ReportDashboard(ctx context.Context) (report.Dashboard, error) {
	var d report.Dashboard
	if err := c.get(ctx, "/reportes/dashboard", nil, &d); err != nil {
		return report.Dashboard{}, err
	}
	return d, nil
}

// FlightsByTutor returns the flights-per-tutor aggregate (dual-shape).
func (c *Client) FlightsByTutor(ctx context.Context, q ReportQuery) (ListResult[report.ByTutorRow], error) {
	return getList[report.ByTutorRow](ctx, c, "/reportes/vuelos-por-tutor", q.values())
}

// FlightsByStudent returns the flights-per-student aggregate (dual-shape).
func (c *Client) FlightsByStudent(ctx context.Context, q ReportQuery) (ListResult[report.ByStudentRow], error) {
	return getList[report.ByStudentRow](ctx, c, "/reportes/vuelos-por-alumno", q.values())
}

// AircraftUsage returns the per-aircraft usage aggregate (dual-shape).
func (c *Client) AircraftUsage(ctx context.Context, q ReportQuery) (ListResult[report.ByAircraftRow], error) {
	return getList[report.ByAircraftRow](ctx, c, "/reportes/uso-avionetas", q.values())
}

// ScheduleHeatMap returns the day-by-hour flight count matrix.
func (c *Client) ScheduleHeatMap(ctx context.Context, dateFrom, dateTo string) (report.HeatMap, error) {
	q := url.Values{}
	setIf(q, "fecha_inicio", dateFrom)
	setIf(q, "fecha_fin", dateTo)
	var m report.HeatMap
	if err := c.get(ctx, "/reportes/mapa-calor-horarios", q, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// TopStudents returns the top-students widget rows.
func (c *Client) TopStudents(ctx context.Context, limit int, dateFrom, dateTo string) ([]report.TopStudentRow, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	setIf(q, "fecha_inicio", dateFrom)
	setIf(q, "fecha_fin", dateTo)
	var rows []report.TopStudentRow
	if err := c.get(ctx, "/reportes/top-alumnos", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FlightTrend returns the last `days` days of flight counts.
func (c *Client) FlightTrend(ctx context.Context, days int) ([]report.TrendPoint, error) {
	q := url.Values{}
	q.Set("dias", strconv.Itoa(days))
	var points []report.TrendPoint
	if err := c.get(ctx, "/reportes/tendencia-vuelos", q, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// ExportPDFURL builds the backend PDF export URL for a report type. The
// caller hands this to the browser; the file is never fetched in-app.
func (c *Client) ExportPDFURL(reportType, dateFrom, dateTo string) string {
	return c.exportURL("/reportes/exportar-pdf", reportType, dateFrom, dateTo)
}

// ExportExcelURL builds the backend Excel export URL for a report type.
func (c *Client) ExportExcelURL(reportType, dateFrom, dateTo string) string {
	return c.exportURL("/reportes/exportar-excel", reportType, dateFrom, dateTo)
}

func (c *Client) exportURL(path, reportType, dateFrom, dateTo string) string {
	q := url.Values{}
	q.Set("tipo", reportType)
	setIf(q, "fecha_inicio", dateFrom)
	setIf(q, "fecha_fin", dateTo)
	return c.baseURL + path + "?" + q.Encode()
}
