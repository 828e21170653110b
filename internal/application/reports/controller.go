// Package reports drives the admin report screens: three paginated
// aggregate tabs plus the general tab's widgets, all sharing one filter.
package reports

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/application/listutil"
	"flightdesk/internal/application/typeahead"
	"flightdesk/internal/domain/report"
)

// TabGeneral is the dashboard tab alongside the report kinds.
const TabGeneral = "general"

// DefaultFilterDelay is the quiet period for the free-text report filter.
const DefaultFilterDelay = 500 * time.Millisecond

// Backend is the slice of the API client the controller needs.
type Backend interface {
	ReportDashboard(ctx context.Context) (report.Dashboard, error)
	FlightsByTutor(ctx context.Context, q api.ReportQuery) (api.ListResult[report.ByTutorRow], error)
	FlightsByStudent(ctx context.Context, q api.ReportQuery) (api.ListResult[report.ByStudentRow], error)
	AircraftUsage(ctx context.Context, q api.ReportQuery) (api.ListResult[report.ByAircraftRow], error)
	ScheduleHeatMap(ctx context.Context, dateFrom, dateTo string) (report.HeatMap, error)
	TopStudents(ctx context.Context, limit int, dateFrom, dateTo string) ([]report.TopStudentRow, error)
	FlightTrend(ctx context.Context, days int) ([]report.TrendPoint, error)
	ExportPDFURL(reportType, dateFrom, dateTo string) string
	ExportExcelURL(reportType, dateFrom, dateTo string) string
}

// Filter is the shared report filter. Changing it resets every tab to
// page one.
type Filter struct {
	DateFrom string
	DateTo   string
	Search   string
	PerPage  int
	OrderBy  string
	OrderDir string
}

// Page is the normalized page representation every tab renders from,
// regardless of which wire shape the backend chose.
type Page[T any] struct {
	Rows        []T
	CurrentPage int
	LastPage    int
	Total       int
}

func toPage[T any](res api.ListResult[T]) Page[T] {
	return Page[T]{
		Rows:        res.Items,
		CurrentPage: res.CurrentPage,
		LastPage:    res.LastPage,
		Total:       res.Total,
	}
}

// Controller holds the report screens' state for one session.
type Controller struct {
	backend  Backend
	debounce *typeahead.Debouncer

	mu        sync.Mutex
	filter    Filter
	activeTab string
	pages     map[string]int // per-kind current page request

	byTutor    Page[report.ByTutorRow]
	byStudent  Page[report.ByStudentRow]
	byAircraft Page[report.ByAircraftRow]

	dashboard   report.Dashboard
	heatMap     report.HeatMap
	topStudents []report.TopStudentRow
	trend       []report.TrendPoint

	loadErr error
}

// NewController creates a controller with default filter and the general
// tab active. filterDelay <= 0 falls back to DefaultFilterDelay.
func NewController(backend Backend, filterDelay time.Duration) *Controller {
	if filterDelay <= 0 {
		filterDelay = DefaultFilterDelay
	}
	return &Controller{
		backend:   backend,
		debounce:  typeahead.NewDebouncer(filterDelay),
		activeTab: TabGeneral,
		filter:    Filter{PerPage: listutil.DefaultPerPage, OrderDir: report.DirDesc},
		pages: map[string]int{
			report.KindByTutor:    1,
			report.KindByStudent:  1,
			report.KindByAircraft: 1,
		},
	}
}

// Filter returns a copy of the shared filter.
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// ActiveTab returns the currently selected tab.
func (c *Controller) ActiveTab() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// Err returns the failure of the most recent load, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// SelectTab switches tab and loads its data at the tab's remembered page.
func (c *Controller) SelectTab(ctx context.Context, tab string) {
	c.mu.Lock()
	c.activeTab = tab
	c.mu.Unlock()
	c.loadTab(ctx, tab)
}

// SetPage requests a page for one paginated kind and reloads it. The page
// is clamped to [1, lastPage] once the response arrives.
func (c *Controller) SetPage(ctx context.Context, kind string, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	if _, ok := c.pages[kind]; !ok {
		c.mu.Unlock()
		return
	}
	c.pages[kind] = page
	c.mu.Unlock()
	c.loadTab(ctx, kind)
}

// SetFilter replaces the shared filter and applies it.
func (c *Controller) SetFilter(ctx context.Context, f Filter) {
	c.mu.Lock()
	if f.PerPage < 1 {
		f.PerPage = listutil.DefaultPerPage
	}
	c.filter = f
	c.mu.Unlock()
	c.ApplyFilters(ctx)
}

// SetSearch updates the free-text filter and applies it after the debounce
// quiet period, collapsing a typing burst into one reload.
func (c *Controller) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	if c.filter.Search == text {
		c.mu.Unlock()
		return
	}
	c.filter.Search = text
	c.mu.Unlock()
	c.debounce.Trigger(func() {
		c.ApplyFilters(ctx)
	})
}

// ApplyFilters resets every paginated kind to page one and refetches the
// active tab. When the general tab is active the top-students and trend
// widgets refresh as well.
func (c *Controller) ApplyFilters(ctx context.Context) {
	c.mu.Lock()
	for kind := range c.pages {
		c.pages[kind] = 1
	}
	tab := c.activeTab
	c.mu.Unlock()
	c.loadTab(ctx, tab)
}

// ChangeSort toggles the sort on a field: the same field flips direction;
// a new field starts descending. The change applies immediately.
func (c *Controller) ChangeSort(ctx context.Context, field string) {
	c.mu.Lock()
	if c.filter.OrderBy == field {
		if c.filter.OrderDir == report.DirAsc {
			c.filter.OrderDir = report.DirDesc
		} else {
			c.filter.OrderDir = report.DirAsc
		}
	} else {
		c.filter.OrderBy = field
		c.filter.OrderDir = report.DirDesc
	}
	c.mu.Unlock()
	c.ApplyFilters(ctx)
}

// PageNumbers returns the pagination window for one paginated kind.
func (c *Controller) PageNumbers(kind string) []int {
	page := c.pageFor(kind)
	return listutil.PageNumbers(page.CurrentPage, page.LastPage, 5)
}

type pageMeta struct {
	CurrentPage int
	LastPage    int
	Total       int
}

func (c *Controller) pageFor(kind string) pageMeta {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case report.KindByTutor:
		return pageMeta{c.byTutor.CurrentPage, c.byTutor.LastPage, c.byTutor.Total}
	case report.KindByStudent:
		return pageMeta{c.byStudent.CurrentPage, c.byStudent.LastPage, c.byStudent.Total}
	case report.KindByAircraft:
		return pageMeta{c.byAircraft.CurrentPage, c.byAircraft.LastPage, c.byAircraft.Total}
	default:
		return pageMeta{CurrentPage: 1, LastPage: 1}
	}
}

// ByTutor returns the flights-per-tutor page.
func (c *Controller) ByTutor() Page[report.ByTutorRow] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byTutor
}

// ByStudent returns the flights-per-student page.
func (c *Controller) ByStudent() Page[report.ByStudentRow] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byStudent
}

// ByAircraft returns the aircraft usage page.
func (c *Controller) ByAircraft() Page[report.ByAircraftRow] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byAircraft
}

// Dashboard returns the general tab's counters.
func (c *Controller) Dashboard() report.Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dashboard
}

// HeatMap returns the schedule heat map matrix.
func (c *Controller) HeatMap() report.HeatMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heatMap
}

// TopStudents returns the top-students widget rows.
func (c *Controller) TopStudents() []report.TopStudentRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topStudents
}

// Trend returns the flight trend series.
func (c *Controller) Trend() []report.TrendPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trend
}

// ExportURL builds the backend export URL for the given tab and format
// ("pdf" or "excel"), carrying the current date range.
func (c *Controller) ExportURL(kind, format string) string {
	c.mu.Lock()
	from, to := c.filter.DateFrom, c.filter.DateTo
	c.mu.Unlock()
	if format == "excel" {
		return c.backend.ExportExcelURL(kind, from, to)
	}
	return c.backend.ExportPDFURL(kind, from, to)
}

func (c *Controller) query(kind string) api.ReportQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.ReportQuery{
		DateFrom: c.filter.DateFrom,
		DateTo:   c.filter.DateTo,
		Search:   c.filter.Search,
		PerPage:  c.filter.PerPage,
		Page:     c.pages[kind],
		OrderBy:  c.filter.OrderBy,
		OrderDir: c.filter.OrderDir,
		Paginate: true,
	}
}

func (c *Controller) loadTab(ctx context.Context, tab string) {
	c.mu.Lock()
	c.loadErr = nil
	c.mu.Unlock()

	switch tab {
	case report.KindByTutor:
		res, err := c.backend.FlightsByTutor(ctx, c.query(tab))
		c.store(err, func() { c.byTutor = toPage(res) })
	case report.KindByStudent:
		res, err := c.backend.FlightsByStudent(ctx, c.query(tab))
		c.store(err, func() { c.byStudent = toPage(res) })
	case report.KindByAircraft:
		res, err := c.backend.AircraftUsage(ctx, c.query(tab))
		c.store(err, func() { c.byAircraft = toPage(res) })
	case report.KindHeatMap:
		c.loadHeatMap(ctx)
	case TabGeneral:
		c.loadGeneral(ctx)
	default:
		slog.Warn("unknown_report_tab", "tab", tab)
	}
}

func (c *Controller) loadGeneral(ctx context.Context) {
	dash, err := c.backend.ReportDashboard(ctx)
	c.store(err, func() { c.dashboard = dash })

	c.mu.Lock()
	from, to := c.filter.DateFrom, c.filter.DateTo
	c.mu.Unlock()

	top, err := c.backend.TopStudents(ctx, 5, from, to)
	c.store(err, func() { c.topStudents = top })

	trend, err := c.backend.FlightTrend(ctx, 30)
	c.store(err, func() { c.trend = trend })
}

func (c *Controller) loadHeatMap(ctx context.Context) {
	c.mu.Lock()
	from, to := c.filter.DateFrom, c.filter.DateTo
	c.mu.Unlock()
	m, err := c.backend.ScheduleHeatMap(ctx, from, to)
	c.store(err, func() { c.heatMap = m })
}

// store records a load result under the lock. Errors keep the previous
// data on screen instead of blanking it; when one load issues several
// requests, the first error wins.
func (c *Controller) store(err error, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		slog.Error("report_load_failed", "error", err)
		if c.loadErr == nil {
			c.loadErr = err
		}
		return
	}
	apply()
}
