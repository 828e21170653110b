package reports

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/domain/report"
)

// fakeBackend records report queries and serves canned pages.
type fakeBackend struct {
	mu            sync.Mutex
	queries       map[string][]api.ReportQuery
	tutorLastPage int
	topErr        error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{queries: make(map[string][]api.ReportQuery), tutorLastPage: 4}
}

func (f *fakeBackend) record(kind string, q api.ReportQuery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries[kind] = append(f.queries[kind], q)
}

func (f *fakeBackend) calls(kind string) []api.ReportQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.ReportQuery(nil), f.queries[kind]...)
}

func (f *fakeBackend) ReportDashboard(ctx context.Context) (report.Dashboard, error) {
	f.record("dashboard", api.ReportQuery{})
	var d report.Dashboard
	d.Flights.Total = 42
	return d, nil
}

func (f *fakeBackend) FlightsByTutor(ctx context.Context, q api.ReportQuery) (api.ListResult[report.ByTutorRow], error) {
	f.record(report.KindByTutor, q)
	return api.ListResult[report.ByTutorRow]{
		Items:       []report.ByTutorRow{{TutorID: 1, TotalFlights: 3}},
		Paginated:   true,
		CurrentPage: q.Page,
		LastPage:    f.tutorLastPage,
		Total:       f.tutorLastPage * q.PerPage,
	}, nil
}

func (f *fakeBackend) FlightsByStudent(ctx context.Context, q api.ReportQuery) (api.ListResult[report.ByStudentRow], error) {
	f.record(report.KindByStudent, q)
	return api.ListResult[report.ByStudentRow]{Paginated: true, CurrentPage: q.Page, LastPage: 1}, nil
}

func (f *fakeBackend) AircraftUsage(ctx context.Context, q api.ReportQuery) (api.ListResult[report.ByAircraftRow], error) {
	f.record(report.KindByAircraft, q)
	return api.ListResult[report.ByAircraftRow]{Paginated: true, CurrentPage: q.Page, LastPage: 1}, nil
}

func (f *fakeBackend) ScheduleHeatMap(ctx context.Context, dateFrom, dateTo string) (report.HeatMap, error) {
	f.record(report.KindHeatMap, api.ReportQuery{DateFrom: dateFrom, DateTo: dateTo})
	return report.HeatMap{"Lunes": {"08:00": 2}}, nil
}

func (f *fakeBackend) TopStudents(ctx context.Context, limit int, dateFrom, dateTo string) ([]report.TopStudentRow, error) {
	f.record(report.KindTopStudents, api.ReportQuery{DateFrom: dateFrom, DateTo: dateTo})
	if f.topErr != nil {
		return nil, f.topErr
	}
	return []report.TopStudentRow{{ID: 1, FirstName: "Juan"}}, nil
}

func (f *fakeBackend) FlightTrend(ctx context.Context, days int) ([]report.TrendPoint, error) {
	f.record(report.KindTrend, api.ReportQuery{})
	return []report.TrendPoint{{Date: "2026-08-01", Total: 3}}, nil
}

func (f *fakeBackend) ExportPDFURL(reportType, dateFrom, dateTo string) string {
	return "/export/pdf/" + reportType
}

func (f *fakeBackend) ExportExcelURL(reportType, dateFrom, dateTo string) string {
	return "/export/excel/" + reportType
}

// TestSelectTabLoadsPaginated verifies switching to a paginated tab fetches
// it with paginate=true at its current page.
func TestSelectTabLoadsPaginated(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, time.Millisecond)

	ctrl.SelectTab(context.Background(), report.KindByTutor)

	calls := backend.calls(report.KindByTutor)
	if len(calls) != 1 {
		t.Fatalf("by-tutor calls = %d, want 1", len(calls))
	}
	if !calls[0].Paginate || calls[0].Page != 1 {
		t.Errorf("query = %+v, want paginate=true page=1", calls[0])
	}
	if got := ctrl.ByTutor(); got.LastPage != 4 || len(got.Rows) != 1 {
		t.Errorf("page = %+v", got)
	}
}

// TestGeneralTabLoadsWidgets verifies the general tab pulls the dashboard
// plus the top-students and trend widgets.
func TestGeneralTabLoadsWidgets(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, time.Millisecond)

	ctrl.SelectTab(context.Background(), TabGeneral)

	if backend.calls("dashboard") == nil {
		t.Error("dashboard not loaded")
	}
	if backend.calls(report.KindTopStudents) == nil {
		t.Error("top students not loaded")
	}
	if backend.calls(report.KindTrend) == nil {
		t.Error("trend not loaded")
	}
	if ctrl.Dashboard().Flights.Total != 42 {
		t.Errorf("dashboard = %+v", ctrl.Dashboard())
	}
}

// TestGeneralTabKeepsFirstError verifies a failed widget load surfaces
// through Err even when a later widget in the same load succeeds, and
// that the next successful load clears it.
func TestGeneralTabKeepsFirstError(t *testing.T) {
	backend := newFakeBackend()
	backend.topErr = errors.New("top students unavailable")
	ctrl := NewController(backend, time.Millisecond)

	ctrl.SelectTab(context.Background(), TabGeneral)
	if err := ctrl.Err(); err == nil {
		t.Fatal("Err() = nil after a failed widget load")
	}

	backend.topErr = nil
	ctrl.SelectTab(context.Background(), TabGeneral)
	if err := ctrl.Err(); err != nil {
		t.Fatalf("Err() = %v after a clean reload, want nil", err)
	}
}

// TestApplyFiltersResetsPages verifies every kind returns to page one and
// only the active tab refetches.
func TestApplyFiltersResetsPages(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, time.Millisecond)
	ctx := context.Background()

	ctrl.SelectTab(ctx, report.KindByTutor)
	ctrl.SetPage(ctx, report.KindByTutor, 3)

	ctrl.ApplyFilters(ctx)

	calls := backend.calls(report.KindByTutor)
	last := calls[len(calls)-1]
	if last.Page != 1 {
		t.Errorf("page after ApplyFilters = %d, want 1", last.Page)
	}
	if backend.calls(report.KindByStudent) != nil {
		t.Error("inactive tab refetched by ApplyFilters")
	}
}

// TestChangeSort verifies flip-on-same-field and descending-on-new-field.
func TestChangeSort(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, time.Millisecond)
	ctx := context.Background()
	ctrl.SelectTab(ctx, report.KindByTutor)

	ctrl.ChangeSort(ctx, "total_horas")
	if f := ctrl.Filter(); f.OrderBy != "total_horas" || f.OrderDir != report.DirDesc {
		t.Errorf("after new field: %+v", f)
	}

	ctrl.ChangeSort(ctx, "total_horas")
	if f := ctrl.Filter(); f.OrderDir != report.DirAsc {
		t.Errorf("after flip: %+v", f)
	}

	ctrl.ChangeSort(ctx, "total_vuelos")
	if f := ctrl.Filter(); f.OrderBy != "total_vuelos" || f.OrderDir != report.DirDesc {
		t.Errorf("after second field: %+v", f)
	}

	// Every sort change refetches at page one.
	calls := backend.calls(report.KindByTutor)
	for i, q := range calls {
		if q.Page != 1 {
			t.Errorf("call %d page = %d, want 1", i, q.Page)
		}
	}
}

// TestSetSearchDebounces verifies a typing burst collapses into one reload
// with the final text.
func TestSetSearchDebounces(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, 10*time.Millisecond)
	ctx := context.Background()
	ctrl.SelectTab(ctx, report.KindByTutor)
	before := len(backend.calls(report.KindByTutor))

	for _, text := range []string{"p", "pe", "per", "pere", "perez"} {
		ctrl.SetSearch(ctx, text)
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(80 * time.Millisecond)

	calls := backend.calls(report.KindByTutor)
	if len(calls) != before+1 {
		t.Fatalf("reloads = %d, want 1", len(calls)-before)
	}
	if got := calls[len(calls)-1].Search; got != "perez" {
		t.Errorf("search = %q, want perez", got)
	}
}

// TestPageNumbersWindow verifies the controller windows over the backend's
// reported last page.
func TestPageNumbersWindow(t *testing.T) {
	backend := newFakeBackend()
	backend.tutorLastPage = 20
	ctrl := NewController(backend, time.Millisecond)
	ctx := context.Background()

	ctrl.SelectTab(ctx, report.KindByTutor)
	ctrl.SetPage(ctx, report.KindByTutor, 10)

	got := ctrl.PageNumbers(report.KindByTutor)
	want := []int{8, 9, 10, 11, 12}
	if len(got) != len(want) {
		t.Fatalf("window = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestExportURL verifies format routing to the URL builders.
func TestExportURL(t *testing.T) {
	ctrl := NewController(newFakeBackend(), time.Millisecond)

	if got := ctrl.ExportURL(report.KindByTutor, "pdf"); got != "/export/pdf/tutores" {
		t.Errorf("pdf url = %q", got)
	}
	if got := ctrl.ExportURL(report.KindByAircraft, "excel"); got != "/export/excel/avionetas" {
		t.Errorf("excel url = %q", got)
	}
}
