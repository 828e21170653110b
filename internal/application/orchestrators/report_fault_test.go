package orchestrators

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"

	"flightdesk/internal/adapters/email"
	"flightdesk/internal/domain/aircraft"
)

type fakeFaultBackend struct {
	filed aircraft.FaultReport
	err   error
}

func (f *fakeFaultBackend) ReportFault(ctx context.Context, report aircraft.FaultReport) (aircraft.FaultReport, error) {
	if f.err != nil {
		return aircraft.FaultReport{}, f.err
	}
	f.filed = report
	f.filed.ID = 99
	return f.filed, nil
}

type recordingSender struct {
	sent []email.SendRequest
	err  error
}

func (r *recordingSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	if r.err != nil {
		return email.SendResult{}, r.err
	}
	r.sent = append(r.sent, req)
	return email.SendResult{MessageID: "m1"}, nil
}

func validFault(urgent bool) aircraft.FaultReport {
	return aircraft.FaultReport{
		AircraftID:  4,
		FaultType:   "Fuga de aceite",
		Severity:    aircraft.SeverityHigh,
		Description: "Goteo constante bajo el motor",
		Urgent:      urgent,
	}
}

// TestExecuteReportFault_UrgentSendsAlert verifies the maintenance alert
// goes out only for urgent reports.
func TestExecuteReportFault_UrgentSendsAlert(t *testing.T) {
	sender := &recordingSender{}
	deps := ReportFaultDeps{
		Backend:          &fakeFaultBackend{},
		Sender:           sender,
		MaintenanceEmail: "taller@escuela.test",
		Validate:         validator.New(),
	}

	filed, err := ExecuteReportFault(context.Background(), validFault(true), "Ana Solis", deps)
	if err != nil {
		t.Fatalf("ExecuteReportFault: %v", err)
	}
	if filed.ID != 99 {
		t.Errorf("filed.ID = %d, want 99", filed.ID)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d alerts, want 1", len(sender.sent))
	}
	if sender.sent[0].To[0] != "taller@escuela.test" {
		t.Errorf("alert recipient = %v", sender.sent[0].To)
	}
}

// TestExecuteReportFault_NonUrgentNoAlert verifies routine reports are silent.
func TestExecuteReportFault_NonUrgentNoAlert(t *testing.T) {
	sender := &recordingSender{}
	deps := ReportFaultDeps{
		Backend:          &fakeFaultBackend{},
		Sender:           sender,
		MaintenanceEmail: "taller@escuela.test",
		Validate:         validator.New(),
	}

	if _, err := ExecuteReportFault(context.Background(), validFault(false), "Ana Solis", deps); err != nil {
		t.Fatalf("ExecuteReportFault: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d alerts, want 0", len(sender.sent))
	}
}

// TestExecuteReportFault_Invalid verifies validation failures stop the call.
func TestExecuteReportFault_Invalid(t *testing.T) {
	backend := &fakeFaultBackend{}
	deps := ReportFaultDeps{
		Backend:  backend,
		Validate: validator.New(),
	}

	bad := validFault(true)
	bad.Severity = "Extrema" // not in the allowed set
	if _, err := ExecuteReportFault(context.Background(), bad, "Ana Solis", deps); err == nil {
		t.Fatal("expected validation error")
	}
	if backend.filed.AircraftID != 0 {
		t.Error("backend called despite invalid report")
	}
}

// TestExecuteReportFault_AlertFailureIsNonFatal verifies the report stands
// when the email provider fails.
func TestExecuteReportFault_AlertFailureIsNonFatal(t *testing.T) {
	deps := ReportFaultDeps{
		Backend:          &fakeFaultBackend{},
		Sender:           &recordingSender{err: context.DeadlineExceeded},
		MaintenanceEmail: "taller@escuela.test",
		Validate:         validator.New(),
	}

	filed, err := ExecuteReportFault(context.Background(), validFault(true), "Ana Solis", deps)
	if err != nil {
		t.Fatalf("ExecuteReportFault: %v", err)
	}
	if filed.ID != 99 {
		t.Errorf("filed.ID = %d, want 99", filed.ID)
	}
}
