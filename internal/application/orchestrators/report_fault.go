package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"flightdesk/internal/adapters/email"
	"flightdesk/internal/domain/aircraft"
)

// FaultBackend defines the backend call needed by ReportFault.
type FaultBackend interface {
	ReportFault(ctx context.Context, report aircraft.FaultReport) (aircraft.FaultReport, error)
}

// ReportFaultDeps holds dependencies for ReportFault.
type ReportFaultDeps struct {
	Backend          FaultBackend
	Sender           email.Sender
	MaintenanceEmail string
	Validate         *validator.Validate
}

// ExecuteReportFault validates and files an aircraft fault report. When the
// report is flagged urgent and a maintenance address is configured, an alert
// email goes out after the backend accepts the report. The alert is
// best-effort; the report stands even if the email fails.
// PRE: report carries aircraft id, fault type, severity and description
// POST: Report is filed with the backend
func ExecuteReportFault(ctx context.Context, report aircraft.FaultReport, reporter string, deps ReportFaultDeps) (aircraft.FaultReport, error) {
	if deps.Validate != nil {
		if err := deps.Validate.StructCtx(ctx, report); err != nil {
			return aircraft.FaultReport{}, fmt.Errorf("invalid fault report: %w", err)
		}
	}

	filed, err := deps.Backend.ReportFault(ctx, report)
	if err != nil {
		return aircraft.FaultReport{}, err
	}

	slog.Info("fault_reported", "aircraft_id", filed.AircraftID, "severity", filed.Severity, "urgent", filed.Urgent)

	if filed.Urgent && deps.Sender != nil && deps.MaintenanceEmail != "" {
		req := email.FaultAlert(deps.MaintenanceEmail, filed, reporter)
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Error("fault_alert_failed", "aircraft_id", filed.AircraftID, "error", err)
		}
	}

	return filed, nil
}
