package email

import (
	"fmt"
	"html"

	"flightdesk/internal/domain/aircraft"
)

// FaultAlert builds the maintenance alert sent when a tutor files a fault
// report flagged as requiring immediate attention.
func FaultAlert(to string, report aircraft.FaultReport, reporter string) SendRequest {
	label := fmt.Sprintf("avioneta %d", report.AircraftID)
	if report.Aircraft != nil {
		label = report.Aircraft.Label()
	}

	body := fmt.Sprintf(`<h2>Falla urgente reportada</h2>
<p><strong>Avioneta:</strong> %s</p>
<p><strong>Tipo de falla:</strong> %s</p>
<p><strong>Severidad:</strong> %s</p>
<p><strong>Reportado por:</strong> %s</p>
<p>%s</p>
<p>Esta falla fue marcada como de atención inmediata. La avioneta no debe volar hasta su revisión.</p>`,
		html.EscapeString(label),
		html.EscapeString(report.FaultType),
		html.EscapeString(report.Severity),
		html.EscapeString(reporter),
		html.EscapeString(report.Description),
	)

	return SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("[URGENTE] Falla en %s: %s", label, report.FaultType),
		HTML:    body,
	}
}
