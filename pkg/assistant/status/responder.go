package status

import (
	"fmt"
	"strings"
)

// Responder renders status records as chat replies
type Responder struct {
	portalName string
}

func NewResponder(portalName string) *Responder {
	if strings.TrimSpace(portalName) == "" {
		portalName = "online services"
	}
	return &Responder{portalName: portalName}
}

// Render turns a lookup result into user-facing text. A nil record means no
// application was found for identifier.
func (r *Responder) Render(identifier string, rec *Record) string {
	if rec == nil {
		return fmt.Sprintf("No applications found for ID %s. Please check your ID number or you may not have any active applications.", identifier)
	}

	var b strings.Builder

	b.WriteString("ID ")
	b.WriteString(identifier)
	b.WriteString(": ")
	if rec.ServiceName != "" {
		b.WriteString(rec.ServiceName)
		b.WriteString(" - ")
	}
	b.WriteString(string(rec.Status))
	b.WriteString(".\n")
	b.WriteString(r.statusSentence(rec))

	if rec.SubmittedDate != "" {
		b.WriteString("\nSubmitted: ")
		b.WriteString(rec.SubmittedDate)
	}
	if rec.LastUpdated != "" {
		b.WriteString("\nLast updated: ")
		b.WriteString(rec.LastUpdated)
	}
	// Rejected notes are already part of the status sentence
	if rec.Notes != "" && rec.Status != StatusRejected {
		b.WriteString("\n")
		b.WriteString(rec.Notes)
	}

	b.WriteString("\n\nFor full details, log in to your ")
	b.WriteString(r.portalName)
	b.WriteString(" account and open My Requests.")

	return b.String()
}

func (r *Responder) statusSentence(rec *Record) string {
	switch rec.Status {
	case StatusSubmitted:
		return "Your request is in the queue."
	case StatusUnderReview:
		return "Your application is being reviewed."
	case StatusApproved:
		return "Approved. You may need to pay fees or pick up documents."
	case StatusRejected:
		reason := rec.Notes
		if reason == "" {
			reason = fmt.Sprintf("Check your %s account for details.", r.portalName)
		}
		return "Rejected. " + reason
	case StatusCompleted:
		return "Completed and ready for pickup."
	case StatusPending:
		return fmt.Sprintf("Waiting for documents or information from you. Check your %s account.", r.portalName)
	default:
		return fmt.Sprintf("Status: %s", rec.Status)
	}
}
