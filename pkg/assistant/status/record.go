package status

import (
	"errors"
	"strings"
)

// Status is the processing state of an application
type Status string

const (
	StatusSubmitted   Status = "Submitted"
	StatusUnderReview Status = "Under Review"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
	StatusCompleted   Status = "Completed"
	StatusPending     Status = "Pending"
)

// ErrInvalidIdentifier is returned by Normalize for empty or non-numeric input
var ErrInvalidIdentifier = errors.New("identifier must contain digits only")

// Record is a status registry entry. Empty optional fields are omitted when
// rendered.
type Record struct {
	Identifier    string `json:"identifier" yaml:"identifier"`
	ServiceName   string `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	Status        Status `json:"status" yaml:"status"`
	SubmittedDate string `json:"submitted_date,omitempty" yaml:"submitted_date,omitempty"`
	LastUpdated   string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Notes         string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

var identifierSeparators = strings.NewReplacer(" ", "", "-", "", ".", "")

// Normalize trims the identifier and strips spaces, dashes and dots. The
// result must be a non-empty run of ASCII digits.
func Normalize(identifier string) (string, error) {
	normalized := identifierSeparators.Replace(strings.TrimSpace(identifier))
	if normalized == "" {
		return "", ErrInvalidIdentifier
	}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] < '0' || normalized[i] > '9' {
			return "", ErrInvalidIdentifier
		}
	}
	return normalized, nil
}
