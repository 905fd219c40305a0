package status

import (
	"errors"
	"os"
	"strings"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/utils"
)

// Registry is the read-only set of known applications, keyed by normalized
// identifier. Iteration order is the load order.
type Registry struct {
	keys    []string
	records map[string]Record
}

// NewRegistry indexes records by normalized identifier. Records with an
// invalid identifier are skipped; a later duplicate replaces the earlier
// record but keeps its position.
func NewRegistry(records []Record) *Registry {
	r := &Registry{
		keys:    make([]string, 0, len(records)),
		records: make(map[string]Record, len(records)),
	}
	for _, rec := range records {
		key, err := Normalize(rec.Identifier)
		if err != nil {
			continue
		}
		if _, exists := r.records[key]; !exists {
			r.keys = append(r.keys, key)
		}
		rec.Identifier = key
		r.records[key] = rec
	}
	return r
}

// Get returns the record stored under an exact normalized key
func (r *Registry) Get(key string) (Record, bool) {
	rec, ok := r.records[key]
	return rec, ok
}

// FindFuzzy returns the first record whose key equals, contains, or is
// contained in the normalized identifier.
func (r *Registry) FindFuzzy(normalized string) (Record, bool) {
	for _, key := range r.keys {
		if key == normalized || strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return r.records[key], true
		}
	}
	return Record{}, false
}

// Len returns the number of records
func (r *Registry) Len() int {
	return len(r.keys)
}

// LoadRegistry reads records from a JSON/YAML array at path. An empty path
// selects the defaults silently; a missing or corrupt file falls back to
// the defaults with a warning.
func LoadRegistry(path string, log logger.ILogger) *Registry {
	if strings.TrimSpace(path) == "" {
		return NewRegistry(DefaultRecords())
	}

	var records []Record
	if err := utils.DecodeFile(path, &records); err != nil {
		details := map[string]interface{}{"path": path, "error": err.Error()}
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("StatusRegistry", "Status registry file not found, using defaults", details)
		} else {
			log.Warn("StatusRegistry", "Status registry file unreadable, using defaults", details)
		}
		return NewRegistry(DefaultRecords())
	}

	registry := NewRegistry(records)
	log.Info("StatusRegistry", "Status registry loaded", map[string]interface{}{
		"path":    path,
		"records": registry.Len(),
	})
	return registry
}

// DefaultRecords is the built-in registry used when no file is configured.
// Identifiers are 10-digit national ID numbers.
func DefaultRecords() []Record {
	return []Record{
		{
			Identifier:    "1234567890",
			Status:        StatusUnderReview,
			ServiceName:   "ID Renewal",
			SubmittedDate: "2024-01-15",
			LastUpdated:   "2024-01-18",
			Notes:         "Your ID renewal application is being processed. Expected completion: 2-3 business days.",
		},
		{
			Identifier:    "9876543210",
			Status:        StatusApproved,
			ServiceName:   "Passport Application",
			SubmittedDate: "2024-01-10",
			LastUpdated:   "2024-01-16",
			Notes:         "Your passport application has been approved. Please schedule an appointment for biometrics.",
		},
		{
			Identifier:    "1122334455",
			Status:        StatusCompleted,
			ServiceName:   "Driving License Renewal",
			SubmittedDate: "2024-01-05",
			LastUpdated:   "2024-01-12",
			Notes:         "Your driving license renewal is complete. Your new license is ready for pickup.",
		},
		{
			Identifier:    "2119534887",
			Status:        StatusPending,
			ServiceName:   "Marriage with Foreigner",
			SubmittedDate: "2024-01-20",
			LastUpdated:   "2024-01-21",
			Notes:         "Additional documents are required. Please upload the requested documents in your account.",
		},
		{
			Identifier:    "2233445566",
			Status:        StatusUnderReview,
			ServiceName:   "Work Permit",
			SubmittedDate: "2024-01-15",
			LastUpdated:   "2024-01-18",
			Notes:         "Your work permit application is being reviewed.",
		},
	}
}
