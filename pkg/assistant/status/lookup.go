package status

import (
	"hash/fnv"
)

var (
	synthesizedStatuses = []Status{
		StatusSubmitted,
		StatusUnderReview,
		StatusApproved,
		StatusPending,
		StatusCompleted,
	}

	synthesizedServices = []string{
		"ID Renewal",
		"Passport Application",
		"Driving License Renewal",
		"Work Permit",
		"Marriage with Foreigner",
		"Travel in Banned Countries",
	}

	synthesizedNotes = map[Status]string{
		StatusSubmitted:   "Your request is in the queue and will be processed soon.",
		StatusUnderReview: "Your application is being reviewed by the relevant department.",
		StatusApproved:    "Your application has been approved. Please check your account for next steps.",
		StatusPending:     "Waiting for documents or information from you. Check your account.",
		StatusCompleted:   "Your request has been completed successfully.",
	}
)

// Service resolves identifiers against a registry. Unknown identifiers are
// either synthesized or reported as not found, depending on configuration.
type Service struct {
	registry   *Registry
	synthesize bool
}

func NewService(registry *Registry, synthesizeUnknown bool) *Service {
	return &Service{
		registry:   registry,
		synthesize: synthesizeUnknown,
	}
}

// Lookup returns the record for identifier. It returns false for malformed
// identifiers and, when synthesis is disabled, for unknown ones.
func (s *Service) Lookup(identifier string) (*Record, bool) {
	normalized, err := Normalize(identifier)
	if err != nil {
		return nil, false
	}

	if rec, ok := s.registry.Get(normalized); ok {
		return &rec, true
	}

	if rec, ok := s.registry.FindFuzzy(normalized); ok {
		return &rec, true
	}

	if !s.synthesize {
		return nil, false
	}

	rec := Synthesize(normalized)
	return &rec, true
}

// Synthesize derives a plausible record from the identifier bytes. The same
// identifier always yields the same record, in any process.
func Synthesize(normalized string) Record {
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalized))
	seed := h.Sum64()

	status := synthesizedStatuses[seed%uint64(len(synthesizedStatuses))]
	service := synthesizedServices[(seed>>32)%uint64(len(synthesizedServices))]

	return Record{
		Identifier:  normalized,
		ServiceName: service,
		Status:      status,
		Notes:       synthesizedNotes[status],
	}
}
