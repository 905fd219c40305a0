package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"support-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{" 1234567890 ", "1234567890", false},
		{"123-456.78 90", "1234567890", false},
		{"", "", true},
		{" - . ", "", true},
		{"12a4", "", true},
		{"١٢٣", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceLookup(t *testing.T) {
	svc := NewService(NewRegistry(DefaultRecords()), true)

	t.Run("exact match", func(t *testing.T) {
		rec, ok := svc.Lookup("1234567890")
		require.True(t, ok)
		assert.Equal(t, StatusUnderReview, rec.Status)
		assert.Equal(t, "ID Renewal", rec.ServiceName)
	})

	t.Run("formatted identifier", func(t *testing.T) {
		rec, ok := svc.Lookup("987-654-3210")
		require.True(t, ok)
		assert.Equal(t, "Passport Application", rec.ServiceName)
	})

	t.Run("identifier contains a registry key", func(t *testing.T) {
		rec, ok := svc.Lookup("001122334455")
		require.True(t, ok)
		assert.Equal(t, "1122334455", rec.Identifier)
		assert.Equal(t, StatusCompleted, rec.Status)
	})

	t.Run("identifier is part of a registry key", func(t *testing.T) {
		rec, ok := svc.Lookup("21195")
		require.True(t, ok)
		assert.Equal(t, "2119534887", rec.Identifier)
	})

	t.Run("fuzzy match follows registry order", func(t *testing.T) {
		// "22" is contained in 1122334455 (3rd) and 2233445566 (5th)
		rec, ok := svc.Lookup("22")
		require.True(t, ok)
		assert.Equal(t, "1122334455", rec.Identifier)
	})

	t.Run("invalid identifier", func(t *testing.T) {
		rec, ok := svc.Lookup("abc")
		assert.False(t, ok)
		assert.Nil(t, rec)
	})

	t.Run("unknown identifier is synthesized", func(t *testing.T) {
		rec, ok := svc.Lookup("5550001111")
		require.True(t, ok)
		assert.Equal(t, "5550001111", rec.Identifier)
		assert.Contains(t, synthesizedStatuses, rec.Status)
		assert.Contains(t, synthesizedServices, rec.ServiceName)
		assert.Equal(t, synthesizedNotes[rec.Status], rec.Notes)
	})
}

func TestSynthesisIsDeterministic(t *testing.T) {
	first := NewService(NewRegistry(nil), true)
	second := NewService(NewRegistry(nil), true)

	for _, id := range []string{"5550001111", "42", "99999999999999"} {
		a, ok := first.Lookup(id)
		require.True(t, ok)
		b, ok := second.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, *a, *b)

		again, _ := first.Lookup(id)
		assert.Equal(t, *a, *again)
	}
}

func TestSynthesisDoesNotMutateRegistry(t *testing.T) {
	registry := NewRegistry(DefaultRecords())
	svc := NewService(registry, true)

	_, ok := svc.Lookup("5550001111")
	require.True(t, ok)
	assert.Equal(t, 5, registry.Len())
	_, found := registry.Get("5550001111")
	assert.False(t, found)
}

func TestSynthesisDisabled(t *testing.T) {
	svc := NewService(NewRegistry(DefaultRecords()), false)

	rec, ok := svc.Lookup("5550001111")
	assert.False(t, ok)
	assert.Nil(t, rec)

	_, ok = svc.Lookup("1234567890")
	assert.True(t, ok)
}

func TestNewRegistrySkipsInvalidAndDeduplicates(t *testing.T) {
	registry := NewRegistry([]Record{
		{Identifier: "111", Status: StatusSubmitted},
		{Identifier: "not-a-number", Status: StatusApproved},
		{Identifier: "1-1-1", Status: StatusCompleted},
	})

	assert.Equal(t, 1, registry.Len())
	rec, ok := registry.Get("111")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, rec.Status)
}

func TestLoadRegistry(t *testing.T) {
	log := logger.NewNopLogger()
	dir := t.TempDir()

	t.Run("empty path uses defaults", func(t *testing.T) {
		assert.Equal(t, len(DefaultRecords()), LoadRegistry("", log).Len())
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		assert.Equal(t, len(DefaultRecords()), LoadRegistry(filepath.Join(dir, "nope.json"), log).Len())
	})

	t.Run("corrupt file uses defaults", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		assert.Equal(t, len(DefaultRecords()), LoadRegistry(path, log).Len())
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "registry.yaml")
		content := "- identifier: \"777\"\n  status: Rejected\n  notes: Missing photo.\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		registry := LoadRegistry(path, log)
		require.Equal(t, 1, registry.Len())
		rec, ok := registry.Get("777")
		require.True(t, ok)
		assert.Equal(t, StatusRejected, rec.Status)
	})
}

func TestResponderRender(t *testing.T) {
	r := NewResponder("Absher")

	t.Run("registry hit", func(t *testing.T) {
		rec, _ := NewService(NewRegistry(DefaultRecords()), false).Lookup("1234567890")
		text := r.Render("1234567890", rec)

		assert.True(t, strings.HasPrefix(text, "ID 1234567890: ID Renewal - Under Review."), text)
		assert.Contains(t, text, "Your application is being reviewed.")
		assert.Contains(t, text, "Submitted: 2024-01-15")
		assert.Contains(t, text, "Last updated: 2024-01-18")
		assert.Contains(t, text, "Expected completion: 2-3 business days.")
		assert.True(t, strings.HasSuffix(text, "log in to your Absher account and open My Requests."), text)
	})

	t.Run("not found", func(t *testing.T) {
		text := r.Render("42", nil)
		assert.Equal(t, "No applications found for ID 42. Please check your ID number or you may not have any active applications.", text)
	})

	t.Run("rejected folds notes into the sentence", func(t *testing.T) {
		rec := &Record{Identifier: "5", Status: StatusRejected, Notes: "Photo does not meet requirements."}
		text := r.Render("5", rec)

		assert.Contains(t, text, "Rejected. Photo does not meet requirements.")
		assert.Equal(t, 1, strings.Count(text, "Photo does not meet requirements."))
	})

	t.Run("rejected without notes", func(t *testing.T) {
		text := r.Render("5", &Record{Status: StatusRejected})
		assert.Contains(t, text, "Rejected. Check your Absher account for details.")
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		text := r.Render("6", &Record{Status: StatusSubmitted})

		assert.True(t, strings.HasPrefix(text, "ID 6: Submitted.\nYour request is in the queue."), text)
		assert.NotContains(t, text, "Submitted: ")
		assert.NotContains(t, text, "Last updated")
	})

	t.Run("unknown status uses the generic sentence", func(t *testing.T) {
		text := r.Render("7", &Record{Status: Status("On Hold")})
		assert.Contains(t, text, "Status: On Hold")
	})

	t.Run("every status has its own sentence", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, s := range []Status{StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusCompleted, StatusPending} {
			sentence := r.statusSentence(&Record{Status: s})
			assert.False(t, seen[sentence], s)
			seen[sentence] = true
		}
	})

	t.Run("default portal name", func(t *testing.T) {
		text := NewResponder("").Render("8", &Record{Status: StatusCompleted})
		assert.Contains(t, text, "log in to your online services account")
	})
}
