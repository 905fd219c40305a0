package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{"short text", "hello", 10, 2, []string{"hello"}},
		{"exact chunks", "abcdef", 3, 0, []string{"abc", "def"}},
		{"overlap", "abcdefg", 4, 2, []string{"abcd", "cdef", "efg"}},
		{"multibyte runes", "٠١٢٣٤", 2, 0, []string{"٠١", "٢٣", "٤"}},
		{"overlap larger than chunk", "abcdef", 2, 5, []string{"ab", "cd", "ef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitText(tt.text, tt.chunkSize, tt.overlap))
		})
	}
}

func TestRankChunks(t *testing.T) {
	chunks := []string{
		"Opening hours are 8am to 2pm.",
		"Our office location is on King Fahd Road. The office has parking.",
		"Passport services require biometrics.",
	}

	ranked := RankChunks(chunks, "Where is the office location?", 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, chunks[1], ranked[0])

	assert.Equal(t, chunks, RankChunks(chunks, "zz", 0))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	type doc struct {
		Name  string   `json:"name" yaml:"name"`
		Items []string `json:"items" yaml:"items"`
	}

	jsonPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Name":"a","items":["x"]}`), 0o644))
	var fromJSON doc
	require.NoError(t, DecodeFile(jsonPath, &fromJSON))
	assert.Equal(t, doc{Name: "a", Items: []string{"x"}}, fromJSON)

	yamlPath := filepath.Join(dir, "doc.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: b\nitems:\n  - y\n"), 0o644))
	var fromYAML doc
	require.NoError(t, DecodeFile(yamlPath, &fromYAML))
	assert.Equal(t, doc{Name: "b", Items: []string{"y"}}, fromYAML)

	emptyPath := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(emptyPath, []byte("  \n"), 0o644))
	err := DecodeFile(emptyPath, &fromJSON)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "empty document"))

	assert.Error(t, DecodeFile(filepath.Join(dir, "missing.json"), &fromJSON))
}
