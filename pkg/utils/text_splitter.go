package utils

import (
	"sort"
	"strings"
	"unicode"
)

// SplitText splits a long string into chunks of approximately 'chunkSize' characters.
// It includes an 'overlap' to preserve context at boundaries.
// This is a simple character-based splitter. Ideally, use a tokenizer-aware splitter.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if chunkSize <= 0 || totalLen <= chunkSize {
		return []string{text}
	}

	var chunks []string

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// RankChunks orders chunks by how many distinct query terms (3+ letters) they
// contain, keeping the original order between equal scores, and returns at
// most limit chunks.
func RankChunks(chunks []string, query string, limit int) []string {
	terms := queryTerms(query)

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(chunks))
	for i, chunk := range chunks {
		lower := strings.ToLower(chunk)
		score := 0
		for term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		ranked[i] = scored{index: i, score: score}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}

	out := make([]string, 0, limit)
	for _, r := range ranked[:limit] {
		out = append(out, chunks[r.index])
	}
	return out
}

func queryTerms(query string) map[string]struct{} {
	terms := make(map[string]struct{})
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		if len([]rune(f)) >= 3 {
			terms[f] = struct{}{}
		}
	}
	return terms
}
