// Package extract implements the entity extraction stage: prompting the
// extraction backend and recovering a fixed entity shape from its
// free-form reply.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"schedo/internal/domain"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// rawEntities tolerates non-string field values; anything that is not a
// usable string normalizes to absent.
type rawEntities struct {
	DatePhrase any `json:"date_phrase"`
	TimePhrase any `json:"time_phrase"`
	Department any `json:"department"`
}

// ParseResponse recovers the entity JSON object from a model reply that
// may be wrapped in commentary or a fenced code block. Candidates are
// tried in order: fenced block, first balanced object, the whole reply.
// If every level fails to parse, the error carries a truncated fragment
// of the raw reply for diagnostics.
func ParseResponse(reply string) (*domain.Entities, error) {
	text := strings.TrimSpace(reply)

	var candidates []string
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if obj, ok := firstJSONObject(text); ok {
		candidates = append(candidates, obj)
	}
	candidates = append(candidates, text)

	for _, candidate := range candidates {
		var raw rawEntities
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			continue
		}
		return &domain.Entities{
			DatePhrase: normalizeEntity(raw.DatePhrase),
			TimePhrase: normalizeEntity(raw.TimePhrase),
			Department: normalizeEntity(raw.Department),
		}, nil
	}

	return nil, fmt.Errorf("%w: could not parse model reply as JSON (raw: %s)",
		domain.ErrMalformedExtraction, truncate(reply, 200))
}

// firstJSONObject finds the first balanced-looking {...} substring by
// brace depth. Braces inside string literals are not special-cased; the
// contract is "balanced-looking", and a false positive simply fails the
// JSON parse and falls through.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// normalizeEntity trims a field value and treats empty strings and the
// literal placeholders "null", "none", and "n/a" as absent. Non-string
// values are absent; presence is never inferred.
func normalizeEntity(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a":
		return nil
	}
	return &s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
