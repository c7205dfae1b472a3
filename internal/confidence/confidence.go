// Package confidence holds the per-stage scoring functions. Each scorer
// is pure: stage-specific signals in, a score in [0,1] out, rounded to
// two decimals. Scores are never combined across stages; each gate
// checks exactly one stage's score against its own threshold.
package confidence

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Thresholds holds the minimum acceptable score per stage. Read from
// configuration once and fixed for the process lifetime.
type Thresholds struct {
	OCR           float64
	Extraction    float64
	Normalization float64
}

// Acquisition scores OCR or raw-text output. The base is the upstream
// engine confidence when available, 0.8 otherwise, degraded for noisy
// characters, suspicious word lengths, and very short input. Empty or
// whitespace-only text scores exactly 0.
func Acquisition(text string, upstream *float64) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0.0
	}

	score := 0.8
	if upstream != nil {
		score = *upstream
	}

	// Excessive special characters indicate noise.
	runes := []rune(text)
	special := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}
	ratio := float64(special) / float64(len(runes))
	if ratio > 0.3 {
		score *= 0.6
	} else if ratio > 0.15 {
		score *= 0.8
	}

	// Very short or very long words are suspicious.
	words := strings.Fields(text)
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += len([]rune(w))
		}
		avg := float64(total) / float64(len(words))
		if avg < 2 || avg > 15 {
			score *= 0.7
		}
	}

	if len(runes) < 5 {
		score *= 0.5
	}

	return round2(clamp(score))
}

// Extraction scores entity extraction purely by how many of the three
// fields are present.
func Extraction(hasDate, hasTime, hasDepartment bool) float64 {
	found := 0
	for _, b := range []bool{hasDate, hasTime, hasDepartment} {
		if b {
			found++
		}
	}
	switch found {
	case 3:
		return 0.95
	case 2:
		return 0.85
	case 1:
		return 0.70
	default:
		return 0.40
	}
}

// Normalization scores date/time resolution. Missing components and
// relative phrasing each apply a multiplicative penalty. The score is 0
// exactly when neither component parsed.
func Normalization(dateParsed, timeParsed, isRelative bool) float64 {
	if !dateParsed && !timeParsed {
		return 0.0
	}

	score := 0.9
	if !dateParsed {
		score *= 0.5
	}
	if !timeParsed {
		score *= 0.7
	}
	if isRelative {
		score *= 0.95
	}

	return round2(clamp(score))
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0.0), 1.0)
}

// round2 rounds to two decimals through the decimal string form.
// Scaling the binary value and rounding directly would push values like
// 0.9*0.95 (stored just under 0.855) up to 0.86 instead of 0.85.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
