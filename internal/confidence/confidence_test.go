package confidence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedo/internal/confidence"
)

func floatPtr(v float64) *float64 { return &v }

func TestAcquisition_EmptyText(t *testing.T) {
	assert.Equal(t, 0.0, confidence.Acquisition("", nil))
	assert.Equal(t, 0.0, confidence.Acquisition("   \t\n  ", nil))
}

func TestAcquisition_CleanText(t *testing.T) {
	score := confidence.Acquisition("Book a dentist appointment next Friday", nil)
	assert.Equal(t, 0.8, score)
}

func TestAcquisition_UsesUpstreamConfidence(t *testing.T) {
	score := confidence.Acquisition("Book a dentist appointment next Friday", floatPtr(0.95))
	assert.Equal(t, 0.95, score)
}

func TestAcquisition_SpecialCharacterPenalties(t *testing.T) {
	clean := confidence.Acquisition("schedule dentist visit tomorrow morning", nil)
	// Ratio in (0.15, 0.3] gets the lighter penalty: 4 specials / 18 runes.
	noisy := confidence.Acquisition("he!!o doc+or vis!t", nil)
	// Ratio above 0.3 gets the heavier penalty: 15 specials / 24 runes.
	garbage := confidence.Acquisition("s@#$ d%^& v!*( t@#$ m!@#", nil)

	assert.Equal(t, 0.8, clean)
	assert.Equal(t, 0.64, noisy)   // 0.8 * 0.8
	assert.Equal(t, 0.48, garbage) // 0.8 * 0.6
	assert.Greater(t, clean, noisy)
	assert.Greater(t, noisy, garbage)
}

func TestAcquisition_WordLengthPenalty(t *testing.T) {
	// Average word length below 2.
	short := confidence.Acquisition("a b c d e f g h", nil)
	assert.Equal(t, 0.56, short) // 0.8 * 0.7

	// Average word length above 15.
	long := confidence.Acquisition("aaaaaaaaaaaaaaaaaaaa bbbbbbbbbbbbbbbbbbbb", nil)
	assert.Equal(t, 0.56, long)
}

func TestAcquisition_ShortTextPenalty(t *testing.T) {
	// "hi" is under 5 characters; average word length is exactly 2 so the
	// word-length penalty does not apply.
	score := confidence.Acquisition("hi", nil)
	assert.Equal(t, 0.4, score) // 0.8 * 0.5
}

func TestAcquisition_Clamped(t *testing.T) {
	score := confidence.Acquisition("perfectly ordinary appointment request text", floatPtr(1.5))
	assert.LessOrEqual(t, score, 1.0)
}

func TestExtraction_Table(t *testing.T) {
	cases := []struct {
		name             string
		date, time, dept bool
		expected         float64
	}{
		{"all three", true, true, true, 0.95},
		{"two of three", true, true, false, 0.85},
		{"two of three other pair", false, true, true, 0.85},
		{"one of three", true, false, false, 0.70},
		{"none", false, false, false, 0.40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, confidence.Extraction(tc.date, tc.time, tc.dept))
		})
	}
}

func TestExtraction_MonotonicInFieldCount(t *testing.T) {
	assert.Less(t, confidence.Extraction(false, false, false), confidence.Extraction(true, false, false))
	assert.Less(t, confidence.Extraction(true, false, false), confidence.Extraction(true, true, false))
	assert.Less(t, confidence.Extraction(true, true, false), confidence.Extraction(true, true, true))
}

func TestNormalization_ZeroWhenNothingParsed(t *testing.T) {
	assert.Equal(t, 0.0, confidence.Normalization(false, false, false))
	assert.Equal(t, 0.0, confidence.Normalization(false, false, true))
}

func TestNormalization_Penalties(t *testing.T) {
	assert.Equal(t, 0.9, confidence.Normalization(true, true, false))
	assert.Equal(t, 0.85, confidence.Normalization(true, true, true))  // 0.9 * 0.95
	assert.Equal(t, 0.63, confidence.Normalization(true, false, false)) // 0.9 * 0.7
	assert.Equal(t, 0.45, confidence.Normalization(false, true, false)) // 0.9 * 0.5
}
