// Package normalize converts natural-language date, time, and department
// phrases into canonical values: ISO dates, 24-hour times, and taxonomy
// department names.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"schedo/internal/confidence"
	"schedo/internal/domain"
)

// relativeMarkers flag a date phrase as relative to the current moment.
// The scan is independent of whether parsing ultimately succeeds.
var relativeMarkers = []string{
	"today", "tomorrow", "yesterday",
	"next", "this", "coming",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// fixedTimes maps common time-of-day phrases to clock times, checked
// before any general parsing.
var fixedTimes = map[string]string{
	"morning":   "09:00",
	"noon":      "12:00",
	"afternoon": "14:00",
	"evening":   "18:00",
	"night":     "20:00",
}

var (
	weekdayPhraseRe = regexp.MustCompile(`^(?:(next|this|coming|on)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
	ordinalRe       = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)
)

// Normalizer resolves phrases against the configured timezone.
type Normalizer struct {
	loc    *time.Location
	parser *when.Parser
}

// New creates a Normalizer for the given location.
func New(loc *time.Location) *Normalizer {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Normalizer{loc: loc, parser: w}
}

// Normalize resolves the date and time phrases against the current
// moment. See NormalizeAt for the contract.
func (n *Normalizer) Normalize(datePhrase, timePhrase *string) (*domain.NormalizedSchedule, float64) {
	return n.NormalizeAt(datePhrase, timePhrase, time.Now().In(n.loc))
}

// NormalizeAt resolves the phrases against an explicit reference moment.
//
// The output is both-or-neither: either a complete schedule is returned,
// or nil with the stated confidence. An absent date with a parsed time
// defaults to the reference day and forces the relative penalty; a
// parsed date with an absent time is insufficient input and fails
// outright, so ambiguity is surfaced instead of silently defaulted.
func (n *Normalizer) NormalizeAt(datePhrase, timePhrase *string, now time.Time) (*domain.NormalizedSchedule, float64) {
	now = now.In(n.loc)

	var date time.Time
	dateParsed := false
	isRelative := false
	if datePhrase != nil {
		isRelative = containsRelativeMarker(*datePhrase)
		date, dateParsed = n.parseDate(*datePhrase, now)
	}

	var clock time.Time
	timeParsed := false
	if timePhrase != nil {
		clock, timeParsed = n.parseTime(*timePhrase, now)
	}

	if !dateParsed && !timeParsed {
		return nil, 0.0
	}

	// Time without a date means today.
	if !dateParsed && timeParsed {
		date = now
		dateParsed = true
		isRelative = true
	}

	// A date without an explicit time is never defaulted.
	if dateParsed && !timeParsed {
		return nil, 0.0
	}

	score := confidence.Normalization(dateParsed, timeParsed, isRelative)
	return &domain.NormalizedSchedule{
		Date:     date.Format("2006-01-02"),
		Time:     clock.Format("15:04"),
		Timezone: n.loc.String(),
	}, score
}

func containsRelativeMarker(phrase string) bool {
	lower := strings.ToLower(phrase)
	for _, marker := range relativeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// parseDate resolves a date phrase, preferring future dates when the
// phrase is ambiguous about which occurrence is meant. Resolution order:
// casual relative words, weekday phrases, a strict absolute-date pass,
// then a lenient natural-language pass.
func (n *Normalizer) parseDate(phrase string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(strings.TrimSpace(phrase))

	switch lower {
	case "today":
		return now, true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	}

	if m := weekdayPhraseRe.FindStringSubmatch(lower); m != nil {
		target := weekdays[m[2]]
		delta := (int(target) - int(now.Weekday()) + 7) % 7
		// "next Friday" on a Friday means a week out; a bare weekday on
		// its own day resolves to today.
		if delta == 0 && m[1] == "next" {
			delta = 7
		}
		return now.AddDate(0, 0, delta), true
	}

	// Strict pass: absolute calendar dates.
	cleaned := ordinalRe.ReplaceAllString(lower, "$1")
	if t, err := dateparse.ParseIn(cleaned, n.loc); err == nil {
		return t, true
	}

	// Lenient pass: general natural-language phrasing.
	if r, err := n.parser.Parse(phrase, now); err == nil && r != nil {
		return r.Time, true
	}

	return time.Time{}, false
}

// timeLayouts are tried against the lowercased phrase after the fixed
// phrase table.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04pm",
	"3:04 pm",
	"3pm",
	"3 pm",
}

// parseTime resolves a time phrase, keeping only the time-of-day
// component.
func (n *Normalizer) parseTime(phrase string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(strings.TrimSpace(phrase))

	if fixed, ok := fixedTimes[lower]; ok {
		t, _ := time.Parse("15:04", fixed)
		return t, true
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, lower); err == nil {
			return t, true
		}
	}

	if r, err := n.parser.Parse(phrase, now); err == nil && r != nil {
		return r.Time, true
	}

	return time.Time{}, false
}

// ValidFutureDate reports whether an ISO date is today or later in the
// given location.
func ValidFutureDate(dateStr string, loc *time.Location) bool {
	d, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return false
	}
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return !d.Before(today)
}
