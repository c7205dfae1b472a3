package domain

// InputKind discriminates the two accepted raw input forms.
type InputKind string

const (
	// InputText is plain natural-language text.
	InputText InputKind = "text"
	// InputImage is a base64-encoded image (optionally a data URI).
	InputImage InputKind = "image"
)

// Stage identifies a pipeline stage for gating and failure reporting.
type Stage string

const (
	StageAcquisition   Stage = "acquisition"
	StageExtraction    Stage = "extraction"
	StageNormalization Stage = "normalization"
)

// Status values for pipeline outcomes. These are the only two valid
// values of the status discriminator on any exposed operation.
const (
	StatusOK                 = "ok"
	StatusNeedsClarification = "needs_clarification"
)

// RawInput is the immutable per-request input, created once per request
// and owned by the orchestrator for the request's lifetime.
type RawInput struct {
	Kind    InputKind
	Content string
}

// AcquiredText is the output of the acquisition stage: cleaned text plus
// a character-quality confidence in [0,1].
type AcquiredText struct {
	Text       string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
}

// Entities holds the three extraction fields. A nil field means the
// phrase was not explicitly present in the source text; fields are never
// inferred from context.
type Entities struct {
	DatePhrase *string `json:"date_phrase"`
	TimePhrase *string `json:"time_phrase"`
	Department *string `json:"department"`
}

// Missing returns human-readable names of the absent fields, in the
// fixed date/time/department order.
func (e Entities) Missing() []string {
	var missing []string
	if e.DatePhrase == nil {
		missing = append(missing, "date")
	}
	if e.TimePhrase == nil {
		missing = append(missing, "time")
	}
	if e.Department == nil {
		missing = append(missing, "department/appointment type")
	}
	return missing
}

// NormalizedSchedule is a fully resolved date/time in the configured
// timezone. All three fields are always populated together; partial
// normalization is never returned.
type NormalizedSchedule struct {
	Date     string `json:"date"` // ISO-8601, YYYY-MM-DD
	Time     string `json:"time"` // 24-hour, HH:MM
	Timezone string `json:"tz"`   // IANA identifier
}

// Appointment is the validated terminal record.
type Appointment struct {
	Department string `json:"department"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Timezone   string `json:"tz"`
}

// ScheduleResult is the terminal outcome of the full pipeline. Either
// Appointment is set with StatusOK, or it is nil with
// StatusNeedsClarification, a reason, and the stage that stopped.
type ScheduleResult struct {
	Appointment *Appointment `json:"appointment"`
	Status      string       `json:"status"`
	Message     string       `json:"message,omitempty"`
	Stage       Stage        `json:"stage,omitempty"`
}
