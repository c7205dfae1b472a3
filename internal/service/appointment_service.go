package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"schedo/internal/acquire"
	"schedo/internal/confidence"
	"schedo/internal/domain"
	"schedo/internal/extract"
	"schedo/internal/normalize"
)

// ParseResult is the outcome of the standalone text-acquisition
// operation.
type ParseResult struct {
	RawText    string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
	Message    string  `json:"message,omitempty"`
}

// ExtractResult is the outcome of the standalone entity-extraction
// operation.
type ExtractResult struct {
	Entities   domain.Entities `json:"entities"`
	Confidence float64         `json:"confidence"`
	Status     string          `json:"status"`
	Message    string          `json:"message,omitempty"`
}

// NormalizeResult is the outcome of the standalone normalization
// operation. Unlike the full pipeline, this entry point gates on the
// normalization confidence threshold as well as absence.
type NormalizeResult struct {
	Normalized *domain.NormalizedSchedule `json:"normalized"`
	Department string                     `json:"department,omitempty"`
	Confidence float64                    `json:"confidence"`
	Status     string                     `json:"status"`
	Message    string                     `json:"message,omitempty"`
}

// AppointmentService exposes each pipeline stage standalone plus the
// full chained pipeline.
type AppointmentService interface {
	Parse(ctx context.Context, input domain.RawInput) (*ParseResult, error)
	Extract(ctx context.Context, rawText string) (*ExtractResult, error)
	Normalize(entities domain.Entities) *NormalizeResult
	Schedule(ctx context.Context, input domain.RawInput) (*domain.ScheduleResult, error)
}

type appointmentService struct {
	acquirer   *acquire.Service
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	thresholds confidence.Thresholds
}

// NewAppointmentService creates the orchestrator over the three stage
// implementations.
func NewAppointmentService(
	acquirer *acquire.Service,
	extractor *extract.Extractor,
	normalizer *normalize.Normalizer,
	thresholds confidence.Thresholds,
) AppointmentService {
	return &appointmentService{
		acquirer:   acquirer,
		extractor:  extractor,
		normalizer: normalizer,
		thresholds: thresholds,
	}
}

// Parse runs acquisition alone, gated against the OCR threshold.
func (s *appointmentService) Parse(ctx context.Context, input domain.RawInput) (*ParseResult, error) {
	acquired, err := s.acquirer.Acquire(ctx, input)
	if err != nil {
		if domain.Clarifiable(err) {
			return &ParseResult{
				Status:  domain.StatusNeedsClarification,
				Message: ClarificationMessage(err),
			}, nil
		}
		return nil, err
	}

	result := &ParseResult{
		RawText:    acquired.Text,
		Confidence: acquired.Confidence,
		Status:     domain.StatusOK,
	}
	if acquired.Confidence < s.thresholds.OCR {
		result.Status = domain.StatusNeedsClarification
		result.Message = lowAcquisitionMessage(acquired.Confidence)
	}
	return result, nil
}

// Extract runs entity extraction alone, gated against the extraction
// threshold.
func (s *appointmentService) Extract(ctx context.Context, rawText string) (*ExtractResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return &ExtractResult{
			Status:  domain.StatusNeedsClarification,
			Message: ClarificationMessage(domain.ErrEmptyInput),
		}, nil
	}

	entities, score, err := s.extractor.Extract(ctx, rawText)
	if err != nil {
		if domain.Clarifiable(err) {
			return &ExtractResult{
				Status:  domain.StatusNeedsClarification,
				Message: ClarificationMessage(err),
			}, nil
		}
		return nil, err
	}

	result := &ExtractResult{
		Entities:   *entities,
		Confidence: score,
		Status:     domain.StatusOK,
	}
	if score < s.thresholds.Extraction {
		result.Status = domain.StatusNeedsClarification
		result.Message = lowExtractionMessage
	}
	return result, nil
}

// Normalize runs the date/time/department stage alone. This standalone
// entry point is the only place the normalization threshold gates; the
// full pipeline gates on absence alone.
func (s *appointmentService) Normalize(entities domain.Entities) *NormalizeResult {
	normalized, score := s.normalizer.Normalize(entities.DatePhrase, entities.TimePhrase)

	result := &NormalizeResult{
		Normalized: normalized,
		Confidence: score,
		Status:     domain.StatusOK,
	}
	if entities.Department != nil {
		result.Department = normalize.CanonicalDepartment(*entities.Department)
	}
	if normalized == nil || score < s.thresholds.Normalization {
		result.Normalized = nil
		result.Status = domain.StatusNeedsClarification
		result.Message = unparsableDateTimeMessage
	}
	return result
}

// Schedule chains all stages: acquisition, extraction, completeness,
// normalization, department canonicalization. Each gate checks only its
// own stage's score; scores are never combined.
func (s *appointmentService) Schedule(ctx context.Context, input domain.RawInput) (*domain.ScheduleResult, error) {
	acquired, err := s.acquirer.Acquire(ctx, input)
	if err != nil {
		if domain.Clarifiable(err) {
			return clarification(domain.StageAcquisition, ClarificationMessage(err)), nil
		}
		return nil, err
	}
	if acquired.Confidence < s.thresholds.OCR {
		return clarification(domain.StageAcquisition, lowAcquisitionMessage(acquired.Confidence)), nil
	}

	entities, score, err := s.extractor.Extract(ctx, acquired.Text)
	if err != nil {
		if domain.Clarifiable(err) {
			return clarification(domain.StageExtraction, ClarificationMessage(err)), nil
		}
		return nil, err
	}
	if score < s.thresholds.Extraction {
		return clarification(domain.StageExtraction, lowExtractionMessage), nil
	}

	// Completeness is checked even when the confidence gate passed: a
	// 2-of-3 extraction can clear the threshold yet still be unusable.
	if missing := entities.Missing(); len(missing) > 0 {
		return clarification(
			domain.StageExtraction,
			"Missing required information: "+strings.Join(missing, ", ")+". Please provide it.",
		), nil
	}

	normalized, _ := s.normalizer.Normalize(entities.DatePhrase, entities.TimePhrase)
	if normalized == nil {
		return clarification(domain.StageNormalization, unparsableDateTimeMessage), nil
	}

	return &domain.ScheduleResult{
		Appointment: &domain.Appointment{
			Department: normalize.CanonicalDepartment(*entities.Department),
			Date:       normalized.Date,
			Time:       normalized.Time,
			Timezone:   normalized.Timezone,
		},
		Status: domain.StatusOK,
	}, nil
}

const (
	lowExtractionMessage      = "Could not extract sufficient information. Please include date, time, and appointment type."
	unparsableDateTimeMessage = "Could not parse date or time. Please provide a specific date and time."
)

func lowAcquisitionMessage(score float64) string {
	return fmt.Sprintf("Text extraction confidence too low (%.2f). Please provide clearer input.", score)
}

func clarification(stage domain.Stage, message string) *domain.ScheduleResult {
	return &domain.ScheduleResult{
		Status:  domain.StatusNeedsClarification,
		Message: message,
		Stage:   stage,
	}
}

// ClarificationMessage maps a recoverable error kind to the user-facing
// reason text.
func ClarificationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "Input is empty. Please provide appointment details."
	case errors.Is(err, domain.ErrNoTextExtracted):
		return "No readable text was found in the image. Please provide a clearer image."
	case errors.Is(err, domain.ErrMalformedExtraction):
		return "Could not understand the request. Please rephrase with a date, time, and appointment type."
	case errors.Is(err, domain.ErrAmbiguousInput):
		return "The request is ambiguous. Please provide more specific details."
	default:
		return "Please provide more details about the appointment."
	}
}
