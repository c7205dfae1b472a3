package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedo/internal/domain"
	"schedo/internal/service"
)

// AppointmentHandler handles the pipeline endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// ParseRequest is the request body for acquisition and the full
// pipeline. Content is plain text for input_type "text" and a base64
// image (data URI tolerated) for "image".
type ParseRequest struct {
	InputType string `json:"input_type" binding:"required,oneof=text image"`
	Content   string `json:"content" binding:"required"`
}

// ExtractRequest is the request body for standalone entity extraction.
type ExtractRequest struct {
	RawText string `json:"raw_text" binding:"required"`
}

// NormalizeRequest is the request body for standalone normalization.
// The extract output can be forwarded as-is: entities_confidence is
// accepted but never gates normalization, which is scored on its own.
type NormalizeRequest struct {
	Entities           domain.Entities `json:"entities"`
	EntitiesConfidence float64         `json:"entities_confidence"`
}

func (r ParseRequest) rawInput() domain.RawInput {
	return domain.RawInput{
		Kind:    domain.InputKind(r.InputType),
		Content: r.Content,
	}
}

// Parse handles POST /api/v1/parse
// @Summary Acquire text from raw input
// @Description Normalize text or image input into (text, confidence), gated against the acquisition threshold
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Raw input"
// @Success 200 {object} APIResponse{data=service.ParseResult}
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 502 {object} APIResponse "Backend request failed"
// @Failure 503 {object} APIResponse "Acquisition engine unavailable"
// @Router /parse [post]
func (h *AppointmentHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "input_type (text|image) and content are required")
		return
	}

	result, err := h.appointmentService.Parse(c.Request.Context(), req.rawInput())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Extract handles POST /api/v1/extract
// @Summary Extract appointment entities from text
// @Description Extract date, time, and department phrases, gated against the extraction threshold
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Acquired text"
// @Success 200 {object} APIResponse{data=service.ExtractResult}
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 502 {object} APIResponse "Backend request failed"
// @Router /extract [post]
func (h *AppointmentHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "raw_text is required")
		return
	}

	result, err := h.appointmentService.Extract(c.Request.Context(), req.RawText)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Normalize handles POST /api/v1/normalize
// @Summary Normalize extracted phrases
// @Description Resolve date/time phrases to canonical values and the department to its taxonomy name
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body NormalizeRequest true "Extracted entities"
// @Success 200 {object} APIResponse{data=service.NormalizeResult}
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /normalize [post]
func (h *AppointmentHandler) Normalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}

	result := h.appointmentService.Normalize(req.Entities)

	RespondOK(c, result)
}

// Schedule handles POST /api/v1/appointment
// @Summary Run the full appointment pipeline
// @Description Acquire, extract, and normalize in one call, returning either an appointment or a clarification request
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Raw input"
// @Success 200 {object} APIResponse{data=domain.ScheduleResult}
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 502 {object} APIResponse "Backend request failed"
// @Failure 503 {object} APIResponse "Acquisition engine unavailable"
// @Router /appointment [post]
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "input_type (text|image) and content are required")
		return
	}

	result, err := h.appointmentService.Schedule(c.Request.Context(), req.rawInput())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
