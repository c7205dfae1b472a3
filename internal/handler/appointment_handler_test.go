package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"schedo/internal/domain"
	"schedo/internal/handler"
	"schedo/internal/service"
	"schedo/mocks"
)

func newRouter(svc service.AppointmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAppointmentHandler(svc)
	r.POST("/api/v1/parse", h.Parse)
	r.POST("/api/v1/extract", h.Extract)
	r.POST("/api/v1/normalize", h.Normalize)
	r.POST("/api/v1/appointment", h.Schedule)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, handler.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestSchedule_OK(t *testing.T) {
	svc := new(mocks.MockAppointmentService)
	svc.On("Schedule", mock.Anything, domain.RawInput{Kind: domain.InputText, Content: "dentist tomorrow 3pm"}).
		Return(&domain.ScheduleResult{
			Appointment: &domain.Appointment{
				Department: "Dentistry",
				Date:       "2026-09-01",
				Time:       "15:00",
				Timezone:   "Asia/Kolkata",
			},
			Status: domain.StatusOK,
		}, nil)

	w, envelope := doRequest(t, newRouter(svc),
		"/api/v1/appointment",
		`{"input_type": "text", "content": "dentist tomorrow 3pm"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, envelope.Success)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	appointment := data["appointment"].(map[string]any)
	assert.Equal(t, "Dentistry", appointment["department"])
	svc.AssertExpectations(t)
}

func TestSchedule_ClarificationIsStillHTTP200(t *testing.T) {
	svc := new(mocks.MockAppointmentService)
	svc.On("Schedule", mock.Anything, mock.Anything).
		Return(&domain.ScheduleResult{
			Status:  domain.StatusNeedsClarification,
			Message: "Missing required information: time. Please provide it.",
			Stage:   domain.StageExtraction,
		}, nil)

	w, envelope := doRequest(t, newRouter(svc),
		"/api/v1/appointment",
		`{"input_type": "text", "content": "dentist tomorrow"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, envelope.Success)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "needs_clarification", data["status"])
	assert.Equal(t, "extraction", data["stage"])
}

func TestSchedule_InvalidInputType(t *testing.T) {
	svc := new(mocks.MockAppointmentService)

	w, envelope := doRequest(t, newRouter(svc),
		"/api/v1/appointment",
		`{"input_type": "audio", "content": "hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "INVALID_REQUEST", envelope.Error.Code)
	svc.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
}

func TestSchedule_BackendFaultMapsToStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"transport", domain.ErrTransport, http.StatusBadGateway, "BACKEND_TRANSPORT_ERROR"},
		{"auth", domain.ErrAuth, http.StatusServiceUnavailable, "BACKEND_AUTH_ERROR"},
		{"engine unavailable", domain.ErrEngineUnavailable, http.StatusServiceUnavailable, "ENGINE_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.MockAppointmentService)
			svc.On("Schedule", mock.Anything, mock.Anything).Return(nil, tc.err)

			w, envelope := doRequest(t, newRouter(svc),
				"/api/v1/appointment",
				`{"input_type": "image", "content": "aGVsbG8="}`)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.False(t, envelope.Success)
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
		})
	}
}

func TestParse_OK(t *testing.T) {
	svc := new(mocks.MockAppointmentService)
	svc.On("Parse", mock.Anything, domain.RawInput{Kind: domain.InputText, Content: "dentist tomorrow"}).
		Return(&service.ParseResult{
			RawText:    "dentist tomorrow",
			Confidence: 0.8,
			Status:     domain.StatusOK,
		}, nil)

	w, envelope := doRequest(t, newRouter(svc),
		"/api/v1/parse",
		`{"input_type": "text", "content": "dentist tomorrow"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "dentist tomorrow", data["raw_text"])
	assert.InDelta(t, 0.8, data["confidence"].(float64), 0.001)
}

func TestExtract_MissingBody(t *testing.T) {
	svc := new(mocks.MockAppointmentService)

	w, envelope := doRequest(t, newRouter(svc), "/api/v1/extract", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", envelope.Error.Code)
}

func TestNormalize_OK(t *testing.T) {
	date := "tomorrow"
	clock := "3pm"
	dept := "dentist"

	svc := new(mocks.MockAppointmentService)
	svc.On("Normalize", domain.Entities{DatePhrase: &date, TimePhrase: &clock, Department: &dept}).
		Return(&service.NormalizeResult{
			Normalized: &domain.NormalizedSchedule{Date: "2026-09-01", Time: "15:00", Timezone: "Asia/Kolkata"},
			Department: "Dentistry",
			Confidence: 0.85,
			Status:     domain.StatusOK,
		})

	w, envelope := doRequest(t, newRouter(svc),
		"/api/v1/normalize",
		`{"entities": {"date_phrase": "tomorrow", "time_phrase": "3pm", "department": "dentist"}, "entities_confidence": 0.95}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "Dentistry", data["department"])
	normalized := data["normalized"].(map[string]any)
	assert.Equal(t, "15:00", normalized["time"])
	svc.AssertExpectations(t)
}

func TestNormalize_ForwardedConfidenceDoesNotGate(t *testing.T) {
	date := "tomorrow"
	clock := "3pm"

	svc := new(mocks.MockAppointmentService)
	svc.On("Normalize", domain.Entities{DatePhrase: &date, TimePhrase: &clock}).
		Return(&service.NormalizeResult{
			Normalized: &domain.NormalizedSchedule{Date: "2026-09-01", Time: "15:00", Timezone: "Asia/Kolkata"},
			Confidence: 0.85,
			Status:     domain.StatusOK,
		})

	// A rock-bottom upstream confidence rides along untouched; the stage
	// is scored on its own result only.
	w, envelope := doRequest(t, newRouter(svc),
		"/api/v1/normalize",
		`{"entities": {"date_phrase": "tomorrow", "time_phrase": "3pm"}, "entities_confidence": 0.01}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	svc.AssertExpectations(t)
}

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewHealthHandler(true, false)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	backends := body["backends"].(map[string]any)
	assert.Equal(t, true, backends["ocr"])
	assert.Equal(t, false, backends["llm"])
}
