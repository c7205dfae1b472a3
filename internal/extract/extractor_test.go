package extract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"schedo/internal/domain"
	"schedo/internal/extract"
	"schedo/mocks"
)

func TestExtractor_AllFieldsPresent(t *testing.T) {
	backend := new(mocks.MockEntityExtractionBackend)
	backend.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "dentist appointment next Friday at 3pm")
	})).Return(`{"date_phrase": "next Friday", "time_phrase": "3pm", "department": "dentist"}`, nil)

	ex := extract.NewExtractor(backend)
	ents, score, err := ex.Extract(context.Background(), "Schedule a dentist appointment next Friday at 3pm")
	require.NoError(t, err)
	assert.Equal(t, 0.95, score)
	require.NotNil(t, ents.Department)
	assert.Equal(t, "dentist", *ents.Department)
	backend.AssertExpectations(t)
}

func TestExtractor_PartialFields(t *testing.T) {
	backend := new(mocks.MockEntityExtractionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).
		Return(`{"date_phrase": "tomorrow", "time_phrase": null, "department": "doctor"}`, nil)

	ex := extract.NewExtractor(backend)
	ents, score, err := ex.Extract(context.Background(), "see a doctor tomorrow")
	require.NoError(t, err)
	assert.Equal(t, 0.85, score)
	assert.Nil(t, ents.TimePhrase)
}

func TestExtractor_NoFields(t *testing.T) {
	backend := new(mocks.MockEntityExtractionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).
		Return(`{"date_phrase": null, "time_phrase": null, "department": null}`, nil)

	ex := extract.NewExtractor(backend)
	_, score, err := ex.Extract(context.Background(), "I need an appointment")
	require.NoError(t, err)
	assert.Equal(t, 0.40, score)
}

func TestExtractor_BackendErrorPropagates(t *testing.T) {
	backend := new(mocks.MockEntityExtractionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).Return("", domain.ErrTransport)

	ex := extract.NewExtractor(backend)
	_, _, err := ex.Extract(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestExtractor_MalformedReply(t *testing.T) {
	backend := new(mocks.MockEntityExtractionBackend)
	backend.On("Complete", mock.Anything, mock.Anything).Return("no JSON here at all", nil)

	ex := extract.NewExtractor(backend)
	_, _, err := ex.Extract(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrMalformedExtraction)
}

func TestBuildEntityPrompt_ForbidsInference(t *testing.T) {
	prompt := extract.BuildEntityPrompt("some text")
	assert.Contains(t, prompt, "Do NOT infer")
	assert.Contains(t, prompt, "date_phrase")
	assert.Contains(t, prompt, "time_phrase")
	assert.Contains(t, prompt, "department")
	assert.True(t, strings.HasSuffix(prompt, "some text"))
}
