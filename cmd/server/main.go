package main

import (
	"fmt"
	"log"

	"github.com/lpernett/godotenv"

	"schedo/internal/acquire"
	"schedo/internal/backend/gemini"
	"schedo/internal/config"
	"schedo/internal/confidence"
	"schedo/internal/extract"
	"schedo/internal/handler"
	"schedo/internal/normalize"
	"schedo/internal/port"
	"schedo/internal/router"
	"schedo/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Assemble the OCR chain. Without credentials the image path stays
	// up but reports the engine as unavailable; text input is unaffected.
	var ocrBackends []port.TextAcquisitionBackend
	var ocrNames []string
	if cfg.OCR.APIKey != "" {
		ocrBackends = append(ocrBackends, gemini.NewVision(&cfg.OCR))
		ocrNames = append(ocrNames, cfg.OCR.Provider)
	}
	var ocrBackend port.TextAcquisitionBackend = acquire.Unavailable{Reason: "no OCR credentials configured"}
	if len(ocrBackends) > 0 {
		ocrBackend = acquire.NewFallbackBackend(ocrBackends, ocrNames)
	}

	llmBackend := gemini.NewClient(&cfg.LLM)

	// Initialize services
	appointmentSvc := service.NewAppointmentService(
		acquire.NewService(ocrBackend),
		extract.NewExtractor(llmBackend),
		normalize.New(cfg.Location),
		confidence.Thresholds{
			OCR:           cfg.Pipeline.OCRMinConfidence,
			Extraction:    cfg.Pipeline.ExtractionMinConfidence,
			Normalization: cfg.Pipeline.NormalizationMinConfidence,
		},
	)

	// Initialize handlers
	appointmentH := handler.NewAppointmentHandler(appointmentSvc)
	healthH := handler.NewHealthHandler(cfg.OCR.APIKey != "", cfg.LLM.APIKey != "")

	// Setup router
	r := router.Setup(cfg, appointmentH, healthH)

	log.Printf("Server starting on %s (timezone %s)", cfg.Server.Port, cfg.Pipeline.Timezone)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
