package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/audrbs1579/STT-site/internal/speech"
	"github.com/audrbs1579/STT-site/models"
)

// SpeechClient is the slice of the transcription service the handlers need.
// This allows for decoupling and easier testing; the concrete implementation
// lives in internal/speech.
type SpeechClient interface {
	Transcribe(ctx context.Context, req speech.Request) (*models.TranscriptionResult, error)
}

// AudioConverter normalizes uploads before they are staged for the service.
type AudioConverter interface {
	ToSpeechWAV(ctx context.Context, inputPath string) (string, error)
}

// AudioStore stages audio files and produces signed read URLs.
type AudioStore interface {
	Upload(filePath string) (string, error)
	SignedURL(objectPath string, expirySeconds int) (string, error)
}

// AnalysisStore records analyses and their status transitions.
type AnalysisStore interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Get(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
	List(ctx context.Context) ([]models.Analysis, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Speech          SpeechClient
	Converter       AudioConverter
	Audio           AudioStore
	Analyses        AnalysisStore
	Logger          *logrus.Logger
	SignedURLExpiry int // seconds the speech service may read staged audio
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(speechClient SpeechClient, converter AudioConverter, audio AudioStore, analyses AnalysisStore, logger *logrus.Logger, signedURLExpiry int) *ApplicationHandler {
	return &ApplicationHandler{
		Speech:          speechClient,
		Converter:       converter,
		Audio:           audio,
		Analyses:        analyses,
		Logger:          logger,
		SignedURLExpiry: signedURLExpiry,
	}
}
