package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalysisStatus enumerates the lifecycle of one transcription request.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// Analysis represents one recorded transcription request in the database.
type Analysis struct {
	ID           uuid.UUID       `json:"id"`
	FileName     string          `json:"file_name"`
	StoragePath  *string         `json:"storage_path,omitempty"` // Nullable TEXT
	Status       AnalysisStatus  `json:"status"`
	Result       json.RawMessage `json:"result,omitempty"` // Nullable JSONB, raw service document
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
