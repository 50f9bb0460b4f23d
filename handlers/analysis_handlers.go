package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/audrbs1579/STT-site/internal/speech"
	"github.com/audrbs1579/STT-site/internal/storage"
	"github.com/audrbs1579/STT-site/internal/transcript"
	"github.com/audrbs1579/STT-site/models"
	"github.com/audrbs1579/STT-site/utils"
)

var validate = validator.New()

// CreateAnalysisForm carries the optional form fields of an upload request.
type CreateAnalysisForm struct {
	Locale string `validate:"omitempty,bcp47_language_tag"`
}

// TurnView decorates a rendered turn with the deterministic speaker styling
// the timeline uses. Spans let the UI escape literal text itself while still
// knowing which runs are highlighted.
type TurnView struct {
	SpeakerID       int               `json:"speaker_id"`
	SpeakerLabel    string            `json:"speaker_label"`
	SpeakerColor    string            `json:"speaker_color"`
	StartTimeLabel  string            `json:"start_time_label"`
	HighlightedHTML string            `json:"highlighted_html"`
	Spans           []transcript.Span `json:"spans"`
}

// AnalysisView is the display-ready response for one analysis.
type AnalysisView struct {
	ID       uuid.UUID             `json:"id"`
	FileName string                `json:"file_name"`
	Status   models.AnalysisStatus `json:"status"`
	Summary  string                `json:"summary,omitempty"`
	IsEmpty  bool                  `json:"is_empty"`
	Message  string                `json:"message,omitempty"`
	Turns    []TurnView            `json:"turns"`
}

func buildAnalysisView(analysis *models.Analysis, rendered transcript.RenderResult) AnalysisView {
	view := AnalysisView{
		ID:       analysis.ID,
		FileName: analysis.FileName,
		Status:   analysis.Status,
		Summary:  rendered.Summary,
		IsEmpty:  rendered.IsEmpty,
		Turns:    []TurnView{},
	}
	if rendered.IsEmpty {
		view.Message = transcript.MessageNoSpeech
	}
	for _, turn := range rendered.Turns {
		view.Turns = append(view.Turns, TurnView{
			SpeakerID:       turn.SpeakerID,
			SpeakerLabel:    transcript.SpeakerLabel(turn.SpeakerID),
			SpeakerColor:    transcript.SpeakerColor(turn.SpeakerID),
			StartTimeLabel:  turn.StartTimeLabel,
			HighlightedHTML: turn.HighlightedHTML,
			Spans:           turn.Spans,
		})
	}
	return view
}

// CreateAnalysis handles an audio upload end to end: normalize, stage in the
// bucket, transcribe through the speech service, render the timeline, and
// record the outcome.
// POST /api/v1/analyses (multipart, field "file", optional field "locale")
func (h *ApplicationHandler) CreateAnalysis(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No audio file in request")
	}

	form := CreateAnalysisForm{Locale: c.FormValue("locale")}
	if err := validate.Struct(form); err != nil {
		h.Logger.Errorf("Validation error for analysis form: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	h.Logger.Infof("Received analysis request for %s (%d bytes)", file.Filename, file.Size)

	analysisID := uuid.New()
	now := time.Now()

	tempDir, err := os.MkdirTemp("", "stt-upload-*")
	if err != nil {
		h.Logger.Errorf("Error creating temp dir: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not stage the upload")
	}
	defer os.RemoveAll(tempDir)

	inputPath := filepath.Join(tempDir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, inputPath); err != nil {
		h.Logger.Errorf("Error saving uploaded file: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not stage the upload")
	}

	record := &models.Analysis{
		ID:        analysisID,
		FileName:  file.Filename,
		Status:    models.AnalysisPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Analyses.Create(c.Context(), record); err != nil {
		h.Logger.Errorf("Error creating analysis record: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create analysis record")
	}

	wavPath, err := h.Converter.ToSpeechWAV(c.Context(), inputPath)
	if err != nil {
		h.Logger.Errorf("Audio conversion failed for analysis %s: %v", analysisID, err)
		h.failAnalysis(c, analysisID, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Could not process the audio file. It may be corrupt or in an unsupported format.")
	}

	objectPath, err := h.Audio.Upload(wavPath)
	if err != nil {
		h.Logger.Errorf("Audio staging failed for analysis %s: %v", analysisID, err)
		h.failAnalysis(c, analysisID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not stage audio for transcription")
	}

	contentURL, err := h.Audio.SignedURL(objectPath, h.SignedURLExpiry)
	if err != nil {
		h.Logger.Errorf("Signed URL generation failed for analysis %s: %v", analysisID, err)
		h.failAnalysis(c, analysisID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not stage audio for transcription")
	}

	if err := h.Analyses.Update(c.Context(), analysisID, map[string]interface{}{
		"status":       models.AnalysisProcessing,
		"storage_path": objectPath,
	}); err != nil {
		// The pipeline keeps going; the record just lags behind.
		h.Logger.Errorf("Error marking analysis %s as processing: %v", analysisID, err)
	}

	result, err := h.Speech.Transcribe(c.Context(), speech.Request{
		ContentURL:  contentURL,
		DisplayName: file.Filename,
		Locale:      form.Locale,
	})
	if err != nil {
		h.Logger.Errorf("Transcription failed for analysis %s: %v", analysisID, err)
		h.failAnalysis(c, analysisID, err)
		return utils.RespondWithError(c, fiber.StatusBadGateway,
			fmt.Sprintf("Transcription service error: %v", err))
	}

	rendered := transcript.Render(result)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		h.Logger.Errorf("Error marshalling result for analysis %s: %v", analysisID, err)
		resultJSON = nil
	}
	updates := map[string]interface{}{"status": models.AnalysisCompleted}
	if resultJSON != nil {
		updates["result"] = json.RawMessage(resultJSON)
	}
	if err := h.Analyses.Update(c.Context(), analysisID, updates); err != nil {
		h.Logger.Errorf("Error marking analysis %s as completed: %v", analysisID, err)
	}

	record.Status = models.AnalysisCompleted
	h.Logger.Infof("Analysis %s completed with %d turns (empty=%t)", analysisID, len(rendered.Turns), rendered.IsEmpty)
	return utils.RespondWithJSON(c, fiber.StatusCreated, buildAnalysisView(record, rendered))
}

// failAnalysis records a terminal failure; the HTTP response is the caller's
// concern.
func (h *ApplicationHandler) failAnalysis(c *fiber.Ctx, id uuid.UUID, cause error) {
	if err := h.Analyses.Update(c.Context(), id, map[string]interface{}{
		"status":        models.AnalysisFailed,
		"error_message": cause.Error(),
	}); err != nil {
		h.Logger.Errorf("Error marking analysis %s as failed: %v", id, err)
	}
}

// GetAnalysis returns one analysis; completed ones are re-rendered from the
// stored transcription document.
// GET /api/v1/analyses/:id
func (h *ApplicationHandler) GetAnalysis(c *fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid analysis ID format")
	}

	analysis, err := h.Analyses.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, "Analysis not found")
		}
		h.Logger.Errorf("Error fetching analysis %s: %v", id, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch analysis")
	}

	if analysis.Status != models.AnalysisCompleted || len(analysis.Result) == 0 {
		return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
			"id":            analysis.ID,
			"file_name":     analysis.FileName,
			"status":        analysis.Status,
			"error_message": analysis.ErrorMessage,
			"created_at":    analysis.CreatedAt,
		})
	}

	var result models.TranscriptionResult
	if err := json.Unmarshal(analysis.Result, &result); err != nil {
		h.Logger.Errorf("Error decoding stored result for analysis %s: %v", id, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Stored transcription result is unreadable")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, buildAnalysisView(analysis, transcript.Render(&result)))
}

// ListAnalyses returns all recorded analyses, newest first.
// GET /api/v1/analyses
func (h *ApplicationHandler) ListAnalyses(c *fiber.Ctx) error {
	analyses, err := h.Analyses.List(c.Context())
	if err != nil {
		h.Logger.Errorf("Error listing analyses: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to list analyses")
	}

	h.Logger.Infof("Listed %d analyses", len(analyses))
	return utils.RespondWithJSON(c, fiber.StatusOK, analyses)
}
