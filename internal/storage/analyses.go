package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/audrbs1579/STT-site/models"
)

// ErrRecordNotFound is returned when a database record is not found.
var ErrRecordNotFound = errors.New("record not found")

const analysesTable = "analyses"

// AnalysisStore persists analysis records through PostgREST.
type AnalysisStore struct {
	client *supa.Client
}

// NewAnalysisStore creates an AnalysisStore.
func NewAnalysisStore(client *supa.Client) *AnalysisStore {
	return &AnalysisStore{client: client}
}

// Create inserts a new analysis record.
func (s *AnalysisStore) Create(ctx context.Context, analysis *models.Analysis) error {
	_, _, err := s.client.From(analysesTable).
		Insert(analysis, false, "", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", analysis.ID, err)
	}
	return nil
}

// Update applies the given column updates to one analysis. updated_at is set
// here so callers never have to remember it.
func (s *AnalysisStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, count, err := s.client.From(analysesTable).
		Update(updates, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("update analysis %s: %w", id, err)
	}
	if count == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Get fetches one analysis by id.
func (s *AnalysisStore) Get(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	body, _, err := s.client.From(analysesTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetch analysis %s: %w", id, err)
	}

	var analyses []models.Analysis
	if err := json.Unmarshal(body, &analyses); err != nil {
		return nil, fmt.Errorf("decode analysis %s: %w", id, err)
	}
	if len(analyses) == 0 {
		return nil, ErrRecordNotFound
	}
	return &analyses[0], nil
}

// List returns all analyses, newest first.
func (s *AnalysisStore) List(ctx context.Context) ([]models.Analysis, error) {
	body, _, err := s.client.From(analysesTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	var analyses []models.Analysis
	if err := json.Unmarshal(body, &analyses); err != nil {
		return nil, fmt.Errorf("decode analyses: %w", err)
	}
	return analyses, nil
}
