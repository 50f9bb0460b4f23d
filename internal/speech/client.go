// Package speech is a client for the Azure Speech batch transcription REST
// API (v3.2). A job is created from a publicly readable content URL, polled
// until it settles, and its transcription artifact fetched and decoded.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/audrbs1579/STT-site/models"
)

const (
	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
	transcriptionsPath    = "/speechtotext/v3.2/transcriptions"
)

// Request describes one transcription job.
type Request struct {
	ContentURL  string
	DisplayName string
	Locale      string // optional; falls back to the client default
}

// Config carries the client settings.
type Config struct {
	Endpoint     string // e.g. https://koreacentral.api.cognitive.microsoft.com
	Key          string
	Locale       string        // default locale for jobs that do not set one
	PollInterval time.Duration // delay between job status polls
	MaxPolls     int           // bound on status polls before giving up
}

// EndpointForRegion builds the regional API endpoint.
func EndpointForRegion(region string) string {
	return fmt.Sprintf("https://%s.api.cognitive.microsoft.com", region)
}

// Client talks to the batch transcription API.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	key          string
	locale       string
	pollInterval time.Duration
	maxPolls     int
	logger       *logrus.Logger
}

// NewClient builds a Client, filling unset config fields with the defaults
// the service was originally driven with (10 s polls, 30 attempts, ko-KR).
func NewClient(cfg Config, logger *logrus.Logger) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 30
	}
	if cfg.Locale == "" {
		cfg.Locale = "ko-KR"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		endpoint:     cfg.Endpoint,
		key:          cfg.Key,
		locale:       cfg.Locale,
		pollInterval: cfg.PollInterval,
		maxPolls:     cfg.MaxPolls,
		logger:       logger,
	}
}

// Transcribe runs one job end to end: submit, poll until the job settles,
// then fetch and decode the transcription document. It blocks for up to
// pollInterval*maxPolls and honors ctx cancellation throughout.
func (c *Client) Transcribe(ctx context.Context, req Request) (*models.TranscriptionResult, error) {
	jobURL, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}

	job, err := c.waitForJob(ctx, jobURL)
	if err != nil {
		return nil, err
	}

	return c.fetchResult(ctx, job)
}

func (c *Client) submit(ctx context.Context, req Request) (string, error) {
	locale := req.Locale
	if locale == "" {
		locale = c.locale
	}
	body := models.CreateTranscriptionRequest{
		ContentURLs: []string{req.ContentURL},
		Locale:      locale,
		DisplayName: req.DisplayName,
		Properties: models.TranscriptionProperties{
			DiarizationEnabled:         true,
			WordLevelTimestampsEnabled: true,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal transcription request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+transcriptionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set(subscriptionKeyHeader, c.key)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("submit transcription: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speech service %s: %s", resp.Status, string(respBody))
	}

	jobURL := resp.Header.Get("Location")
	if jobURL == "" {
		return "", fmt.Errorf("speech service returned no job location")
	}

	c.logger.WithFields(logrus.Fields{
		"job_url": jobURL,
		"locale":  locale,
	}).Info("Transcription job submitted")
	return jobURL, nil
}

func (c *Client) waitForJob(ctx context.Context, jobURL string) (*models.TranscriptionJob, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= c.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		var job models.TranscriptionJob
		if err := c.getJSON(ctx, jobURL, true, &job); err != nil {
			return nil, fmt.Errorf("poll transcription job: %w", err)
		}
		c.logger.WithFields(logrus.Fields{
			"status":  job.Status,
			"attempt": attempt,
		}).Debug("Transcription job polled")

		switch job.Status {
		case models.JobStatusSucceeded:
			return &job, nil
		case models.JobStatusFailed:
			msg := "transcription failed"
			if job.Properties.Error != nil && job.Properties.Error.Message != "" {
				msg = job.Properties.Error.Message
			}
			return nil, fmt.Errorf("speech service: %s", msg)
		}
	}

	return nil, fmt.Errorf("transcription did not finish after %d polls", c.maxPolls)
}

func (c *Client) fetchResult(ctx context.Context, job *models.TranscriptionJob) (*models.TranscriptionResult, error) {
	var files models.TranscriptionFiles
	if err := c.getJSON(ctx, job.Links.Files, true, &files); err != nil {
		return nil, fmt.Errorf("list transcription files: %w", err)
	}

	var contentURL string
	for _, f := range files.Values {
		if f.Kind == "Transcription" {
			contentURL = f.Links.ContentURL
			break
		}
	}
	if contentURL == "" {
		return nil, fmt.Errorf("no transcription artifact in job results")
	}

	// Artifact URLs are pre-signed; the subscription key must not be sent.
	var result models.TranscriptionResult
	if err := c.getJSON(ctx, contentURL, false, &result); err != nil {
		return nil, fmt.Errorf("fetch transcription result: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, url string, authenticated bool, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if authenticated {
		req.Header.Set(subscriptionKeyHeader, c.key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("speech service %s: %s", resp.Status, string(respBody))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
