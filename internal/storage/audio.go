// Package storage persists audio files and analysis records through
// Supabase: audio goes into a storage bucket behind signed URLs, records go
// into the analyses table via PostgREST.
package storage

import (
	"fmt"
	"os"
	"path"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"
)

// AudioStore stages normalized audio in a storage bucket and mints signed
// read URLs for the speech service.
type AudioStore struct {
	client *supa.Client
	bucket string
}

// NewAudioStore creates an AudioStore backed by the given bucket.
func NewAudioStore(client *supa.Client, bucket string) *AudioStore {
	return &AudioStore{client: client, bucket: bucket}
}

// Upload stores the file under a fresh UUID object name and returns the
// object path within the bucket.
func (s *AudioStore) Upload(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	objectPath := uuid.NewString() + path.Ext(filePath)
	contentType := "audio/wav"
	_, err = s.client.Storage.UploadFile(s.bucket, objectPath, f, storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload to bucket %s: %w", s.bucket, err)
	}
	return objectPath, nil
}

// SignedURL returns a read URL for an object, valid for expirySeconds. The
// speech service fetches the audio through this URL.
func (s *AudioStore) SignedURL(objectPath string, expirySeconds int) (string, error) {
	resp, err := s.client.Storage.CreateSignedUrl(s.bucket, objectPath, expirySeconds)
	if err != nil {
		return "", fmt.Errorf("sign %s/%s: %w", s.bucket, objectPath, err)
	}
	return resp.SignedURL, nil
}
