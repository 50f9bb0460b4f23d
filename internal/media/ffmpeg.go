// Package media shells out to ffmpeg/ffprobe to normalize uploaded audio
// before it is handed to the speech service.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Converter normalizes uploaded audio files.
type Converter struct {
	logger *logrus.Logger
}

// NewConverter creates a Converter.
func NewConverter(logger *logrus.Logger) *Converter {
	if logger == nil {
		logger = logrus.New()
	}
	return &Converter{logger: logger}
}

// ToSpeechWAV converts inputPath into a 16 kHz mono WAV file next to it and
// returns the output path. The speech service expects this layout regardless
// of the uploaded container; a failure here almost always means the upload is
// corrupt or not audio at all.
func (c *Converter) ToSpeechWAV(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_16k_mono.wav"

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", // Overwrite output file if it exists
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg failed: %v\nStderr: %s", err, stderr.String())
	}

	c.logger.WithField("output", outputPath).Debug("Audio normalized to 16 kHz mono WAV")
	return outputPath, nil
}

// ffprobeOutput captures the slice of ffprobe's JSON output we care about.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration uses ffprobe to read the duration of an audio file.
func (c *Converter) ProbeDuration(ctx context.Context, filePath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %v\nStderr: %s", err, stderr.String())
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("error unmarshalling ffprobe output: %v\nOutput: %s", err, out.String())
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("could not retrieve duration from ffprobe output\nOutput: %s", out.String())
	}

	durationFloat, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing duration string '%s': %v", probe.Format.Duration, err)
	}
	return time.Duration(durationFloat * float64(time.Second)), nil
}
