package models

import (
	"encoding/json"
	"strconv"
)

// TicksPerSecond is the resolution of the speech service's offset fields:
// one tick is 100 nanoseconds.
const TicksPerSecond = 10_000_000

// Ticks is a count of 100 ns units since the start of the audio.
//
// The service is not entirely consistent about this field: it can be missing,
// null, or (rarely) a quoted number. All of those decode to zero instead of
// failing the whole document.
type Ticks int64

// UnmarshalJSON accepts numbers and numeric strings; anything else yields 0.
func (t *Ticks) UnmarshalJSON(data []byte) error {
	*t = 0

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			*t = Ticks(v)
			return nil
		}
		if f, err := n.Float64(); err == nil {
			*t = Ticks(f)
			return nil
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			*t = Ticks(v)
		}
	}
	return nil
}

// TranscriptionResult is the document produced by the batch transcription
// service once a job has succeeded. Fields the renderer does not consume are
// left out; unknown fields in the payload are ignored.
type TranscriptionResult struct {
	Source            string             `json:"source,omitempty"`
	DurationInTicks   Ticks              `json:"durationInTicks,omitempty"`
	Summary           string             `json:"summary,omitempty"`
	RecognizedPhrases []RecognizedPhrase `json:"recognizedPhrases"`
}

// RecognizedPhrase is one speaker turn as segmented by the service.
// Speaker defaults to 0 when the service omits it.
type RecognizedPhrase struct {
	Speaker    int         `json:"speaker"`
	NBest      []Candidate `json:"nBest"`
	KeyPhrases []string    `json:"keyPhrases,omitempty"`
}

// Candidate is one recognition hypothesis for a phrase. Index 0 of NBest is
// the top-ranked hypothesis and the only one the renderer uses.
type Candidate struct {
	Confidence    float64 `json:"confidence,omitempty"`
	Lexical       string  `json:"lexical,omitempty"`
	Display       string  `json:"display"`
	OffsetInTicks Ticks   `json:"offsetInTicks"`
}
