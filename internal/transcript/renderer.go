// Package transcript turns a raw transcription document into a display-ready
// timeline: ordered speaker turns with MM:SS offsets and key phrases wrapped
// in emphasis markers, plus the overall summary. Everything here is a pure
// function over in-memory data and safe for concurrent use.
package transcript

import (
	"github.com/audrbs1579/STT-site/models"
)

// MessageNoSpeech is shown when a transcription finished without any
// renderable turns. It is a neutral indicator, not an error.
const MessageNoSpeech = "No speech was recognized in this recording."

// RenderedTurn is one display-ready speaker turn.
type RenderedTurn struct {
	SpeakerID       int    `json:"speakerId"`
	StartTimeLabel  string `json:"startTimeLabel"`
	HighlightedHTML string `json:"highlightedHtml"`
	Spans           []Span `json:"spans,omitempty"`
}

// RenderResult is the display-ready form of a transcription document.
type RenderResult struct {
	Summary string         `json:"summary,omitempty"`
	Turns   []RenderedTurn `json:"turns"`
	IsEmpty bool           `json:"isEmpty"`
}

// Render maps a transcription document onto an ordered sequence of rendered
// turns plus the overall summary. Turn order follows the input document; no
// re-sorting by speaker or time. A phrase without a top recognition candidate
// contributes no turn and is skipped silently. A result with zero surviving
// turns is flagged empty rather than treated as an error.
func Render(result *models.TranscriptionResult) RenderResult {
	out := RenderResult{Turns: []RenderedTurn{}}
	if result == nil {
		out.IsEmpty = true
		return out
	}
	out.Summary = result.Summary

	for _, phrase := range result.RecognizedPhrases {
		if len(phrase.NBest) == 0 {
			continue
		}
		top := phrase.NBest[0]
		spans := Highlight(top.Display, phrase.KeyPhrases)
		out.Turns = append(out.Turns, RenderedTurn{
			SpeakerID:       phrase.Speaker,
			StartTimeLabel:  FormatTicks(top.OffsetInTicks),
			HighlightedHTML: JoinSpans(spans),
			Spans:           spans,
		})
	}

	out.IsEmpty = len(out.Turns) == 0
	return out
}
