package transcript

import (
	"encoding/json"
	"testing"

	"github.com/audrbs1579/STT-site/models"
)

func mustDecode(t *testing.T, doc string) *models.TranscriptionResult {
	t.Helper()
	var result models.TranscriptionResult
	if err := json.Unmarshal([]byte(doc), &result); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &result
}

func TestRenderEndToEnd(t *testing.T) {
	result := mustDecode(t, `{
		"summary": "Meeting recap.",
		"recognizedPhrases": [
			{
				"speaker": 1,
				"nBest": [{"display": "Let's start the project", "offsetInTicks": 25000000}],
				"keyPhrases": ["project"]
			}
		]
	}`)

	rendered := Render(result)

	if rendered.Summary != "Meeting recap." {
		t.Errorf("summary = %q", rendered.Summary)
	}
	if rendered.IsEmpty {
		t.Error("IsEmpty = true, want false")
	}
	if len(rendered.Turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(rendered.Turns))
	}
	turn := rendered.Turns[0]
	if turn.SpeakerID != 1 {
		t.Errorf("speaker = %d, want 1", turn.SpeakerID)
	}
	if turn.StartTimeLabel != "00:02" {
		t.Errorf("start time = %q, want %q", turn.StartTimeLabel, "00:02")
	}
	if want := "Let's start the <mark>project</mark>"; turn.HighlightedHTML != want {
		t.Errorf("html = %q, want %q", turn.HighlightedHTML, want)
	}
}

func TestRenderPreservesInputOrder(t *testing.T) {
	result := mustDecode(t, `{
		"recognizedPhrases": [
			{"speaker": 2, "nBest": [{"display": "second speaker first", "offsetInTicks": 900000000}]},
			{"speaker": 0, "nBest": [{"display": "earlier in time", "offsetInTicks": 100000000}]},
			{"speaker": 2, "nBest": [{"display": "second speaker again", "offsetInTicks": 1200000000}]}
		]
	}`)

	rendered := Render(result)

	if len(rendered.Turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(rendered.Turns))
	}
	wantSpeakers := []int{2, 0, 2}
	wantTimes := []string{"01:30", "00:10", "02:00"}
	for i, turn := range rendered.Turns {
		if turn.SpeakerID != wantSpeakers[i] {
			t.Errorf("turn %d speaker = %d, want %d", i, turn.SpeakerID, wantSpeakers[i])
		}
		if turn.StartTimeLabel != wantTimes[i] {
			t.Errorf("turn %d time = %q, want %q", i, turn.StartTimeLabel, wantTimes[i])
		}
	}
}

func TestRenderDropsPhrasesWithoutTopCandidate(t *testing.T) {
	result := mustDecode(t, `{
		"recognizedPhrases": [
			{"speaker": 0, "nBest": [{"display": "kept one"}]},
			{"speaker": 1, "nBest": []},
			{"speaker": 2},
			{"speaker": 3, "nBest": [{"display": "kept two"}]}
		]
	}`)

	rendered := Render(result)

	if rendered.IsEmpty {
		t.Error("IsEmpty = true, want false")
	}
	if len(rendered.Turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(rendered.Turns))
	}
	if rendered.Turns[0].SpeakerID != 0 || rendered.Turns[1].SpeakerID != 3 {
		t.Errorf("surviving speakers = %d, %d; want 0, 3",
			rendered.Turns[0].SpeakerID, rendered.Turns[1].SpeakerID)
	}
}

func TestRenderEmptyClassification(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no phrases", `{"recognizedPhrases": []}`},
		{"phrases field absent", `{}`},
		{"all phrases dropped", `{"recognizedPhrases": [{"nBest": []}, {}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := Render(mustDecode(t, tt.doc))
			if !rendered.IsEmpty {
				t.Error("IsEmpty = false, want true")
			}
			if len(rendered.Turns) != 0 {
				t.Errorf("got %d turns, want 0", len(rendered.Turns))
			}
		})
	}
}

func TestRenderNilResult(t *testing.T) {
	rendered := Render(nil)
	if !rendered.IsEmpty {
		t.Error("IsEmpty = false, want true")
	}
}

func TestRenderSummaryPassthrough(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"present", `{"summary": "x", "recognizedPhrases": []}`, "x"},
		{"empty", `{"summary": "", "recognizedPhrases": []}`, ""},
		{"absent", `{"recognizedPhrases": []}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(mustDecode(t, tt.doc)).Summary; got != tt.want {
				t.Errorf("summary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderMissingOffsetDefaultsToZero(t *testing.T) {
	result := mustDecode(t, `{"recognizedPhrases": [{"nBest": [{"display": "no offset"}]}]}`)
	rendered := Render(result)
	if len(rendered.Turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(rendered.Turns))
	}
	if rendered.Turns[0].StartTimeLabel != "00:00" {
		t.Errorf("time = %q, want 00:00", rendered.Turns[0].StartTimeLabel)
	}
}

func TestSpeakerPaletteIsTotal(t *testing.T) {
	seen := map[string]struct{}{}
	for id := 0; id < 64; id++ {
		color := SpeakerColor(id)
		if color == "" {
			t.Fatalf("no color for speaker %d", id)
		}
		seen[color] = struct{}{}
		if color != SpeakerColor(id) {
			t.Errorf("color for speaker %d not deterministic", id)
		}
	}
	if len(seen) != len(speakerPalette) {
		t.Errorf("cycled through %d colors, want %d", len(seen), len(speakerPalette))
	}
	if got := SpeakerLabel(3); got != "Speaker 3" {
		t.Errorf("label = %q", got)
	}
}

func TestMarkdownRendering(t *testing.T) {
	result := mustDecode(t, `{
		"summary": "Recap.",
		"recognizedPhrases": [
			{"speaker": 1, "nBest": [{"display": "ship the release", "offsetInTicks": 10000000}], "keyPhrases": ["release"]}
		]
	}`)

	got := Markdown(Render(result))
	want := "## Summary\n\nRecap.\n\n## Transcript\n\n[00:01] Speaker 1: ship the **release**\n\n"
	if got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	got := Markdown(Render(mustDecode(t, `{}`)))
	if got != MessageNoSpeech+"\n" {
		t.Errorf("markdown = %q", got)
	}
}
