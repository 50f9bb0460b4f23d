package transcript

import (
	"fmt"
	"strings"
)

// Markdown renders the result as a markdown timeline, with highlighted spans
// in bold. Used by the offline renderer CLI; the web UI consumes the JSON
// form instead.
func Markdown(r RenderResult) string {
	var b strings.Builder

	if r.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", r.Summary)
	}
	if r.IsEmpty {
		b.WriteString(MessageNoSpeech)
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("## Transcript\n\n")
	for _, t := range r.Turns {
		fmt.Fprintf(&b, "[%s] %s: ", t.StartTimeLabel, SpeakerLabel(t.SpeakerID))
		for _, s := range t.Spans {
			if s.Highlighted {
				b.WriteString("**")
				b.WriteString(s.Text)
				b.WriteString("**")
			} else {
				b.WriteString(s.Text)
			}
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
