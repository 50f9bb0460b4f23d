package transcript

import "fmt"

// speakerPalette is the fixed set of colors cycled through per speaker id.
var speakerPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

// SpeakerColor maps a speaker id onto the fixed palette. The mapping is
// deterministic and total over all ids; ids beyond the palette size wrap
// around.
func SpeakerColor(speakerID int) string {
	if speakerID < 0 {
		speakerID = -speakerID
	}
	return speakerPalette[speakerID%len(speakerPalette)]
}

// SpeakerLabel returns the display label for a speaker id.
func SpeakerLabel(speakerID int) string {
	return fmt.Sprintf("Speaker %d", speakerID)
}
