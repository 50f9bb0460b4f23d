// transcript-render turns a saved transcription result document into a
// markdown timeline on stdout. Useful for inspecting service output without
// running the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/audrbs1579/STT-site/internal/transcript"
	"github.com/audrbs1579/STT-site/models"
)

func main() {
	input := flag.String("input", "", "path to a transcription result JSON file")
	flag.Parse()

	in := *input
	if in == "" && flag.NArg() > 0 {
		in = flag.Arg(0)
	}
	if in == "" {
		log.Fatal("usage: transcript-render [-input path] <result.json>")
	}

	data, err := os.ReadFile(in)
	if err != nil {
		log.Fatal(err)
	}

	var result models.TranscriptionResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Fatalf("decode %s: %v", in, err)
	}

	fmt.Print(transcript.Markdown(transcript.Render(&result)))
}
