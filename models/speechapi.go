package models

// CreateTranscriptionRequest is the body submitted to the batch transcription
// API to start a job.
type CreateTranscriptionRequest struct {
	ContentURLs []string                `json:"contentUrls"`
	Locale      string                  `json:"locale"`
	DisplayName string                  `json:"displayName"`
	Properties  TranscriptionProperties `json:"properties"`
}

// TranscriptionProperties selects the optional features of a job.
type TranscriptionProperties struct {
	DiarizationEnabled         bool `json:"diarizationEnabled"`
	WordLevelTimestampsEnabled bool `json:"wordLevelTimestampsEnabled"`
}

// Job statuses reported by the speech service while polling.
const (
	JobStatusNotStarted = "NotStarted"
	JobStatusRunning    = "Running"
	JobStatusSucceeded  = "Succeeded"
	JobStatusFailed     = "Failed"
)

// TranscriptionJob is the job status document returned by the job URL.
type TranscriptionJob struct {
	Self       string                `json:"self"`
	Status     string                `json:"status"`
	Links      TranscriptionLinks    `json:"links"`
	Properties TranscriptionJobProps `json:"properties"`
}

// TranscriptionLinks points at the artifacts of a job.
type TranscriptionLinks struct {
	Files string `json:"files"`
}

// TranscriptionJobProps carries the failure details of a failed job.
type TranscriptionJobProps struct {
	Error *TranscriptionError `json:"error,omitempty"`
}

// TranscriptionError is the service's error envelope.
type TranscriptionError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// TranscriptionFiles lists the output files of a finished job.
type TranscriptionFiles struct {
	Values []TranscriptionFile `json:"values"`
}

// TranscriptionFile is one output artifact; the result document has
// Kind == "Transcription".
type TranscriptionFile struct {
	Name  string                 `json:"name"`
	Kind  string                 `json:"kind"`
	Links TranscriptionFileLinks `json:"links"`
}

// TranscriptionFileLinks holds the pre-signed URL of an artifact.
type TranscriptionFileLinks struct {
	ContentURL string `json:"contentUrl"`
}
