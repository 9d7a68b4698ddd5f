package models

// TranscriptResult is the normalized outcome of a caption extraction.
// An empty Transcript means extraction failed; an empty Language stands
// for "no language" and is only paired with a failed extraction.
type TranscriptResult struct {
	Transcript string `json:"transcript"`
	Language   string `json:"language,omitempty"`
	Strategy   string `json:"-"`
	Segments   int    `json:"-"`
}

// Found reports whether a usable transcript was extracted
func (r TranscriptResult) Found() bool {
	return r.Transcript != ""
}

// LanguageAuto marks a transcript whose language the upstream did not state
const LanguageAuto = "auto"

// TranscriptMethodCaptions is the only extraction method the service offers
const TranscriptMethodCaptions = "captions"

// TranscriptRequest is the body accepted by the transcript and video-info endpoints
type TranscriptRequest struct {
	URL string `json:"url"`
}

// TranscriptResponse is returned by the transcript endpoint on success
type TranscriptResponse struct {
	Transcript string    `json:"transcript"`
	Lang       string    `json:"lang"`
	VideoInfo  VideoInfo `json:"video_info"`
	Method     string    `json:"method"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
