// Package corrector is the client for the Vietnamese text-correction API.
// It owns the wire types, the HTTP calls, and the in-memory session state
// that the TUI reads back for explanation lookup.
package corrector

import (
	"fmt"
	"strings"
)

// Model identifiers accepted by the correction endpoint. Unknown identifiers
// are passed through verbatim; the server falls back to its default.
const (
	ModelBartPho = "bartpho"
	ModelQwen    = "qwen"
	ModelVistral = "vistral"

	DefaultModel = ModelBartPho
)

// modelDisplayNames maps model identifiers to human-readable names for
// logs and the status line.
var modelDisplayNames = map[string]string{
	ModelBartPho: "BartPho",
	ModelQwen:    "Qwen 2.5",
	ModelVistral: "Vistral 7B",
}

// Models returns the fixed set of known model identifiers in selector order.
func Models() []string {
	return []string{ModelBartPho, ModelQwen, ModelVistral}
}

// ModelDisplayName returns the display name for a model identifier, or the
// identifier itself when it is not one of the known models.
func ModelDisplayName(id string) string {
	if name, ok := modelDisplayNames[id]; ok {
		return name
	}
	return id
}

// Result is the server's verdict for one paragraph.
type Result struct {
	Index       int    `json:"index"`
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	ModelResult string `json:"model_result,omitempty"`
	HasChanges  bool   `json:"has_changes"`
	Explanation string `json:"explanation,omitempty"`
	Note        string `json:"note,omitempty"`
}

// CorrectResponse is the body of a /api/correct-paragraphs response.
type CorrectResponse struct {
	Success         bool     `json:"success"`
	ModelUsed       string   `json:"model_used"`
	TotalParagraphs int      `json:"total_paragraphs"`
	Results         []Result `json:"results"`
	FullCorrected   string   `json:"full_corrected"`
	Error           string   `json:"error,omitempty"`
}

// Validate checks the shape of a success response. The explanation lookup is
// keyed by array position, so a response whose index fields disagree with
// their positions would silently wire rows to the wrong rationale; reject it
// up front instead.
func (r *CorrectResponse) Validate() error {
	if !r.Success {
		return fmt.Errorf("response not successful")
	}
	for i, res := range r.Results {
		if res.Index != i {
			return fmt.Errorf("result %d carries index %d", i, res.Index)
		}
	}
	return nil
}

// Changed returns the subset of results with corrections, in original order.
func (r *CorrectResponse) Changed() []Result {
	var changed []Result
	for _, res := range r.Results {
		if res.HasChanges {
			changed = append(changed, res)
		}
	}
	return changed
}

// UploadResult is the body of a /api/upload-docx response.
type UploadResult struct {
	Success        bool   `json:"success"`
	Text           string `json:"text"`
	Filename       string `json:"filename"`
	ParagraphCount int    `json:"paragraph_count"`
	Error          string `json:"error,omitempty"`
}

// Health is the body of a /api/health response.
type Health struct {
	Status          string   `json:"status"`
	Message         string   `json:"message,omitempty"`
	AvailableModels []string `json:"available_models,omitempty"`
	DefaultModel    string   `json:"default_model,omitempty"`
}

// OK reports whether the API considers itself healthy.
func (h Health) OK() bool {
	return h.Status == "ok"
}

// CountParagraphs returns the number of non-blank newline-delimited units in
// text, matching how the server splits input.
func CountParagraphs(text string) int {
	count := 0
	for _, p := range strings.Split(text, "\n") {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
