package runner

import (
	"strings"

	"browser-runner/internal/domain/entity"
)

// NoResultDiagnostic is reported when the run produced neither a final
// result nor any explicit error. Silently returning nothing is itself a
// reportable condition.
const NoResultDiagnostic = "No final_result returned by agent."

// Response is the fixed output schema. FinalResult and Errors are null in
// the JSON when absent, never omitted.
type Response struct {
	Success         bool    `json:"success"`
	FinalResult     any     `json:"final_result"`
	Errors          any     `json:"errors"`
	Error           *string `json:"error"`
	ScreenshotPath  string  `json:"screenshot_path,omitempty"`
	ScreenshotError string  `json:"screenshot_error,omitempty"`
}

// FailureResponse is the minimal document written when the pipeline itself
// failed before a run result existed.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Normalize collapses an agent run record into the fixed response schema.
// The run succeeded only when it produced a final result and no step error
// survived filtering.
func Normalize(history *entity.History) *Response {
	final, hasFinal := history.Final()

	// Drop empty sentinels before judging the run; the raw value still
	// passes through to the errors field untouched.
	var nonEmpty []string
	for _, e := range history.Errors {
		if e == "" {
			continue
		}
		nonEmpty = append(nonEmpty, e)
	}
	hasErrors := len(nonEmpty) > 0

	var summary *string
	if hasErrors {
		s := strings.Join(nonEmpty, "; ")
		summary = &s
	}
	if summary == nil && !hasFinal {
		s := NoResultDiagnostic
		summary = &s
	}

	resp := &Response{
		Success: !hasErrors && hasFinal,
		Error:   summary,
	}
	if hasFinal {
		resp.FinalResult = final
	}
	if history.Errors != nil {
		resp.Errors = history.Errors
	}
	return resp
}
