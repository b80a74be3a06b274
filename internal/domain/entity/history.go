package entity

// History is the completion record of one agent run. FinalResult is nil when
// the run ended without the model producing an answer (for example when the
// step bound was exhausted). Errors collects per-step failures in order; a
// run can carry both a final result and errors.
type History struct {
	FinalResult *string
	Errors      []string
	Steps       int
}

// Final returns the final result and whether one was produced.
func (h *History) Final() (string, bool) {
	if h == nil || h.FinalResult == nil {
		return "", false
	}
	return *h.FinalResult, true
}
