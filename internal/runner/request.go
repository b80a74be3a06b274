package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"browser-runner/internal/infrastructure/env"
)

const DefaultMaxSteps = 25

// Request is the single JSON task description the process accepts.
type Request struct {
	Task               string   `json:"task"`
	LLMProvider        string   `json:"llm_provider"`
	LLMModel           string   `json:"llm_model"`
	Temperature        *float64 `json:"temperature"`
	BaseURL            string   `json:"base_url"`
	MaxSteps           int      `json:"max_steps"`
	Headless           *bool    `json:"headless"`
	UseVision          bool     `json:"use_vision"`
	Screenshot         bool     `json:"screenshot"`
	ScreenshotFullPage bool     `json:"screenshot_full_page"`
	ExecutablePath     string   `json:"executable_path"`
	UserDataDir        string   `json:"user_data_dir"`
	OutputDir          string   `json:"output_dir"`
}

// DefaultOutputDir is where downloads and screenshots land when the request
// does not say otherwise.
func DefaultOutputDir() string {
	return filepath.Join("data", "browser_use")
}

// ReadRequest reads the JSON request from stdin, falling back to the first
// argument, falling back to an empty request. Read failures are treated as
// empty input; encoding problems are repaired, not fatal.
func ReadRequest(stdin io.Reader, args []string) (*Request, error) {
	var data string
	if raw, err := io.ReadAll(stdin); err == nil {
		data = decodeReplacing(raw)
	}

	data = strings.TrimSpace(data)
	if data == "" && len(args) > 0 {
		data = strings.TrimSpace(decodeReplacing([]byte(args[0])))
	}
	if data == "" {
		data = "{}"
	}

	var req Request
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return &req, nil
}

// decodeReplacing maps every invalid UTF-8 byte to U+FFFD instead of failing
// the read. Foreign console encodings otherwise produce byte sequences that
// would break JSON handling downstream.
func decodeReplacing(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(raw[:size])
		}
		raw = raw[size:]
	}
	return sb.String()
}

// ApplyDefaults resolves every optional field against the documented
// defaults and the process environment. Idempotent.
func (r *Request) ApplyDefaults(cfg *env.Config) {
	r.Task = strings.TrimSpace(r.Task)

	r.LLMProvider = strings.ToLower(strings.TrimSpace(r.LLMProvider))
	if r.LLMProvider == "" && cfg != nil {
		r.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.DefaultProvider))
	}
	if r.LLMProvider == "" {
		r.LLMProvider = "openai"
	}

	r.LLMModel = strings.TrimSpace(r.LLMModel)
	if r.LLMModel == "" && cfg != nil {
		r.LLMModel = strings.TrimSpace(cfg.DefaultModel)
	}

	r.BaseURL = strings.TrimSpace(r.BaseURL)
	r.ExecutablePath = strings.TrimSpace(r.ExecutablePath)
	r.UserDataDir = strings.TrimSpace(r.UserDataDir)

	// Only the absent/zero case gets the default; a negative value is kept
	// and exhausts the step bound immediately.
	if r.MaxSteps == 0 {
		r.MaxSteps = DefaultMaxSteps
	}
	if r.Headless == nil {
		headless := true
		r.Headless = &headless
	}
	if r.OutputDir == "" {
		r.OutputDir = DefaultOutputDir()
	}
}

// Validate checks the one required field.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Task) == "" {
		return ErrMissingTask
	}
	return nil
}
