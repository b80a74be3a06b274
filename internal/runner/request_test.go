package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-runner/internal/infrastructure/env"
)

func TestReadRequest_FromStdin(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(`{"task":"find the docs","max_steps":5}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "find the docs", req.Task)
	assert.Equal(t, 5, req.MaxSteps)
}

func TestReadRequest_ArgFallback(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(""), []string{`{"task":"from argv"}`})
	require.NoError(t, err)
	assert.Equal(t, "from argv", req.Task)
}

func TestReadRequest_StdinWinsOverArg(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(`{"task":"from stdin"}`), []string{`{"task":"from argv"}`})
	require.NoError(t, err)
	assert.Equal(t, "from stdin", req.Task)
}

func TestReadRequest_BothEmpty(t *testing.T) {
	req, err := ReadRequest(strings.NewReader("  \n "), nil)
	require.NoError(t, err)
	assert.Equal(t, "", req.Task)
}

func TestReadRequest_MalformedJSON(t *testing.T) {
	_, err := ReadRequest(strings.NewReader(`{"task": `), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestReadRequest_InvalidUTF8Repaired(t *testing.T) {
	// 0xFF can never appear in valid UTF-8; the reader must repair it
	// rather than fail. The repaired byte lands inside a JSON string, so
	// parsing still succeeds.
	input := []byte(`{"task":"caf` + "\xff" + `"}`)

	req, err := ReadRequest(strings.NewReader(string(input)), nil)
	require.NoError(t, err)
	assert.Equal(t, "caf�", req.Task)
}

func TestDecodeReplacing_PerByte(t *testing.T) {
	// Two invalid bytes become two replacement runes.
	got := decodeReplacing([]byte("a\xff\xfeb"))
	assert.Equal(t, "a��b", got)

	// Valid multi-byte sequences pass through untouched.
	got = decodeReplacing([]byte("héllo"))
	assert.Equal(t, "héllo", got)
}

func TestApplyDefaults_AllOptionalOmitted(t *testing.T) {
	req := &Request{Task: "do the thing"}
	req.ApplyDefaults(&env.Config{})

	assert.Equal(t, "openai", req.LLMProvider)
	assert.Equal(t, DefaultMaxSteps, req.MaxSteps)
	require.NotNil(t, req.Headless)
	assert.True(t, *req.Headless)
	assert.False(t, req.UseVision)
	assert.Nil(t, req.Temperature)
	assert.Equal(t, DefaultOutputDir(), req.OutputDir)
	require.NoError(t, req.Validate())
}

func TestApplyDefaults_NegativeMaxStepsKept(t *testing.T) {
	req := &Request{Task: "t", MaxSteps: -3}
	req.ApplyDefaults(&env.Config{})

	assert.Equal(t, -3, req.MaxSteps, "only zero/absent maps to the default")
}

func TestApplyDefaults_EnvProvidesProviderAndModel(t *testing.T) {
	req := &Request{Task: "t"}
	req.ApplyDefaults(&env.Config{DefaultProvider: "Anthropic", DefaultModel: "claude-3-7-sonnet"})

	assert.Equal(t, "anthropic", req.LLMProvider)
	assert.Equal(t, "claude-3-7-sonnet", req.LLMModel)
}

func TestApplyDefaults_RequestWinsOverEnv(t *testing.T) {
	req := &Request{Task: "t", LLMProvider: "OpenAI", LLMModel: "gpt-4o-mini"}
	req.ApplyDefaults(&env.Config{DefaultProvider: "anthropic", DefaultModel: "claude"})

	assert.Equal(t, "openai", req.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", req.LLMModel)
}

func TestApplyDefaults_HeadlessFalsePreserved(t *testing.T) {
	headless := false
	req := &Request{Task: "t", Headless: &headless}
	req.ApplyDefaults(&env.Config{})

	require.NotNil(t, req.Headless)
	assert.False(t, *req.Headless)
}

func TestValidate_MissingTask(t *testing.T) {
	for _, task := range []string{"", "   ", "\n\t"} {
		req := &Request{Task: task}
		assert.ErrorIs(t, req.Validate(), ErrMissingTask, "task %q", task)
	}
}
