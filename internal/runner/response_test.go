package runner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-runner/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestNormalize_SuccessfulRun(t *testing.T) {
	resp := Normalize(&entity.History{FinalResult: strPtr("42"), Steps: 3})

	assert.True(t, resp.Success)
	assert.Equal(t, "42", resp.FinalResult)
	assert.Nil(t, resp.Errors)
	assert.Nil(t, resp.Error)
}

func TestNormalize_ResultWithErrors(t *testing.T) {
	resp := Normalize(&entity.History{
		FinalResult: strPtr("partial answer"),
		Errors:      []string{"element not found: #login", "click failed"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, "partial answer", resp.FinalResult)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "element not found: #login; click failed", *resp.Error)
}

func TestNormalize_EmptyElementsFiltered(t *testing.T) {
	resp := Normalize(&entity.History{
		FinalResult: strPtr("ok"),
		Errors:      []string{"", "real error", ""},
	})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "real error", *resp.Error)
	// The raw collection passes through to the errors field unfiltered.
	assert.Equal(t, []string{"", "real error", ""}, resp.Errors)
}

func TestNormalize_OnlyEmptyElementsIsClean(t *testing.T) {
	resp := Normalize(&entity.History{
		FinalResult: strPtr("answer"),
		Errors:      []string{"", ""},
	})

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestNormalize_NoResultNoErrors(t *testing.T) {
	resp := Normalize(&entity.History{Steps: 25})

	assert.False(t, resp.Success)
	assert.Nil(t, resp.FinalResult)
	require.NotNil(t, resp.Error)
	assert.Equal(t, NoResultDiagnostic, *resp.Error)
}

func TestNormalize_NoResultWithErrors(t *testing.T) {
	resp := Normalize(&entity.History{Errors: []string{"navigation failed"}})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "navigation failed", *resp.Error)
}

func TestResponse_JSONShape(t *testing.T) {
	// final_result, errors and error must be present (null) even when
	// absent, matching the fixed schema callers parse.
	data, err := json.Marshal(Normalize(&entity.History{}))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Contains(t, doc, "final_result")
	assert.Contains(t, doc, "errors")
	assert.Contains(t, doc, "error")
	assert.Nil(t, doc["final_result"])
	assert.Nil(t, doc["errors"])
	assert.NotContains(t, doc, "screenshot_path")
	assert.NotContains(t, doc, "screenshot_error")
}

func TestFailureResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(FailureResponse{Success: false, Error: "missing 'task'"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"missing 'task'"}`, string(data))
}
