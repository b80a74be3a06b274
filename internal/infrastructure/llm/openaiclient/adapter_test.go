package openaiclient

import (
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-runner/internal/domain/entity"
)

func TestConvertResponseMessage_WithContent(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "Hello, world!",
	}

	result := convertResponseMessage(msg)

	assert.Equal(t, entity.RoleAssistant, result.Role)
	assert.Equal(t, "Hello, world!", result.Content)
	assert.Empty(t, result.ToolCalls)
}

func TestConvertResponseMessage_WithToolCalls(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role: "assistant",
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call_123",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "navigate",
					Arguments: `{"url":"https://example.com"}`,
				},
			},
		},
	}

	result := convertResponseMessage(msg)

	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_123", result.ToolCalls[0].ID)
	assert.Equal(t, "navigate", result.ToolCalls[0].Name)
	assert.Equal(t, `{"url":"https://example.com"}`, result.ToolCalls[0].Arguments)
}

func TestConvertMessages_ToolResult(t *testing.T) {
	messages := []entity.Message{
		{
			Role:       entity.RoleTool,
			ToolCallID: "call_1",
			Name:       "click",
			Content:    "Click successful",
		},
	}

	result := convertMessages(messages)

	require.Len(t, result, 1)
	assert.Equal(t, "tool", result[0].Role)
	assert.Equal(t, "call_1", result[0].ToolCallID)
	assert.Equal(t, "click", result[0].Name)
	assert.Equal(t, "Click successful", result[0].Content)
}

func TestConvertMessages_AssistantToolCalls(t *testing.T) {
	messages := []entity.Message{
		{
			Role: entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{
				{ID: "call_1", Name: "fill", Arguments: `{"selector":"#q","text":"go"}`},
			},
		},
	}

	result := convertMessages(messages)

	require.Len(t, result, 1)
	require.Len(t, result[0].ToolCalls, 1)
	assert.Equal(t, openai.ToolTypeFunction, result[0].ToolCalls[0].Type)
	assert.Equal(t, "fill", result[0].ToolCalls[0].Function.Name)
}

func TestConvertMessages_ImagesBecomeMultiContent(t *testing.T) {
	messages := []entity.Message{
		{
			Role:    entity.RoleUser,
			Content: "Current page screenshot:",
			Images: []entity.ImageAttachment{
				{MIME: "image/jpeg", Data: []byte{0x01, 0x02}},
			},
		},
	}

	result := convertMessages(messages)

	require.Len(t, result, 1)
	assert.Empty(t, result[0].Content, "Content and MultiContent are mutually exclusive")
	require.Len(t, result[0].MultiContent, 2)
	assert.Equal(t, openai.ChatMessagePartTypeText, result[0].MultiContent[0].Type)
	assert.Equal(t, openai.ChatMessagePartTypeImageURL, result[0].MultiContent[1].Type)
	assert.True(t, strings.HasPrefix(result[0].MultiContent[1].ImageURL.URL, "data:image/jpeg;base64,"))
}

func TestConvertTools(t *testing.T) {
	tools := []entity.ToolDefinition{
		{
			Name:        "scroll",
			Description: "Scrolls page in direction",
			Parameters:  map[string]interface{}{"type": "object"},
		},
	}

	result := convertTools(tools)

	require.Len(t, result, 1)
	assert.Equal(t, openai.ToolTypeFunction, result[0].Type)
	assert.Equal(t, "scroll", result[0].Function.Name)
}

func TestDataURL_DefaultsMIME(t *testing.T) {
	url := dataURL(entity.ImageAttachment{Data: []byte{0x01}})
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
