package prompts

import (
	"bytes"
	_ "embed"
	"text/template"

	"browser-runner/internal/domain/entity"
)

//go:embed system.txt
var systemTemplate string

type systemPromptData struct {
	Tools []entity.ToolDefinition
}

// SystemPrompt renders the agent system prompt with the registered tool set.
// A template failure falls back to the raw template text; a degraded prompt
// beats no prompt.
func SystemPrompt(tools []entity.ToolDefinition) string {
	tmpl, err := template.New("system").Parse(systemTemplate)
	if err != nil {
		return systemTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, systemPromptData{Tools: tools}); err != nil {
		return systemTemplate
	}
	return buf.String()
}
