package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

type Message struct {
	Role       MessageRole
	Content    string
	Images     []ImageAttachment
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ImageAttachment is an inline image sent to the model alongside text,
// used by the vision pipeline.
type ImageAttachment struct {
	MIME string
	Data []byte
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}
