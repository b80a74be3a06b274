package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"browser-runner/internal/application/port/output"
	"browser-runner/internal/domain/entity"
)

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

type NavigateTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewNavigateTool(browser output.BrowserPort, logger output.LoggerPort) *NavigateTool {
	return &NavigateTool{browser: browser, logger: logger}
}

func (t *NavigateTool) Name() entity.ToolName { return entity.ToolNavigate }
func (t *NavigateTool) Description() string   { return "Navigates browser to URL" }
func (t *NavigateTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"url": map[string]interface{}{
			"type":        "string",
			"description": "URL to navigate to",
		},
	}, "url")
}

func (t *NavigateTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", err
	}
	if err := t.browser.Navigate(ctx, input.URL); err != nil {
		return "", err
	}
	return fmt.Sprintf("Navigated to %s", t.browser.CurrentURL()), nil
}

type ClickTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewClickTool(browser output.BrowserPort, logger output.LoggerPort) *ClickTool {
	return &ClickTool{browser: browser, logger: logger}
}

func (t *ClickTool) Name() entity.ToolName { return entity.ToolClick }
func (t *ClickTool) Description() string   { return "Clicks element by selector" }
func (t *ClickTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"selector": map[string]interface{}{
			"type":        "string",
			"description": "CSS or XPath selector",
		},
	}, "selector")
}

func (t *ClickTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", err
	}
	if err := t.browser.Click(ctx, input.Selector); err != nil {
		return "", err
	}
	return "Click successful", nil
}

type FillTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewFillTool(browser output.BrowserPort, logger output.LoggerPort) *FillTool {
	return &FillTool{browser: browser, logger: logger}
}

func (t *FillTool) Name() entity.ToolName { return entity.ToolFill }
func (t *FillTool) Description() string   { return "Fills input field with text" }
func (t *FillTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"selector": map[string]interface{}{
			"type":        "string",
			"description": "CSS selector for input",
		},
		"text": map[string]interface{}{
			"type":        "string",
			"description": "Text to input",
		},
	}, "selector", "text")
}

func (t *FillTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", err
	}
	if err := t.browser.Fill(ctx, input.Selector, input.Text); err != nil {
		return "", err
	}
	return fmt.Sprintf("Filled '%s' with text", input.Selector), nil
}

type PressEnterTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewPressEnterTool(browser output.BrowserPort, logger output.LoggerPort) *PressEnterTool {
	return &PressEnterTool{browser: browser, logger: logger}
}

func (t *PressEnterTool) Name() entity.ToolName { return entity.ToolPressEnter }
func (t *PressEnterTool) Description() string   { return "Presses Enter on the current page" }
func (t *PressEnterTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *PressEnterTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.browser.PressEnter(ctx); err != nil {
		return "", err
	}
	return "Pressed Enter", nil
}

type ScrollTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewScrollTool(browser output.BrowserPort, logger output.LoggerPort) *ScrollTool {
	return &ScrollTool{browser: browser, logger: logger}
}

func (t *ScrollTool) Name() entity.ToolName { return entity.ToolScroll }
func (t *ScrollTool) Description() string   { return "Scrolls page in direction" }
func (t *ScrollTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"direction": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"up", "down", "top", "bottom"},
			"description": "Scroll direction",
		},
	}, "direction")
}

func (t *ScrollTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", err
	}
	if err := t.browser.Scroll(ctx, input.Direction); err != nil {
		return "", err
	}
	return fmt.Sprintf("Scrolled %s", input.Direction), nil
}

type ExtractTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewExtractTool(browser output.BrowserPort, logger output.LoggerPort) *ExtractTool {
	return &ExtractTool{browser: browser, logger: logger}
}

func (t *ExtractTool) Name() entity.ToolName { return entity.ToolExtract }
func (t *ExtractTool) Description() string {
	return "Extracts cleaned HTML of the current page"
}
func (t *ExtractTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *ExtractTool) Execute(ctx context.Context, args string) (string, error) {
	content, err := t.browser.GetPageContent(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("URL: %s\nTitle: %s\n\n%s", content.URL, content.Title, content.HTML), nil
}

type UISummaryTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewUISummaryTool(browser output.BrowserPort, logger output.LoggerPort) *UISummaryTool {
	return &UISummaryTool{browser: browser, logger: logger}
}

func (t *UISummaryTool) Name() entity.ToolName { return entity.ToolUISummary }
func (t *UISummaryTool) Description() string {
	return "Lists visible interactive elements (buttons, inputs, links) with selectors"
}
func (t *UISummaryTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *UISummaryTool) Execute(ctx context.Context, args string) (string, error) {
	elements, err := t.browser.GetUIElements(ctx)
	if err != nil {
		return "", err
	}
	if len(elements) == 0 {
		return "No interactive elements found", nil
	}

	var sb strings.Builder
	for _, el := range elements {
		sb.WriteString(fmt.Sprintf("[%s] %s", el.ID, el.Type))
		if el.Text != "" {
			sb.WriteString(fmt.Sprintf(" %q", el.Text))
		}
		if el.AriaLabel != "" {
			sb.WriteString(fmt.Sprintf(" aria=%q", el.AriaLabel))
		}
		sb.WriteString(fmt.Sprintf(" selector=%s\n", el.Selector))
	}
	return sb.String(), nil
}

// Register wires the full browser tool set into a registry.
func Register(registry output.ToolRegistry, browser output.BrowserPort, logger output.LoggerPort) {
	registry.Register(NewNavigateTool(browser, logger))
	registry.Register(NewClickTool(browser, logger))
	registry.Register(NewFillTool(browser, logger))
	registry.Register(NewPressEnterTool(browser, logger))
	registry.Register(NewScrollTool(browser, logger))
	registry.Register(NewExtractTool(browser, logger))
	registry.Register(NewUISummaryTool(browser, logger))
}
