package output

import (
	"context"

	"browser-runner/internal/domain/entity"
)

type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, text string) error
	PressEnter(ctx context.Context) error
	Scroll(ctx context.Context, direction string) error

	GetPageContent(ctx context.Context) (*entity.PageContent, error)
	GetUIElements(ctx context.Context) ([]entity.UIElement, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	// ScreenshotToFile writes a PNG capture of the page to path. When
	// fullPage is set the capture covers the whole scroll height instead
	// of the viewport.
	ScreenshotToFile(ctx context.Context, path string, fullPage bool) error

	CurrentURL() string
	Close()
}
