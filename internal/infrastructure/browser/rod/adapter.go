package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"browser-runner/internal/application/port/output"
	"browser-runner/internal/domain/entity"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

type BrowserConfig struct {
	Headless bool
	// DownloadDir receives files the page downloads; created if absent.
	DownloadDir string
	// ExecutablePath points at a custom Chrome binary; empty uses the
	// launcher's own resolution.
	ExecutablePath string
	// UserDataDir selects a persistent profile directory; empty launches
	// with a throwaway profile.
	UserDataDir string
	SlowMotion  time.Duration
	Timeout     time.Duration
	NoSandbox   bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   true,
		SlowMotion: 500 * time.Millisecond,
		Timeout:    10 * time.Second,
		NoSandbox:  true,
	}
}

// NewBrowserAdapter launches Chrome and connects to it. All trace output is
// directed at stderr; stdout stays clean for the response document.
func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(false).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-web-security").
		Set("allow-running-insecure-content").
		Set("disable-setuid-sandbox")

	if cfg.ExecutablePath != "" {
		l = l.Bin(cfg.ExecutablePath)
	}
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		Trace(true).
		Logger(log.New(os.Stderr, "[rod] ", log.LstdFlags)).
		SlowMotion(cfg.SlowMotion)

	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	if cfg.DownloadDir != "" {
		if err := os.MkdirAll(cfg.DownloadDir, 0755); err != nil {
			_ = browser.Close()
			l.Kill()
			l.Cleanup()
			return nil, fmt.Errorf("failed to create download dir: %w", err)
		}
		_ = proto.BrowserSetDownloadBehavior{
			Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
			DownloadPath: cfg.DownloadDir,
		}.Call(browser)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := b.page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	b.page.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) Click(ctx context.Context, selector string) error {
	var el *rod.Element
	var err error

	if strings.HasPrefix(selector, "/") || strings.Contains(selector, "xpath") {
		el, err = b.page.Timeout(b.timeout).ElementX(selector)
	} else {
		el, err = b.page.Timeout(b.timeout).Element(selector)
	}
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	b.page.WaitIdle(2 * time.Second)
	return nil
}

func (b *BrowserAdapter) Fill(ctx context.Context, selector, text string) error {
	el, err := b.page.Timeout(b.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("field not found: %s: %w", selector, err)
	}

	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}

	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}

	return nil
}

func (b *BrowserAdapter) PressEnter(ctx context.Context) error {
	el, err := b.page.Timeout(b.timeout).Element("body")
	if err != nil {
		return fmt.Errorf("body not found: %w", err)
	}
	if err := el.Input("\r"); err != nil {
		return fmt.Errorf("failed to press Enter: %w", err)
	}
	b.page.WaitIdle(1 * time.Second)
	return nil
}

var scrollScripts = map[string]string{
	"down":   `() => window.scrollBy(0, window.innerHeight * 2)`,
	"up":     `() => window.scrollBy(0, -window.innerHeight * 2)`,
	"top":    `() => window.scrollTo(0, 0)`,
	"bottom": `() => window.scrollTo(0, document.body.scrollHeight)`,
}

func (b *BrowserAdapter) Scroll(ctx context.Context, direction string) error {
	script, ok := scrollScripts[strings.ToLower(strings.TrimSpace(direction))]
	if !ok {
		return fmt.Errorf("unknown scroll direction: %s", direction)
	}
	if _, err := b.page.Eval(script); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	b.page.WaitIdle(800 * time.Millisecond)
	return nil
}

func (b *BrowserAdapter) GetPageContent(ctx context.Context) (*entity.PageContent, error) {
	info, err := b.page.Info()
	if err != nil {
		return nil, fmt.Errorf("page info failed: %w", err)
	}

	body, err := b.page.Timeout(b.timeout).Element("body")
	if err != nil {
		return nil, fmt.Errorf("body not found: %w", err)
	}

	html, err := body.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}

	elements, err := b.GetUIElements(ctx)
	if err != nil {
		elements = nil
	}

	return &entity.PageContent{
		URL:        info.URL,
		Title:      info.Title,
		HTML:       CleanHTML(html, nil),
		UIElements: elements,
	}, nil
}

func (b *BrowserAdapter) GetUIElements(ctx context.Context) ([]entity.UIElement, error) {
	var result []entity.UIElement
	seen := make(map[string]bool)
	counter := 0
	maxElements := 500

	add := func(el *rod.Element, typ string) {
		if el == nil || counter >= maxElements {
			return
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			return
		}

		sel, err := el.ElementX("@")
		if err != nil {
			return
		}
		selector := sel.String()
		if seen[selector] {
			return
		}
		seen[selector] = true

		text, _ := el.Text()
		text = strings.TrimSpace(text)
		aria, _ := el.Attribute("aria-label")
		role, _ := el.Attribute("role")

		result = append(result, entity.UIElement{
			ID:        fmt.Sprintf("ui-%04d", counter),
			Type:      typ,
			Text:      text,
			AriaLabel: ptrToString(aria),
			Role:      ptrToString(role),
			Visible:   true,
			Selector:  selector,
		})
		counter++
	}

	scans := []struct {
		selector string
		typ      string
	}{
		{"button, [role='button'], [data-tooltip], [aria-label]:not([aria-label=''])", "button"},
		{"input, textarea", "input"},
		{"a", "link"},
	}
	for _, scan := range scans {
		elements, err := b.page.Elements(scan.selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			add(el, scan.typ)
		}
	}

	return result, nil
}

// Screenshot captures the viewport for the vision pipeline: JPEG, downscaled
// to at most 1024px wide to keep token cost bounded.
func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	imgBytes, err := b.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > 1024 {
		img = imaging.Resize(img, 1024, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// ScreenshotToFile writes a PNG capture to path, creating parent directories
// as needed. Used for the caller-requested last.png capture.
func (b *BrowserAdapter) ScreenshotToFile(ctx context.Context, path string, fullPage bool) error {
	data, err := b.page.Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close tears the session down: disconnect, then kill the Chrome process and
// remove its temp data. Errors are deliberately swallowed; teardown must
// never override an already-computed run result.
func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func ptrToString(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
