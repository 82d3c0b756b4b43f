package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultScale matches a 2x device pixel ratio.
const DefaultScale = 2

// ChromeCapturer captures the preview in headless Chrome.
type ChromeCapturer struct {
	ExecPath string        // optional Chrome binary; empty uses the default lookup
	Scale    float64       // screenshot scale factor; <= 0 uses DefaultScale
	Timeout  time.Duration // whole capture budget; <= 0 means 60s
	Verbose  bool
}

// NewChromeCapturer creates a capturer with the given Chrome binary and scale.
func NewChromeCapturer(execPath string, scale float64) *ChromeCapturer {
	return &ChromeCapturer{ExecPath: execPath, Scale: scale}
}

// Capture loads html from a temporary file and screenshots the preview element.
func (c *ChromeCapturer) Capture(ctx context.Context, html []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, &ExportError{Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return nil, &ExportError{Message: "failed to write preview", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1280, 1024),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if c.Verbose {
		log.Printf("[EXPORT] Loading preview (%d bytes) in headless browser", len(html))
	}
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitVisible(PreviewSelector, chromedp.ByQuery),
	); err != nil {
		return nil, &ExportError{Message: "browser could not load the preview", Cause: err}
	}

	img, err := captureWithRestore(browserCtx, &chromePage{scale: c.scale()}, SettleDelay)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		log.Printf("[EXPORT] Captured %d byte PNG", len(img))
	}
	return img, nil
}

func (c *ChromeCapturer) scale() float64 {
	if c.Scale <= 0 {
		return DefaultScale
	}
	return c.Scale
}

// chromePage drives a page already loaded in a chromedp context.
type chromePage struct {
	scale float64
	box   previewBox
}

type previewBox struct {
	previewStyle
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const flattenScript = `(() => {
  const el = document.querySelector(%q);
  if (!el) return null;
  const saved = { transform: el.style.transform, boxShadow: el.style.boxShadow };
  el.style.transform = 'scale(1)';
  el.style.boxShadow = 'none';
  const r = el.getBoundingClientRect();
  return { ...saved, x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height };
})()`

const restoreScript = `(() => {
  const el = document.querySelector(%q);
  if (!el) return false;
  const saved = %s;
  el.style.transform = saved.transform;
  el.style.boxShadow = saved.boxShadow;
  return true;
})()`

func (p *chromePage) flatten(ctx context.Context) (previewStyle, error) {
	var box *previewBox
	if err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(flattenScript, PreviewSelector), &box)); err != nil {
		return previewStyle{}, err
	}
	if box == nil {
		return previewStyle{}, fmt.Errorf("element %s not found", PreviewSelector)
	}
	if box.Width <= 0 || box.Height <= 0 {
		return box.previewStyle, fmt.Errorf("element %s has no size", PreviewSelector)
	}
	p.box = *box
	return box.previewStyle, nil
}

func (p *chromePage) screenshot(ctx context.Context) ([]byte, error) {
	var img []byte
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		img, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithCaptureBeyondViewport(true).
			WithClip(&page.Viewport{
				X:      p.box.X,
				Y:      p.box.Y,
				Width:  math.Ceil(p.box.Width),
				Height: math.Ceil(p.box.Height),
				Scale:  p.scale,
			}).
			Do(ctx)
		return err
	}))
	return img, err
}

func (p *chromePage) restore(ctx context.Context, saved previewStyle) error {
	encoded, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	var ok bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(restoreScript, PreviewSelector, encoded), &ok)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("element %s not found", PreviewSelector)
	}
	return nil
}
