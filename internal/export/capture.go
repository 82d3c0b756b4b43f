package export

import (
	"context"
	"log"
	"time"
)

// PreviewSelector is the element that is captured.
const PreviewSelector = "#resume-preview"

// SettleDelay gives the page time to repaint after the preview styles are patched.
const SettleDelay = 100 * time.Millisecond

// Capturer rasterises a rendered preview page into a PNG image.
type Capturer interface {
	Capture(ctx context.Context, html []byte) ([]byte, error)
}

// previewStyle is the inline style of the preview element that capture overrides.
type previewStyle struct {
	Transform string `json:"transform"`
	BoxShadow string `json:"boxShadow"`
}

// previewPage is the part of a loaded page the capture sequence needs.
type previewPage interface {
	// flatten removes the preview's scale and shadow and returns the previous values.
	flatten(ctx context.Context) (previewStyle, error)
	screenshot(ctx context.Context) ([]byte, error)
	restore(ctx context.Context, saved previewStyle) error
}

// captureWithRestore flattens the preview, waits for a repaint and takes the
// screenshot. The original style is put back whether or not the screenshot succeeds.
func captureWithRestore(ctx context.Context, p previewPage, settle time.Duration) (img []byte, err error) {
	saved, err := p.flatten(ctx)
	if err != nil {
		return nil, &ExportError{Message: "could not prepare the preview", Cause: err}
	}
	defer func() {
		if rerr := p.restore(context.WithoutCancel(ctx), saved); rerr != nil {
			log.Printf("[EXPORT] failed to restore preview style: %v", rerr)
		}
	}()

	if settle > 0 {
		select {
		case <-time.After(settle):
		case <-ctx.Done():
			return nil, &ExportError{Message: "capture cancelled", Cause: ctx.Err()}
		}
	}

	img, err = p.screenshot(ctx)
	if err != nil {
		return nil, &ExportError{Message: "could not capture the preview", Cause: err}
	}
	return img, nil
}
