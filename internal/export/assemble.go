package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// A4Width is the width of an A4 page in points.
const A4Width = 595.28

// PageSize returns the page dimensions for an image of the given pixel size: A4 width
// and a height that keeps the image's aspect ratio.
func PageSize(width, height int) types.Dim {
	return types.Dim{Width: A4Width, Height: A4Width * float64(height) / float64(width)}
}

// AssemblePDF places each PNG image on its own page and returns the PDF.
func AssemblePDF(images ...[]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, &ExportError{Message: "nothing to assemble"}
	}
	conf := model.NewDefaultConfiguration()

	var out []byte
	for i, img := range images {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
		if err != nil {
			return nil, &ExportError{Message: fmt.Sprintf("image %d is not a PNG", i+1), Cause: err}
		}
		if cfg.Width == 0 || cfg.Height == 0 {
			return nil, &ExportError{Message: fmt.Sprintf("image %d is empty", i+1)}
		}

		dim := PageSize(cfg.Width, cfg.Height)
		imp := pdfcpu.DefaultImportConfig()
		imp.PageDim = &dim
		imp.UserDim = true
		imp.Pos = types.Center
		imp.Scale = 1.0
		imp.ScaleAbs = false

		// pdfcpu appends to an existing document when given one.
		var rs io.ReadSeeker
		if out != nil {
			rs = bytes.NewReader(out)
		}
		var buf bytes.Buffer
		if err := api.ImportImages(rs, &buf, []io.Reader{bytes.NewReader(img)}, imp, conf); err != nil {
			return nil, &ExportError{Message: "failed to build PDF", Cause: err}
		}
		out = buf.Bytes()
	}

	pages, err := api.PageCount(bytes.NewReader(out), conf)
	if err != nil {
		return nil, &ExportError{Message: "generated PDF is unreadable", Cause: err}
	}
	if pages != len(images) {
		return nil, &ExportError{Message: fmt.Sprintf("expected %d pages, got %d", len(images), pages)}
	}
	return out, nil
}
