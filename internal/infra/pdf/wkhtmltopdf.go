// Package pdf renders certificate HTML to PDF via wkhtmltopdf.
package pdf

import (
	"context"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Converter shells out to wkhtmltopdf. Template content is user-supplied,
// so JavaScript execution and local file access are always disabled; there
// is no option to turn them back on.
type Converter struct{}

// NewConverter optionally pins the wkhtmltopdf binary location. An empty
// path leaves binary discovery to the usual PATH lookup.
func NewConverter(binaryPath string) *Converter {
	if binaryPath != "" {
		wkhtmltopdf.SetPath(binaryPath)
	}
	return &Converter{}
}

func (c *Converter) Convert(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("init wkhtmltopdf: %w", err)
	}
	pdfg.Orientation.Set(wkhtmltopdf.OrientationLandscape)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(0)
	pdfg.MarginBottom.Set(0)
	pdfg.MarginLeft.Set(0)
	pdfg.MarginRight.Set(0)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.DisableJavascript.Set(true)
	page.DisableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("run wkhtmltopdf: %w", err)
	}
	return pdfg.Bytes(), nil
}
