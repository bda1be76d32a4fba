// Package pdfexport renders HTML to a PDF byte stream with headless Chrome.
// Each export launches and tears down a fresh browser instance; there is no
// pooling or queuing.
package pdfexport

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// renderTimeout bounds a single export end to end, including Chrome startup.
const renderTimeout = 60 * time.Second

// Paper dimensions in inches.
const (
	a4Width      = 8.27
	a4Height     = 11.69
	letterWidth  = 8.5
	letterHeight = 11.0
	marginInches = 0.4
)

// RenderError indicates the browser failed to produce a PDF.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// paperSize returns width and height in inches for a page size name.
// Anything other than "Letter" falls back to A4.
func paperSize(pageSize string) (width, height float64) {
	if pageSize == "Letter" {
		return letterWidth, letterHeight
	}
	return a4Width, a4Height
}

// HTMLToPDF renders a standalone HTML document to PDF bytes. The document is
// written to a temp file and loaded over file:// so relative asset paths and
// print CSS behave the way they do in the preview.
func HTMLToPDF(ctx context.Context, html string, pageSize string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelTimeout()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp dir", Cause: err}
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Printf("[export] failed to clean temp dir %s: %v", tmpDir, err)
		}
	}()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write HTML", Cause: err}
	}

	width, height := paperSize(pageSize)

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser rendering failed", Cause: err}
	}

	return pdfBuf, nil
}
