// Package export prints the HTML projection of a résumé to PDF with headless Chrome.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-craft/internal/projection"
	"github.com/jonathan/resume-craft/internal/rendering"
)

// A4 paper size in inches
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// DefaultTimeout bounds one print job including browser start-up
const DefaultTimeout = 60 * time.Second

// ExportError represents a failed print job
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Printer turns a self-contained HTML page into PDF bytes
type Printer interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints with a headless Chrome started per job
type ChromePrinter struct {
	// ExecPath overrides the Chrome binary; empty uses chromedp's lookup
	ExecPath string
	Timeout  time.Duration
	Log      logrus.FieldLogger
}

// NewChromePrinter creates a printer. execPath may be empty.
func NewChromePrinter(execPath string, timeout time.Duration, log logrus.FieldLogger) *ChromePrinter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChromePrinter{ExecPath: execPath, Timeout: timeout, Log: log.WithField("component", "pdf")}
}

// PrintPDF loads html into a blank page and prints it on A4 with backgrounds
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, p.Timeout)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &ExportError{Message: "headless Chrome failed to print", Cause: err}
	}

	p.Log.WithFields(logrus.Fields{
		"bytes":       len(pdf),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Printed PDF")
	return pdf, nil
}

// PDF renders the projection as HTML and prints it
func PDF(ctx context.Context, printer Printer, doc projection.Document) ([]byte, error) {
	html, err := rendering.RenderHTML(doc, rendering.HTMLOptions{})
	if err != nil {
		return nil, &ExportError{Message: "failed to render HTML", Cause: err}
	}
	pdf, err := printer.PrintPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, &ExportError{Message: "printer returned an empty document"}
	}
	return pdf, nil
}
