package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

const defaultChromeTimeout = 30 * time.Second

// reportTemplate lays out a report document as a printable HTML page.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 24px; }
h1 { font-size: 18px; margin-bottom: 2px; }
.meta { color: #555; margin-bottom: 16px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #f0f0f0; }
.summary { margin-top: 16px; width: auto; }
.summary td:last-child { text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated at {{.GeneratedAt.Format "2006-01-02 15:04"}}{{if .PeriodStart}} for {{.PeriodStart.Format "2006-01-02"}} to {{.PeriodEnd.Format "2006-01-02"}}{{end}}</div>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
{{if .Summary}}
<table class="summary">
{{range .Summary}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}
</table>
{{end}}
</body>
</html>`))

// PDFConfig configures the headless Chrome used for PDF output.
type PDFConfig struct {
	Timeout time.Duration
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
}

// PDFRenderer renders report documents to PDF through the Chrome DevTools
// Protocol. The allocator is shared across renders.
type PDFRenderer struct {
	timeout     time.Duration
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewPDFRenderer creates a renderer backed by a headless Chrome allocator.
func NewPDFRenderer(cfg PDFConfig) *PDFRenderer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultChromeTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &PDFRenderer{
		timeout:     timeout,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// RenderPDF lays the document out as HTML and prints it via Chrome.
func (r *PDFRenderer) RenderPDF(ctx context.Context, doc domain.ReportDocument) ([]byte, error) {
	var html bytes.Buffer
	if err := reportTemplate.Execute(&html, doc); err != nil {
		return nil, fmt.Errorf("failed to build report HTML: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// The browser context descends from the shared allocator, not from the
	// request context, so caller cancellation and the render deadline must be
	// forwarded to it explicitly.
	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()
	stop := context.AfterFunc(runCtx, browserCancel)
	defer stop()

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html.String()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated PDF is empty")
	}
	return pdfData, nil
}

// Close releases the Chrome allocator.
func (r *PDFRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
