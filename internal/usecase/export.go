package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio-studio/internal/domain"
	"portfolio-studio/internal/model"
	"portfolio-studio/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// Renderer turns final HTML into a PDF.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter renders the ordered block list to HTML and PDF artifacts. It is a
// read-only consumer of the document; nothing here mutates blocks.
type Exporter struct {
	renderer Renderer
	tplDir   string
	log      *logger.Logger
}

func NewExporter(r Renderer, tplDir string, log *logger.Logger) *Exporter {
	return &Exporter{renderer: r, tplDir: tplDir, log: log}
}

// ExportResult reports where the artifacts ended up. PDFPath is empty when
// rendering failed; the HTML is preserved regardless.
type ExportResult struct {
	HTMLPath string `json:"html_path"`
	PDFPath  string `json:"pdf_path,omitempty"`
}

// exportBlock is the template-facing view of a content block.
type exportBlock struct {
	Kind    model.BlockKind
	Content map[string]interface{}
	Style   map[string]interface{}
}

// Export renders the document through the portfolio template, inlines the
// stylesheet, and prints to PDF with retry. The PDF result is validated by
// signature; a render failure keeps the HTML artifact and is reported in the
// result rather than failing the export.
func (e *Exporter) Export(ctx context.Context, session *domain.Session, doc *Document) (ExportResult, error) {
	blocks := doc.Blocks()
	views := make([]exportBlock, 0, len(blocks))
	for _, b := range blocks {
		content := b.Content
		if b.Kind == model.KindCertificate {
			content = withVerifyLabel(content)
		}
		views = append(views, exportBlock{Kind: b.Kind, Content: content, Style: b.Style})
	}

	tpl, err := template.ParseFiles(filepath.Join(e.tplDir, "template.html"))
	if err != nil {
		return ExportResult{}, err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, map[string]interface{}{
		"Title":  doc.Title(),
		"User":   session.User,
		"Blocks": views,
	}); err != nil {
		return ExportResult{}, err
	}
	html := e.inlineStylesheet(buf.String())

	ts := time.Now().Format("20060102T150405")
	genDir := filepath.Join("portfolio-data", "exports")
	if err := os.MkdirAll(genDir, 0o755); err != nil {
		return ExportResult{}, err
	}
	htmlPath := filepath.Join(genDir, fmt.Sprintf("portfolio_%s.html", ts))
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return ExportResult{}, err
	}
	res := ExportResult{HTMLPath: htmlPath}

	pdfBytes, renderErr := e.renderWithRetry(ctx, html)
	if renderErr != nil {
		e.log.Warn("pdf rendering failed, keeping html artifact", "error", renderErr)
		return res, nil
	}

	pdfPath := filepath.Join(genDir, fmt.Sprintf("portfolio_%s_%s.pdf", ts, uuid.New().String()))
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return ExportResult{}, err
	}
	res.PDFPath = pdfPath
	return res, nil
}

func (e *Exporter) renderWithRetry(ctx context.Context, html string) ([]byte, error) {
	attempts := 3
	var pdfBytes []byte
	var renderErr error
	for i := 0; i < attempts; i++ {
		pdfBytes, renderErr = e.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdfBytes) > 0 && strings.HasPrefix(string(pdfBytes), "%PDF") {
				return pdfBytes, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		e.log.Warn("render attempt failed", "attempt", i+1, "error", renderErr)
		// exponential backoff before retrying
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, renderErr
}

// inlineStylesheet injects the template stylesheet into the head so the saved
// HTML renders standalone.
func (e *Exporter) inlineStylesheet(html string) string {
	b, err := os.ReadFile(filepath.Join(e.tplDir, "style.css"))
	if err != nil {
		return html
	}
	cssBlock := "<style>" + string(b) + "</style>"
	if strings.Contains(strings.ToLower(html), "<head>") {
		return strings.Replace(html, "<head>", "<head>"+cssBlock, 1)
	}
	return cssBlock + html
}

// withVerifyLabel adds a tidy domain-only label for a certificate's verify
// URL, preferring the eTLD+1 of the host.
func withVerifyLabel(content map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(content)+1)
	for k, v := range content {
		out[k] = v
	}

	raw, _ := content["verifyUrl"].(string)
	label := ""
	if raw != "" {
		candidate := raw
		if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
			candidate = "https://" + candidate
		}
		if parsed, err := url.Parse(candidate); err == nil && parsed.Hostname() != "" {
			host := parsed.Hostname()
			if etld, err2 := publicsuffix.EffectiveTLDPlusOne(host); err2 == nil {
				label = strings.TrimPrefix(etld, "www.")
			} else {
				label = strings.TrimPrefix(host, "www.")
			}
		} else {
			label = raw
		}
	}
	if label == "" {
		if issuer, _ := content["issuer"].(string); issuer != "" {
			label = issuer
		} else {
			label = "link"
		}
	}
	out["verifyLabel"] = label
	return out
}
