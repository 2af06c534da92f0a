package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/model"
)

const estimatePDFTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .meta { color: #666; margin-bottom: 16px; }
  table { border-collapse: collapse; width: 100%; }
  td { border: 1px solid #ccc; padding: 5px 8px; }
  td.label { width: 45%; background: #f5f5f5; font-weight: bold; }
  tr.section td { background: #333; color: #fff; font-weight: bold; }
  .footer { margin-top: 18px; color: #888; font-size: 10px; }
</style>
</head>
<body>
  <h1>Route Estimate</h1>
  <div class="meta">{{ .Route }} &mdash; generated {{ now }}</div>
  <table>
    {{ range .Rows }}
    <tr><td class="label">{{ .Label }}</td><td>{{ .Value }}</td></tr>
    {{ end }}
  </table>
  <div class="footer">Figures in South African Rand. Recommended rates include the configured target markup.</div>
</body>
</html>`

// PDFExporter wraps Gotenberg interactions for estimate PDF generation.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
	tpl      *template.Template
}

// NewPDFExporter creates a PDFExporter with the estimate template parsed.
func NewPDFExporter(endpoint string, client *http.Client) (*PDFExporter, error) {
	funcMap := template.FuncMap{
		"now": func() string {
			return time.Now().Format("2 January 2006 15:04")
		},
	}
	tpl, err := template.New("estimate_pdf").Funcs(funcMap).Parse(estimatePDFTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse estimate template: %w", err)
	}
	return &PDFExporter{Endpoint: endpoint, Client: client, tpl: tpl}, nil
}

type estimatePDFData struct {
	Route string
	Rows  []Row
}

// RenderEstimate sends the rendered HTML to Gotenberg and returns PDF bytes.
func (p *PDFExporter) RenderEstimate(ctx context.Context, e *model.TripEstimate) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialized")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := p.buildEstimateHTML(e)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "estimate.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.69",
		"marginTop":    "0.5",
		"marginBottom": "0.5",
		"marginLeft":   "0.5",
		"marginRight":  "0.5",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

func (p *PDFExporter) buildEstimateHTML(e *model.TripEstimate) (string, error) {
	route := strings.TrimSpace(e.LoadingPoint)
	if e.OffloadingPoint != "" {
		if route != "" {
			route += " to "
		}
		route += e.OffloadingPoint
	}
	if route == "" {
		route = "Unnamed route"
	}

	buf := &bytes.Buffer{}
	data := estimatePDFData{Route: route, Rows: EstimateRows(e)}
	if err := p.tpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
