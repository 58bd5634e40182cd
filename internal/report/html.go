package report

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/goodric/api-docs-tool/internal/endpoint"
)

// Meta carries specification-level metadata into the report header.
type Meta struct {
	Title       string
	Description string
	Version     string
}

// row is one rendered table row.
type row struct {
	Index       int
	Method      string
	MethodClass string
	Path        string
	FullURL     string
	Status      string
	StatusClass string
	Length      string
	Name        string
}

// page is the full template context.
type page struct {
	Meta
	Total       int
	Rows        []row
	GeneratedAt string
}

// WriteHTML renders the aggregated endpoint sequence as a standalone
// HTML document with a summary header and a per-endpoint table.
func WriteHTML(w io.Writer, meta Meta, endpoints []endpoint.Probed) error {
	if meta.Title == "" {
		meta.Title = "API Documentation"
	}

	p := page{
		Meta:        meta,
		Total:       len(endpoints),
		Rows:        make([]row, 0, len(endpoints)),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	}

	for i, ep := range endpoints {
		p.Rows = append(p.Rows, row{
			Index:       i + 1,
			Method:      ep.Method,
			MethodClass: strings.ToLower(ep.Method),
			Path:        ep.Path,
			FullURL:     ep.FullURL,
			Status:      StatusLabel(ep.Outcome),
			StatusClass: statusClass(ep.Outcome),
			Length:      FormatLength(ep.Outcome),
			Name:        ep.Name(),
		})
	}

	return pageTemplate.Execute(w, p)
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    margin: 0; padding: 20px;
    background-color: #f5f5f5; color: #333;
}
.container {
    max-width: 1600px; width: 95%; margin: 0 auto;
    background: white; border-radius: 8px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1); overflow: hidden;
}
.header {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    color: white; padding: 30px; text-align: center;
}
.header h1 { margin: 0 0 10px 0; font-size: 2.5em; font-weight: 300; }
.header p { margin: 0; opacity: 0.9; font-size: 1.1em; }
.stats { display: flex; justify-content: center; gap: 30px; margin: 20px 0; flex-wrap: wrap; }
.stat-item { text-align: center; padding: 15px; background: rgba(255,255,255,0.1); border-radius: 8px; min-width: 120px; }
.stat-number { font-size: 2em; font-weight: bold; display: block; }
.stat-label { font-size: 0.9em; opacity: 0.8; }
.content { padding: 30px 50px; }
.section-title { font-size: 1.5em; color: #667eea; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 2px solid #e0e0e0; }
.table-container { overflow-x: auto; }
.api-table { width: 100%; min-width: 1000px; border-collapse: collapse; margin: 0 0 20px 0; }
.api-table th {
    background: #f8f9fa; padding: 12px 8px; text-align: left; font-weight: 600;
    color: #555; border-bottom: 2px solid #e0e0e0; white-space: nowrap;
}
.api-table td { padding: 12px 8px; border-bottom: 1px solid #e0e0e0; vertical-align: middle; white-space: nowrap; }
.api-table tr:hover { background-color: #f8f9fa; }
.url-cell { max-width: 600px; overflow-x: auto; }
.status-cell, .length-cell { text-align: center; }
.length-cell { font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', monospace; }
.status {
    display: inline-block; padding: 4px 8px; border-radius: 4px;
    font-size: 0.8em; font-weight: bold; min-width: 50px; text-align: center;
}
.status-success { background: #e8f5e8; color: #2e7d32; }
.status-redirect { background: #fff3e0; color: #f57c00; }
.status-client-error { background: #ffebee; color: #d32f2f; }
.status-server-error { background: #fce4ec; color: #c2185b; }
.status-skip { background: #f5f5f5; color: #666; }
.status-timeout { background: #fff8e1; color: #f9a825; }
.status-error { background: #ffebee; color: #d32f2f; }
.status-unknown { background: #f3e5f5; color: #7b1fa2; }
.method {
    display: inline-block; padding: 4px 8px; border-radius: 4px;
    font-size: 0.8em; font-weight: bold; text-transform: uppercase;
    min-width: 60px; text-align: center;
}
.method.get { background: #e8f5e8; color: #2e7d32; }
.method.post { background: #e3f2fd; color: #1976d2; }
.method.put { background: #fff3e0; color: #f57c00; }
.method.delete { background: #ffebee; color: #d32f2f; }
.method.patch { background: #f3e5f5; color: #7b1fa2; }
.method.head, .method.options { background: #eceff1; color: #455a64; }
.url { color: #1976d2; text-decoration: none; font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', monospace; font-size: 0.9em; }
.url:hover { text-decoration: underline; }
.footer { background: #f8f9fa; padding: 20px; text-align: center; color: #666; border-top: 1px solid #e0e0e0; }
.timestamp { color: #999; font-size: 0.9em; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>{{.Description}}</p>
        <div class="stats">
            <div class="stat-item">
                <span class="stat-number">{{.Total}}</span>
                <span class="stat-label">Endpoints</span>
            </div>
            <div class="stat-item">
                <span class="stat-number">{{.Version}}</span>
                <span class="stat-label">Version</span>
            </div>
        </div>
    </div>
    <div class="content">
        <div class="section">
            <h2 class="section-title">Endpoints</h2>
            <div class="table-container">
                <table class="api-table">
                <thead>
                    <tr>
                        <th style="width: 60px;">#</th>
                        <th style="width: 80px;">Method</th>
                        <th style="width: 600px;">Path</th>
                        <th style="width: 100px;">Status</th>
                        <th style="width: 120px;">Length</th>
                        <th>Name</th>
                    </tr>
                </thead>
                <tbody>
{{- range .Rows}}
                    <tr>
                        <td>{{.Index}}</td>
                        <td><span class="method {{.MethodClass}}">{{.Method}}</span></td>
                        <td class="url-cell"><a href="{{.FullURL}}" class="url" target="_blank">{{.Path}}</a></td>
                        <td class="status-cell"><span class="status {{.StatusClass}}">{{.Status}}</span></td>
                        <td class="length-cell">{{.Length}}</td>
                        <td>{{.Name}}</td>
                    </tr>
{{- end}}
                </tbody>
                </table>
            </div>
        </div>
    </div>
    <div class="footer">
        <p>Generated at <span class="timestamp">{{.GeneratedAt}}</span></p>
    </div>
</div>
</body>
</html>
`))
