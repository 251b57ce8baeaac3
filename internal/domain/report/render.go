// Where: internal/domain/report/render.go
// What: Render a ProjectContext as json, yaml, or a text summary.
// Why: Give the CLI and publishers one serializer per output format.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"sigs.k8s.io/yaml"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	summaryOnce sync.Once
	summaryTmpl *template.Template
	summaryErr  error
)

// Render serializes ctx in the given format.
func Render(ctx *projectmodel.ProjectContext, format Format) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("render: project context is nil")
	}
	switch format {
	case FormatJSON, "":
		return renderJSON(ctx)
	case FormatYAML:
		data, err := json.Marshal(ctx)
		if err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		return out, nil
	case FormatText:
		return renderText(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderJSON(ctx *projectmodel.ProjectContext) ([]byte, error) {
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return append(data, '\n'), nil
}

type summaryData struct {
	Context  *projectmodel.ProjectContext
	Packages []string
	Projects []projectmodel.DependencyDescription
}

func renderText(ctx *projectmodel.ProjectContext) ([]byte, error) {
	tmpl, err := loadSummary()
	if err != nil {
		return nil, err
	}
	data := summaryData{
		Context:  ctx,
		Packages: ctx.PackageNames(),
		Projects: ctx.DependenciesOfType(projectmodel.DependencyProject),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}
	return buf.Bytes(), nil
}

func loadSummary() (*template.Template, error) {
	summaryOnce.Do(func() {
		summaryTmpl, summaryErr = template.New("summary.tmpl").
			Funcs(sprig.TxtFuncMap()).
			ParseFS(templateFS, "templates/summary.tmpl")
	})
	return summaryTmpl, summaryErr
}
