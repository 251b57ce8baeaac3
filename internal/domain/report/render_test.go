package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"sigs.k8s.io/yaml"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
)

func sampleContext() *projectmodel.ProjectContext {
	return &projectmodel.ProjectContext{
		ProjectName:     "Contoso.Web",
		ProjectFullPath: "/src/Contoso.Web/Contoso.Web.csproj",
		AssemblyName:    "Contoso.Web",
		Configuration:   "Release",
		TargetFramework: "net8.0",
		CompilationItems: []string{
			"Program.cs",
			"Startup.cs",
		},
		PackageDependencies: []projectmodel.DependencyDescription{
			{Name: "Serilog", Version: "3.1.1", Type: projectmodel.DependencyPackage},
			{Name: "Contoso.Data", Version: "1.0.0", Type: projectmodel.DependencyProject},
			{Name: "Dapper", Version: "2.1.0", Type: projectmodel.DependencyPackage},
		},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":      FormatJSON,
		"JSON":  FormatJSON,
		"yml":   FormatYAML,
		" yaml": FormatYAML,
		"text":  FormatText,
		"txt":   FormatText,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	ctx := sampleContext()
	out, err := Render(ctx, FormatJSON)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	decoded, err := projectmodel.Decode(out)
	if err != nil {
		t.Fatalf("decode rendered json: %v", err)
	}
	if decoded.ProjectName != ctx.ProjectName || len(decoded.PackageDependencies) != 3 {
		t.Fatalf("unexpected round trip: %+v", decoded)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Fatalf("expected trailing newline")
	}
}

func TestRenderYAML(t *testing.T) {
	out, err := Render(sampleContext(), FormatYAML)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "ProjectName: Contoso.Web") {
		t.Fatalf("yaml missing project name:\n%s", text)
	}
	if !strings.Contains(text, "Type: Project") {
		t.Fatalf("yaml should carry dependency type names:\n%s", text)
	}

	back, err := yaml.YAMLToJSON(out)
	if err != nil {
		t.Fatalf("yaml to json: %v", err)
	}
	var decoded projectmodel.ProjectContext
	if err := json.Unmarshal(back, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.TargetFramework != "net8.0" {
		t.Fatalf("unexpected target framework %q", decoded.TargetFramework)
	}
}

func TestRenderText(t *testing.T) {
	out, err := Render(sampleContext(), FormatText)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"Project:          Contoso.Web",
		"Target framework: net8.0",
		"Compile items:    2",
		"Packages (2):\n  - Dapper\n  - Serilog",
		"Project references (1):\n  - Contoso.Data 1.0.0",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text report missing %q:\n%s", want, text)
		}
	}
}

func TestRenderTextEmptyContext(t *testing.T) {
	out, err := Render(&projectmodel.ProjectContext{}, FormatText)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "(unnamed)") || !strings.Contains(text, "(none)") {
		t.Fatalf("expected placeholders:\n%s", text)
	}
}

func TestRenderRejectsUnknownFormatAndNil(t *testing.T) {
	if _, err := Render(sampleContext(), Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := Render(nil, FormatJSON); err == nil {
		t.Fatalf("expected error for nil context")
	}
}
