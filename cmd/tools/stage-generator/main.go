// cmd/tools/stage-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"nlp-service/pkg/registry"
)

// StageData holds data for templates
type StageData struct {
	Name        string  `json:"name"`
	PackageName string  `json:"packageName"`
	DisplayName string  `json:"displayName"`
	Description string  `json:"description"`
	Label       string  `json:"label"`
	OutputField string  `json:"outputField"`
	Confidence  float64 `json:"confidence"`
}

// lowerFirst makes the first character lowercase
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

const analyzerTemplate = `// internal/analyzers/{{ .PackageName }}/analyzer.go
package {{ .PackageName }}

import (
	"context"
	"strings"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "{{ .Name }}"
	Label     = "{{ .Label }}"
)
{{- if .Confidence }}

// Every result carries the same fixed confidence; the underlying model does
// not expose per-result probabilities.
const resultConfidence = {{ printf "%g" .Confidence }}
{{- end }}

// Analyzer implements the {{ .DisplayName }} stage: {{ lowerFirst .Description }}.
type Analyzer struct {
	engine toolkit.Engine
	logger logger.Logger
}

// NewAnalyzer creates the {{ .Name }} stage. A nil engine is allowed and makes
// every call report the capability as unavailable.
func NewAnalyzer(engine toolkit.Engine, log logger.Logger) *Analyzer {
	return &Analyzer{
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Analyze fills the {{ .OutputField }} result field.
// TODO: replace the []string placeholder with a result type in internal/models.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if a.engine == nil {
		return nil, errors.NewCapabilityUnavailableError("NER capability")
	}

	// TODO: implement the {{ .DisplayName }} pass.

	return []string{}, nil
}
`

const testTemplate = `// internal/analyzers/{{ .PackageName }}/analyzer_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlp-service/internal/common/logger"
)

func TestAnalyzeEmptyTextShortCircuits(t *testing.T) {
	analyzer := NewAnalyzer(nil, logger.NewTestLogger(t))

	out, err := analyzer.Analyze(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAnalyzeWithoutEngineReportsUnavailable(t *testing.T) {
	analyzer := NewAnalyzer(nil, logger.NewTestLogger(t))

	_, err := analyzer.Analyze(context.Background(), "some text")

	require.Error(t, err)
}

// TODO: cover the real {{ .DisplayName }} behavior once the pass is implemented.
`

func main() {
	stage := flag.String("stage", "", "Stage name from the manifest (e.g., key_phrases)")
	outputDir := flag.String("output", "./internal/analyzers/", "Output directory for the generated analyzer")
	manifestPath := flag.String("manifest", "pkg/registry/stages.json", "Path to the stage manifest JSON file")
	flag.Parse()

	if *stage == "" {
		fmt.Println("Usage: stage-generator --stage <name> --output <dir> [--manifest <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/stage-generator/main.go --stage key_phrases")
		os.Exit(1)
	}

	// Load the manifest
	reg, err := registry.LoadFile(*manifestPath)
	if err != nil {
		fmt.Printf("Error loading manifest from %s: %v\n", *manifestPath, err)
		os.Exit(1)
	}

	// Find the stage in the manifest
	found, ok := reg.Lookup(*stage)
	if !ok {
		fmt.Printf("Stage '%s' not found in manifest %s\n", *stage, *manifestPath)
		os.Exit(1)
	}

	// Prepare data for templates
	data := StageData{
		Name:        found.Name,
		PackageName: strings.ReplaceAll(found.Name, "_", ""),
		DisplayName: found.DisplayName,
		Description: found.Description,
		Label:       found.Label,
		OutputField: found.OutputField,
		Confidence:  found.Confidence,
	}

	stageDir := filepath.Join(*outputDir, data.PackageName)

	if err := os.MkdirAll(stageDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	// Create templates with functions
	funcMap := template.FuncMap{
		"lowerFirst": lowerFirst,
	}

	// Generate files
	templates := map[string]string{
		"analyzer.go":      analyzerTemplate,
		"analyzer_test.go": testTemplate,
	}

	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Funcs(funcMap).Parse(tmplStr)
		if err != nil {
			fmt.Printf("Error parsing template %s: %v\n", filename, err)
			continue
		}

		filePath := filepath.Join(stageDir, filename)
		file, err := os.Create(filePath)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", filePath, err)
			continue
		}

		if err := tmpl.Execute(file, data); err != nil {
			fmt.Printf("Error executing template for %s: %v\n", filename, err)
		}
		file.Close()

		fmt.Printf("✓ Generated %s\n", filePath)
	}

	fmt.Printf("\n✅ Analyzer scaffold generated successfully at: %s\n", stageDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement the analysis pass in analyzer.go\n")
	fmt.Printf("  2. Add a result type to internal/models and swap out the placeholder\n")
	fmt.Printf("  3. Extend the tests in analyzer_test.go\n")
	fmt.Printf("  4. Wire the stage into internal/pipeline and the route table in internal/server\n")
}
