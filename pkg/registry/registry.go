// pkg/registry/registry.go

// Package registry loads and validates the stage manifest. The manifest is
// compiled into the binary; LoadFile exists for tooling that inspects an
// out-of-tree copy.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed stages.json
var manifest []byte

// Load parses and validates the embedded stage manifest.
func Load() (*StageRegistry, error) {
	return parse(manifest)
}

// LoadFile parses and validates a manifest from disk.
func LoadFile(path string) (*StageRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*StageRegistry, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stage manifest is not valid JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(manifestSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("stage manifest validation: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("stage manifest invalid: %s", strings.Join(details, "; "))
	}

	var reg StageRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(reg.Stages))
	for _, stage := range reg.Stages {
		if seen[stage.Name] {
			return nil, fmt.Errorf("stage manifest invalid: duplicate stage %q", stage.Name)
		}
		seen[stage.Name] = true
	}

	return &reg, nil
}

// Names returns the stage names in manifest order.
func (r *StageRegistry) Names() []string {
	names := make([]string, 0, len(r.Stages))
	for _, stage := range r.Stages {
		names = append(names, stage.Name)
	}
	return names
}

// Lookup returns the stage descriptor with the given name.
func (r *StageRegistry) Lookup(name string) (Stage, bool) {
	for _, stage := range r.Stages {
		if stage.Name == name {
			return stage, true
		}
	}
	return Stage{}, false
}
