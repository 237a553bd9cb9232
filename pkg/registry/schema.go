// pkg/registry/schema.go
package registry

// StageRegistry is the published manifest of analysis stages. The order of
// Stages is the execution order the pipeline must follow.
type StageRegistry struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"lastUpdated"`
	Stages      []Stage `json:"stages"`
}

// Stage describes one pipeline stage for startup validation and tooling.
type Stage struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Description string  `json:"description"`
	Label       string  `json:"label"`
	OutputField string  `json:"outputField"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// manifestSchema is the structural contract a manifest must satisfy before
// it is trusted. Kept as a Go value so the validator needs no file I/O.
var manifestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"version", "stages"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string", "minLength": float64(1)},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"stages": map[string]interface{}{
			"type":     "array",
			"minItems": float64(1),
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"name", "displayName", "label", "outputField"},
				"properties": map[string]interface{}{
					"name":        map[string]interface{}{"type": "string", "minLength": float64(1)},
					"displayName": map[string]interface{}{"type": "string"},
					"description": map[string]interface{}{"type": "string"},
					"label":       map[string]interface{}{"type": "string"},
					"outputField": map[string]interface{}{"type": "string", "minLength": float64(1)},
					"confidence": map[string]interface{}{
						"type":    "number",
						"minimum": float64(0),
						"maximum": float64(1),
					},
				},
			},
		},
	},
}
