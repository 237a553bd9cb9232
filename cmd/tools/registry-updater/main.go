// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"nlp-service/pkg/registry"
)

var manifestPath string

// stageNamePattern matches pipeline stage names: lowercase identifiers
// with optional underscores, e.g. "entities" or "key_phrases".
var stageNamePattern = regexp.MustCompile(`^[a-z][a-z_]*$`)

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	nameAdd := addCmd.String("name", "", "Stage name (e.g., key_phrases)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Key Phrase Extraction)")
	description := addCmd.String("description", "", "Description")
	label := addCmd.String("label", "", "Error label used in failure messages (e.g., Key phrase extraction)")
	outputField := addCmd.String("outputField", "", "Result field the stage fills (e.g., key_phrases)")
	confidence := addCmd.Float64("confidence", 0, "Fixed confidence the stage assigns, 0 to omit")
	addCmd.StringVar(&manifestPath, "path", "pkg/registry/stages.json", "Path to manifest file")

	// Update command flags
	nameUpdate := updateCmd.String("name", "", "Stage name to update")
	field := updateCmd.String("field", "", "Field to update (displayName, description, label, outputField, confidence)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&manifestPath, "path", "pkg/registry/stages.json", "Path to manifest file")

	// Validate command flags
	validateCmd.StringVar(&manifestPath, "path", "pkg/registry/stages.json", "Path to manifest file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" || *displayName == "" || *label == "" || *outputField == "" {
			fmt.Println("Error: name, displayName, label, and outputField are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		stage := registry.Stage{
			Name:        *nameAdd,
			DisplayName: *displayName,
			Description: *description,
			Label:       *label,
			OutputField: *outputField,
			Confidence:  *confidence,
		}
		err := addStage(&stage)
		if err != nil {
			fmt.Printf("Error adding stage: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added stage: %s\n", *nameAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *nameUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := updateStage(*nameUpdate, *field, *value)
		if err != nil {
			fmt.Printf("Error updating stage: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated stage %s, field %s to %s\n", *nameUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err := validateManifest()
		if err != nil {
			fmt.Printf("Manifest validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Manifest validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addStage(stage *registry.Stage) error {
	if !stageNamePattern.MatchString(stage.Name) {
		return fmt.Errorf("stage name must be a lowercase identifier (e.g., key_phrases), got %q", stage.Name)
	}
	if stage.Confidence < 0 || stage.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %g", stage.Confidence)
	}

	reg, err := registry.LoadFile(manifestPath)
	if err != nil {
		// If file doesn't exist, create a new manifest
		if os.IsNotExist(err) {
			reg = &registry.StageRegistry{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format("2006-01-02"),
				Stages:      []registry.Stage{},
			}
		} else {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	// Check if stage already exists
	for _, existing := range reg.Stages {
		if existing.Name == stage.Name {
			return fmt.Errorf("stage with name %s already exists", stage.Name)
		}
	}

	// Append so the new stage runs after the existing ones; manifest order
	// is pipeline execution order.
	reg.Stages = append(reg.Stages, *stage)
	reg.LastUpdated = time.Now().Format("2006-01-02")

	return saveManifest(reg, manifestPath)
}

func updateStage(name, field, value string) error {
	reg, err := registry.LoadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	found := false
	for i := range reg.Stages {
		if reg.Stages[i].Name == name {
			found = true
			switch field {
			case "displayName":
				reg.Stages[i].DisplayName = value
			case "description":
				reg.Stages[i].Description = value
			case "label":
				reg.Stages[i].Label = value
			case "outputField":
				reg.Stages[i].OutputField = value
			case "confidence":
				conf, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid confidence value: %w", err)
				}
				if conf < 0 || conf > 1 {
					return fmt.Errorf("confidence must be between 0 and 1, got %g", conf)
				}
				reg.Stages[i].Confidence = conf
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("stage with name %s not found", name)
	}

	reg.LastUpdated = time.Now().Format("2006-01-02")
	return saveManifest(reg, manifestPath)
}

func validateManifest() error {
	// LoadFile runs the schema validation and the duplicate-name check.
	reg, err := registry.LoadFile(manifestPath)
	if err != nil {
		return err
	}

	for _, stage := range reg.Stages {
		if !stageNamePattern.MatchString(stage.Name) {
			return fmt.Errorf("stage name must be a lowercase identifier: %s", stage.Name)
		}
	}

	fmt.Printf("Manifest validation passed. Found %d stages.\n", len(reg.Stages))
	return nil
}

// saveManifest handles saving the manifest to file
func saveManifest(reg *registry.StageRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, append(data, '\n'), 0644)
	if err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  add     Add a new stage to the manifest
  update  Update an existing stage's field
  validate Validate the manifest file
  help    Show this help message

Examples:
  registry-updater add -name key_phrases -displayName "Key Phrase Extraction" -description "Noun phrases and entity texts, capped at 20" -label "Key phrase extraction" -outputField key_phrases
  registry-updater update -name entities -field confidence -value 0.8
  registry-updater validate -path pkg/registry/stages.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
