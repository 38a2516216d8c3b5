// Package seed carries the default reference lists (districts, categories,
// landing page content) loaded by the seed command.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"cityfix-be/models"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var defaultReference []byte

// Load returns the embedded reference data.
func Load() (models.ReferenceData, error) {
	return parse(defaultReference)
}

// LoadFile reads reference data from a YAML file with the same layout as the
// embedded one.
func LoadFile(path string) (models.ReferenceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.ReferenceData{}, fmt.Errorf("read %s: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) (models.ReferenceData, error) {
	var data models.ReferenceData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return models.ReferenceData{}, fmt.Errorf("parse reference data: %w", err)
	}
	if len(data.Districts) == 0 || len(data.Categories) == 0 {
		return models.ReferenceData{}, fmt.Errorf("reference data needs districts and categories")
	}
	for i, s := range data.Steps {
		if s.Step == 0 {
			data.Steps[i].Step = i + 1
		}
	}
	return data, nil
}
