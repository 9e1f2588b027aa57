package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IngredientFixture is one catalog entry in the ingredients YAML file.
type IngredientFixture struct {
	Name            string `yaml:"name"`
	MeasurementUnit string `yaml:"measurement_unit"`
}

// LoadIngredientFixtures loads the ingredient catalog from a YAML file.
// Returns nil without error if path is empty or the file does not exist,
// so deployments without a fixtures file start normally.
func LoadIngredientFixtures(path string) ([]IngredientFixture, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ingredients file: %w", err)
	}

	var fixtures []IngredientFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse ingredients file: %w", err)
	}

	for i, f := range fixtures {
		if f.Name == "" || f.MeasurementUnit == "" {
			return nil, fmt.Errorf("ingredients file entry %d: name and measurement_unit are required", i)
		}
	}

	return fixtures, nil
}
