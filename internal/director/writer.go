package director

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/drapery/internal/config"
)

// WriteScenario writes a scenario to a YAML file, creating its directory
func WriteScenario(scenario *Scenario, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScenario reads and validates a scenario from a YAML file. Product
// fields missing from the file keep their defaults.
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Product: config.Default()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return &scenario, nil
}
