package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/drapery/internal/system"
)

// DefaultScenarioDir is where generated scenarios are saved.
const DefaultScenarioDir = "scenarios"

// GenerateScenarioPath names a new scenario file in dir after the current
// time.
func GenerateScenarioPath(dir string) string {
	return filepath.Join(dir, "scenario_"+time.Now().Format("2006-01-02_15-04-05")+".yaml")
}

// FindLatestScenario returns the newest YAML file in dir.
func FindLatestScenario(dir string) (string, error) {
	path, err := system.FindLatest(dir, system.YAMLExtensions...)
	if err != nil {
		return "", fmt.Errorf("find scenario: %w", err)
	}
	return path, nil
}
