package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/director"
)

// LatestScenario is the ScenarioIn value that picks the newest file in
// director.DefaultScenarioDir.
const LatestScenario = "latest"

// PrepareScenario reads the scenario named by cfg.ScenarioIn or generates
// one for prod in cfg.ScenarioMode. A scenario read from disk sets the clip
// duration. The result is saved when cfg asks for it, together with its
// starting product.
func PrepareScenario(cfg *config.Config, prod config.Product) (*director.Scenario, error) {
	var sc *director.Scenario
	if cfg.ScenarioIn != "" {
		path := cfg.ScenarioIn
		if path == LatestScenario {
			latest, err := director.FindLatestScenario(director.DefaultScenarioDir)
			if err != nil {
				return nil, err
			}
			path = latest
		}
		var err error
		sc, err = director.ReadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
		if sc.Duration > 0 {
			cfg.Duration = sc.Duration
		}
		fmt.Printf("[*] Using scenario: %s\n", path)
	} else {
		var err error
		sc, err = generate(cfg.ScenarioMode, prod, cfg.Duration)
		if err != nil {
			return nil, fmt.Errorf("generate %s scenario: %w", cfg.ScenarioMode, err)
		}
	}

	if cfg.ScenarioOut != "" || cfg.GenerateScenario {
		path := cfg.ScenarioOut
		if path == "" {
			path = director.GenerateScenarioPath(director.DefaultScenarioDir)
		}
		if err := director.WriteScenario(sc, path); err != nil {
			return nil, err
		}
		fmt.Printf("[+++] Scenario saved: %s\n", path)
		if err := config.SaveProduct(ProductPathFor(path), sc.Product); err != nil {
			return nil, fmt.Errorf("save product: %w", err)
		}
	}
	return sc, nil
}

// ProductPathFor names the product file saved next to a scenario, ready to
// be passed back with -product.
func ProductPathFor(scenarioPath string) string {
	return strings.TrimSuffix(scenarioPath, filepath.Ext(scenarioPath)) + "_product.yaml"
}

func generate(mode string, prod config.Product, duration float64) (*director.Scenario, error) {
	d := director.NewDirector()
	switch mode {
	case config.ModeTour:
		return d.GenerateTour(prod, duration)
	case config.ModeAR:
		return d.GenerateARScenario(prod, duration)
	default:
		return d.GenerateScenario(prod, duration)
	}
}
