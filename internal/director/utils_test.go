package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateScenarioPath(t *testing.T) {
	path := GenerateScenarioPath(DefaultScenarioDir)
	t.Logf("generated path: %s", path)

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "scenario_") || filepath.Ext(base) != ".yaml" {
		t.Errorf("unexpected name %s", base)
	}
	if filepath.Dir(path) != DefaultScenarioDir {
		t.Errorf("path should be in %s: %s", DefaultScenarioDir, path)
	}
}

func TestFindLatestScenario(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string, age time.Duration) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("version: 1.0\n"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := time.Now().Add(-age)
		os.Chtimes(path, mod, mod)
		return path
	}
	touch("demo.yaml", 3*time.Hour)
	want := touch("tour.yml", time.Hour)
	touch("ar.yaml", 2*time.Hour)
	touch("notes.txt", 0)

	got, err := FindLatestScenario(dir)
	if err != nil {
		t.Fatalf("FindLatestScenario failed: %v", err)
	}
	if got != want {
		t.Errorf("latest = %s, want %s", got, want)
	}
}

func TestFindLatestScenarioEmpty(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{"empty", t.TempDir()},
		{"missing", filepath.Join(t.TempDir(), "missing")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FindLatestScenario(tt.dir); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
