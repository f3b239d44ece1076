// Package scenario loads suites of agent test scenarios and runs them.
package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed all:testdata
var embeddedSuites embed.FS

// Load loads a scenario suite by name, searching first in the external
// directory (if provided), then in the embedded suites.
func Load(name string, externalDir string) (*Suite, error) {
	// Try external directory first.
	if externalDir != "" {
		dir := filepath.Join(externalDir, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return loadFromFS(os.DirFS(dir), name)
		}
	}

	// Fall back to embedded suites.
	// Use path.Join (not filepath.Join) because embed.FS always uses forward slashes.
	subFS, err := fs.Sub(embeddedSuites, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("scenario suite %q not found: %w", name, err)
	}
	return loadFromFS(subFS, name)
}

// List returns the names of all available scenario suites.
func List(externalDir string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	entries, err := fs.ReadDir(embeddedSuites, "testdata")
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				seen[e.Name()] = true
				names = append(names, e.Name())
			}
		}
	}

	if externalDir != "" {
		entries, err := os.ReadDir(externalDir)
		if err == nil {
			for _, e := range entries {
				if e.IsDir() && !seen[e.Name()] {
					names = append(names, e.Name())
				}
			}
		}
	}

	return names, nil
}

func loadFromFS(fsys fs.FS, name string) (*Suite, error) {
	configData, err := fs.ReadFile(fsys, "config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read config.yaml for suite %q: %w", name, err)
	}

	var suite Suite
	if err := yaml.Unmarshal(configData, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml for suite %q: %w", name, err)
	}

	if suite.ScenariosFile == "" {
		suite.ScenariosFile = "scenarios.yaml"
	}

	scenarios, err := loadScenariosFromFS(fsys, suite.ScenariosFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios for suite %q: %w", name, err)
	}
	suite.Scenarios = scenarios

	return &suite, nil
}

func loadScenariosFromFS(fsys fs.FS, filename string) ([]Scenario, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}

	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	for i, s := range scenarios {
		if strings.TrimSpace(s.Scenario) == "" {
			return nil, fmt.Errorf("scenario %d in %s has an empty scenario text", i+1, filename)
		}
		if strings.TrimSpace(s.ExpectedOutput) == "" {
			return nil, fmt.Errorf("scenario %d in %s has an empty expectedOutput", i+1, filename)
		}
		if s.ID == "" {
			scenarios[i].ID = fmt.Sprintf("%d", i+1)
		}
	}

	return scenarios, nil
}
