// Package seed loads the demo pipeline installed on an empty cache.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fieldsales_backend/internal/pipeline/domain"
)

type seedLead struct {
	Title      string `yaml:"title"`
	City       string `yaml:"city"`
	State      string `yaml:"state"`
	Score      int    `yaml:"score"`
	Stage      string `yaml:"stage"`
	NextAction string `yaml:"next_action"`
}

type seedFile struct {
	Leads []seedLead `yaml:"leads"`
}

// Load reads the seed file and mints seed-N identifiers in file order.
func Load(path string) ([]domain.Lead, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	leads := make([]domain.Lead, 0, len(file.Leads))
	for i, s := range file.Leads {
		if s.Title == "" {
			return nil, fmt.Errorf("seed lead %d: title is required", i+1)
		}
		stage, err := domain.ParseStage(s.Stage)
		if err != nil {
			return nil, fmt.Errorf("seed lead %d: %w", i+1, err)
		}
		leads = append(leads, domain.Lead{
			ID:         domain.SeedLeadID(i + 1),
			Source:     domain.SourceManual,
			Title:      s.Title,
			City:       s.City,
			State:      s.State,
			Score:      s.Score,
			Stage:      stage,
			NextAction: s.NextAction,
		})
	}
	return leads, nil
}
