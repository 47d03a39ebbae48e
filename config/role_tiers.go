package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"starosta/models"
)

type roleTierFile struct {
	Tiers []models.RoleTier `toml:"tiers"`
}

// LoadRoleTiers returns the role tier table, ascending by level. When path
// is empty the built-in table is used; otherwise the TOML file at path must
// parse and contain at least one tier.
func LoadRoleTiers(path string) ([]models.RoleTier, error) {
	if path == "" {
		return models.DefaultRoleTiers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read role tiers file: %w", err)
	}

	var file roleTierFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse role tiers file: %w", err)
	}
	if len(file.Tiers) == 0 {
		return nil, fmt.Errorf("role tiers file %s defines no tiers", path)
	}

	sort.Slice(file.Tiers, func(i, j int) bool {
		return file.Tiers[i].MinLevel < file.Tiers[j].MinLevel
	})
	return file.Tiers, nil
}
