package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoleTiers_EmptyPathUsesDefaults(t *testing.T) {
	tiers, err := LoadRoleTiers("")
	require.NoError(t, err)
	require.Len(t, tiers, 11)
	assert.Equal(t, "Villager", tiers[0].Name)
	assert.Equal(t, int64(50), tiers[len(tiers)-1].MinLevel)
}

func TestLoadRoleTiers_ParsesAndSortsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.toml")
	content := `
[[tiers]]
min_level = 10
name = "Knight"
color = 0x3498DB

[[tiers]]
min_level = 0
name = "Peasant"
color = 0x78B159
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tiers, err := LoadRoleTiers(path)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Peasant", tiers[0].Name, "tiers come back sorted by level")
	assert.Equal(t, "Knight", tiers[1].Name)
	assert.Equal(t, 0x3498DB, tiers[1].Color)
}

func TestLoadRoleTiers_MissingFile(t *testing.T) {
	_, err := LoadRoleTiers(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRoleTiers_EmptyTableRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.toml")
	require.NoError(t, os.WriteFile(path, []byte("# no tiers here\n"), 0o644))

	_, err := LoadRoleTiers(path)
	assert.Error(t, err)
}
