package models

// RoleTier binds a minimum level to a community role
type RoleTier struct {
	MinLevel int64  `toml:"min_level"`
	Name     string `toml:"name"`
	Color    int    `toml:"color"`
}

// BirthdayRoleName is the decorative role granted on a member's birthday.
const BirthdayRoleName = "Birthday Star"

// DefaultRoleTiers returns the built-in tier table, ascending by level.
func DefaultRoleTiers() []RoleTier {
	return []RoleTier{
		{MinLevel: 0, Name: "Villager", Color: 0x78B159},
		{MinLevel: 5, Name: "Fence Neighbor", Color: 0x4E7F38},
		{MinLevel: 10, Name: "Tractor Driver", Color: 0x3498DB},
		{MinLevel: 15, Name: "Agronomist", Color: 0x1ABC9C},
		{MinLevel: 20, Name: "Zootechnician", Color: 0xE67E22},
		{MinLevel: 25, Name: "Beekeeper", Color: 0xF1C40F},
		{MinLevel: 30, Name: "Farm Chairman", Color: 0x9B59B6},
		{MinLevel: 35, Name: "Local Oligarch", Color: 0xE91E63},
		{MinLevel: 40, Name: "District Deputy", Color: 0x2C3E50},
		{MinLevel: 45, Name: "Village Mystic", Color: 0x11806A},
		{MinLevel: 50, Name: "Elder", Color: 0xFFD700},
	}
}

// RoleTierForLevel returns the highest tier whose MinLevel does not exceed
// level. The table must be ascending by MinLevel.
func RoleTierForLevel(tiers []RoleTier, level int64) (RoleTier, bool) {
	var best RoleTier
	found := false
	for _, t := range tiers {
		if level >= t.MinLevel {
			best = t
			found = true
		}
	}
	return best, found
}
