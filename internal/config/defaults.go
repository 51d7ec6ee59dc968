package config

import (
	_ "embed"
)

//go:embed defaults/turrets.yaml
var defaultTurretsYAML []byte

// DefaultTurretsConfig returns the hardcoded configuration used when the
// embedded defaults cannot be parsed.
func DefaultTurretsConfig() TurretsConfig {
	return TurretsConfig{
		Board: BoardLayout{
			CellWidth:  3,
			CellHeight: 1,
			ColumnGap:  1,
			RowGap:     0,
		},
		Theme: Theme{
			Empty:   "gray",
			White:   "white",
			Black:   "black",
			Preview: "green",
			Target:  "red",
			Cursor:  "yellow",
		},
		Rules: Rules{
			MissPolicy: "ignore",
		},
	}
}
