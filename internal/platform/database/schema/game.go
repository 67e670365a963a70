// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package schema

// GameTable represents the 'game' table of released client builds
type GameTable struct {
	Table   string
	ID      string
	Version string
	IsLive  string
}

// Game is the schema definition for game
var Game = GameTable{
	Table:   "game",
	ID:      "game_id",
	Version: "version",
	IsLive:  "is_live",
}

// Columns returns all standard column names
func (t GameTable) Columns() []string {
	return []string{t.ID, t.Version, t.IsLive}
}
