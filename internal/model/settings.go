package model

import "fmt"

// Board size limits accepted from players
const (
	MinDimension     = 1
	MaxDimension     = 40
	DefaultDimension = 10
	DefaultMines     = 10
)

// Settings are the validated dimensions and mine count of a game
type Settings struct {
	Rows  int
	Cols  int
	Mines int
}

// Key identifies a board shape, used to group best times
func (s Settings) Key() string {
	return fmt.Sprintf("%dx%d/%d", s.Rows, s.Cols, s.Mines)
}

// DefaultSettings returns the settings used when the player enters nothing
func DefaultSettings() Settings {
	return Settings{Rows: DefaultDimension, Cols: DefaultDimension, Mines: DefaultMines}
}

// Preset names
const (
	PresetBeginner     = "beginner"
	PresetIntermediate = "intermediate"
	PresetExpert       = "expert"
)

var presets = map[string]Settings{
	PresetBeginner:     {Rows: 9, Cols: 9, Mines: 10},
	PresetIntermediate: {Rows: 16, Cols: 16, Mines: 40},
	PresetExpert:       {Rows: 16, Cols: 30, Mines: 99},
}

// PresetSettings returns the settings for a named preset
func PresetSettings(name string) (Settings, bool) {
	s, ok := presets[name]
	return s, ok
}

// PresetNames returns all preset names, smallest board first
func PresetNames() []string {
	return []string{PresetBeginner, PresetIntermediate, PresetExpert}
}
