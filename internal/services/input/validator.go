// Package input turns raw form values into playable game settings.
//
// Validation never fails: missing or non-numeric values fall back to the
// default and out-of-range values are clamped, so whatever the player
// typed always produces a board. Callers echo the result back so the
// player can see what was actually used.
package input

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/mcoot/minesweeper/internal/model"
)

// Validate converts raw rows, cols and mines values into settings
func Validate(rawRows, rawCols, rawMines string) model.Settings {
	rows := ParseDimension(rawRows)
	cols := ParseDimension(rawCols)
	return model.Settings{
		Rows:  rows,
		Cols:  cols,
		Mines: ParseMines(rawMines, rows, cols),
	}
}

// ParseDimension reads a row or column count, clamped to [1, 40]
func ParseDimension(raw string) int {
	value, ok := parseNumber(raw)
	if !ok {
		return model.DefaultDimension
	}
	return clamp(value, model.MinDimension, model.MaxDimension)
}

// ParseMines reads a mine count, clamped to [1, rows*cols]
func ParseMines(raw string, rows, cols int) int {
	value, ok := parseNumber(raw)
	if !ok {
		value = model.DefaultMines
	}
	return clamp(value, 1, rows*cols)
}

// Clamp applies the same bounds to settings that are already numeric
func Clamp(s model.Settings) model.Settings {
	rows := clamp(float64(s.Rows), model.MinDimension, model.MaxDimension)
	cols := clamp(float64(s.Cols), model.MinDimension, model.MaxDimension)
	return model.Settings{
		Rows:  rows,
		Cols:  cols,
		Mines: clamp(float64(s.Mines), 1, rows*cols),
	}
}

// FromPreset returns the settings for a named difficulty preset
func FromPreset(name string) (model.Settings, error) {
	s, ok := model.PresetSettings(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return model.Settings{}, model.ErrUnknownPreset
	}
	return s, nil
}

// parseNumber accepts anything that reads as a finite or infinite number,
// including decimals and exponents. Blank input is treated as missing.
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	if math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

func isRangeError(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// clamp rounds fractional values up, then bounds the result
func clamp(value float64, lo, hi int) int {
	value = math.Ceil(value)
	if value < float64(lo) {
		return lo
	}
	if value > float64(hi) {
		return hi
	}
	return int(value)
}
