package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewGameRequest is the request body for starting a game. A preset wins
// over explicit dimensions; missing or unreadable dimensions use defaults.
type NewGameRequest struct {
	Rows   RawNumber `json:"rows"`
	Cols   RawNumber `json:"cols"`
	Mines  RawNumber `json:"mines"`
	Preset string    `json:"preset,omitempty"`
}

// PositionRequest is the request body for revealing or flagging a cell
type PositionRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// AutoplayRequest is the request body for letting a bot play
type AutoplayRequest struct {
	Strategy string `json:"strategy,omitempty"`
	MaxMoves int    `json:"max_moves,omitempty"`
}

// RawNumber holds a settings field exactly as the client sent it, whether
// as a JSON number or a JSON string. Null and absent are both empty.
type RawNumber string

// UnmarshalJSON accepts a string, a number or null
func (n *RawNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = RawNumber(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.New("expected a number or a string")
	}
	*n = RawNumber(num.String())
	return nil
}
