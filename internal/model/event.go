package model

import (
	"time"
)

// TurnEvent announces a turn appended to a session transcript.
type TurnEvent struct {
	SessionID string    `json:"session_id"`
	Owner     string    `json:"owner"`
	Index     int       `json:"index"`
	Turn      Turn      `json:"turn"`
	EmittedAt time.Time `json:"emitted_at"`
}
