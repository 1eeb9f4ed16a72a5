package model

import (
	"time"
)

// SessionView is the public representation of a chat session.
type SessionView struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	Turns     []Turn    `json:"turns"`
}

// GameSummary is the public representation of one quick-search hit.
type GameSummary struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Released *string  `json:"released,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// SearchGamesResponse is the response for a quick search.
type SearchGamesResponse struct {
	Query   string        `json:"query"`
	Results []GameSummary `json:"results"`
	Card    string        `json:"card"`
}

// ExamplePromptsResponse lists suggested prompts.
type ExamplePromptsResponse struct {
	Prompts []string `json:"prompts"`
}
