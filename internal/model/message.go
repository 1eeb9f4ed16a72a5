// Package model defines data structures shared across GameBot packages.
package model

import (
	"time"
)

// Role represents the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation transcript. Turns are never
// modified after they are appended.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest is the request to submit a raw user message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse lists the turns produced by one submission.
type SendMessageResponse struct {
	Turns []Turn `json:"turns"`
}

// ListTurnsResponse is the response for reading a transcript.
type ListTurnsResponse struct {
	Turns []Turn `json:"turns"`
	Total int    `json:"total"`
}
