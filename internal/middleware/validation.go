package middleware

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxMessageLength = 8000
	maxQueryLength   = 200
)

// ValidateMessageContent validates a raw chat message.
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return errors.New("content exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("content must be valid UTF-8")
	}
	return nil
}

// ValidateSessionID validates a session ID.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}

// ValidateGameID parses a catalog game id.
func ValidateGameID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid game ID")
	}
	return id, nil
}

// ValidateSearchQuery validates a quick-search query.
func ValidateSearchQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("search query cannot be empty")
	}
	if len(query) > maxQueryLength {
		return errors.New("search query exceeds maximum length")
	}
	if !utf8.ValidString(query) {
		return errors.New("search query must be valid UTF-8")
	}
	return nil
}
