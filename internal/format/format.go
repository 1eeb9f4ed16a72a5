// Package format renders catalog records and failures as assistant turns.
// Every function here is pure and never fails.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/capitalize-ai/gamebot/internal/catalog"
)

// Placeholders for absent catalog fields.
const (
	UnknownPlaceholder    = "Unknown"
	NAPlaceholder         = "N/A"
	NoDescription         = "No description available."
	fallbackWebsiteTarget = "#"
	genericCatalogFailure = "could not complete this request"
)

// Detail renders a game record as markdown. A nil detail renders the
// same as one with every optional field absent.
func Detail(d *catalog.Detail) string {
	if d == nil {
		d = &catalog.Detail{}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", orDefault(d.Name, UnknownPlaceholder))

	if d.BackgroundImage != nil {
		fmt.Fprintf(&b, "![Game Image](%s)\n\n", *d.BackgroundImage)
	}

	fmt.Fprintf(&b, "**Released:** %s\n", deref(d.Released, UnknownPlaceholder))
	fmt.Fprintf(&b, "**Rating:** %s\n", Rating(d.Rating))
	fmt.Fprintf(&b, "**Platforms:** %s\n", strings.Join(d.Platforms, ", "))
	fmt.Fprintf(&b, "**Genres:** %s\n\n", strings.Join(d.Genres, ", "))

	fmt.Fprintf(&b, "%s\n\n", deref(d.Description, NoDescription))

	if len(d.Screenshots) > 0 {
		b.WriteString("**Screenshots:**")
		for _, m := range d.Screenshots {
			fmt.Fprintf(&b, " ![Screenshot](%s)", m.Image)
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "**Website:** [%s](%s)",
		deref(d.Website, NAPlaceholder),
		deref(d.Website, fallbackWebsiteTarget),
	)

	return b.String()
}

// Rating renders a 0-5 rating, or the N/A placeholder.
func Rating(r *float64) string {
	if r == nil {
		return NAPlaceholder
	}
	return strconv.FormatFloat(*r, 'f', -1, 64) + "/5"
}

// SearchResults renders quick-search hits as a compact card list.
func SearchResults(results []catalog.Summary) string {
	if len(results) == 0 {
		return "No games found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d games\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&b, "\n**%s**\nReleased: %s\nRating: %s\n",
			orDefault(r.Name, UnknownPlaceholder),
			deref(r.Released, UnknownPlaceholder),
			Rating(r.Rating),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// LookupFailure reports a failed search.
func LookupFailure(reason string) string {
	return fmt.Sprintf("Couldn't search for games: %s", reason)
}

// DetailFailure reports a search hit whose detail could not be fetched.
func DetailFailure(reason string) string {
	return fmt.Sprintf("Found game but couldn't get details: %s", reason)
}

// NoResults reports a search with zero matches.
func NoResults(query string) string {
	return fmt.Sprintf("No games found matching '%s'. Try a different search term.", query)
}

// BackendFailure reports a chat backend error.
func BackendFailure(reason string) string {
	return fmt.Sprintf("Sorry, I encountered an error: %s", reason)
}

// BackendUnavailable is the reply to chat messages when the chat backend
// could not be started for this session.
func BackendUnavailable() string {
	return "Sorry, the chat backend could not be started, so I can't answer that right now. " +
		"Game lookups still work: use /game followed by a title."
}

// ConfigNotice is shown when no chat backend credential is configured.
func ConfigNotice() string {
	return "Please add your chat backend API key (for example GEMINI_API_KEY) to the .env file."
}

// Welcome greets the user when a session's chat backend comes up.
func Welcome() string {
	return "Hello gamer! I'm GameBot, your gaming assistant. I can help with game recommendations, " +
		"information about specific titles, platforms, and more. Try asking me about games or use " +
		"/game followed by a title to search the RAWG database! 🎮"
}

// CatalogReason turns a catalog error into a short user-facing reason.
// Transport and decoding failures read the same.
func CatalogReason(err error) string {
	switch {
	case err == nil:
		return genericCatalogFailure
	case errors.Is(err, catalog.ErrUnauthorized):
		return "RAWG API key not found"
	case errors.Is(err, catalog.ErrNotFound):
		return "game not found"
	default:
		return genericCatalogFailure
	}
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
