// Package command classifies raw user messages into catalog lookups or
// plain chat.
package command

import "strings"

// GamePrefix introduces a catalog lookup. It is case-sensitive and the
// trailing space is required.
const GamePrefix = "/game "

// Kind tags the variant of an Intent.
type Kind int

const (
	KindPlainChat Kind = iota
	KindCatalogLookup
)

func (k Kind) String() string {
	switch k {
	case KindCatalogLookup:
		return "catalog_lookup"
	default:
		return "plain_chat"
	}
}

// Intent is the classification of one message. Query is set for
// KindCatalogLookup, Text for KindPlainChat.
type Intent struct {
	Kind  Kind
	Query string
	Text  string
}

// CatalogLookup builds a lookup intent.
func CatalogLookup(query string) Intent {
	return Intent{Kind: KindCatalogLookup, Query: query}
}

// PlainChat builds a chat intent.
func PlainChat(text string) Intent {
	return Intent{Kind: KindPlainChat, Text: text}
}

// Classify maps every input to exactly one intent. "/game " followed by
// nothing but whitespace yields a lookup with an empty query.
func Classify(raw string) Intent {
	if rest, ok := strings.CutPrefix(raw, GamePrefix); ok {
		return CatalogLookup(strings.TrimSpace(rest))
	}
	return PlainChat(raw)
}
