package command

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{"lookup", "/game Portal", CatalogLookup("Portal")},
		{"lookup trims", "/game   The Witcher 3  ", CatalogLookup("The Witcher 3")},
		{"lookup keeps inner prefix", "/game /game Portal", CatalogLookup("/game Portal")},
		{"empty query", "/game ", CatalogLookup("")},
		{"whitespace query", "/game \t  ", CatalogLookup("")},
		{"no trailing space", "/game", PlainChat("/game")},
		{"tab instead of space", "/game\tPortal", PlainChat("/game\tPortal")},
		{"case sensitive", "/Game Portal", PlainChat("/Game Portal")},
		{"leading space", " /game Portal", PlainChat(" /game Portal")},
		{"other command", "/games Portal", PlainChat("/games Portal")},
		{"plain", "Recommend a relaxing game", PlainChat("Recommend a relaxing game")},
		{"empty", "", PlainChat("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.raw); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassify_NonPrefixIsPlainChatUnchanged(t *testing.T) {
	inputs := []string{"hello", "  spaced  ", "/gam", "game /game x", "/GAME x", "\n/game x", "日本語"}
	for _, s := range inputs {
		if strings.HasPrefix(s, GamePrefix) {
			t.Fatalf("bad fixture %q", s)
		}
		got := Classify(s)
		if got.Kind != KindPlainChat || got.Text != s {
			t.Errorf("Classify(%q) = %+v, want PlainChat with unchanged text", s, got)
		}
	}
}

func TestClassify_PrefixedIsTrimmedLookup(t *testing.T) {
	titles := []string{"", " ", "Elden Ring", "  Hades II ", "x\n", "Half-Life: Alyx"}
	for _, title := range titles {
		got := Classify(GamePrefix + title)
		if got.Kind != KindCatalogLookup || got.Query != strings.TrimSpace(title) {
			t.Errorf("Classify(%q) = %+v, want CatalogLookup(%q)", GamePrefix+title, got, strings.TrimSpace(title))
		}
	}
}

func TestKindString(t *testing.T) {
	if KindCatalogLookup.String() != "catalog_lookup" || KindPlainChat.String() != "plain_chat" {
		t.Error("Unexpected kind labels")
	}
}
