package runtime

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"chat-relay/moderation"
)

//go:embed censored/*
var censoredFolder embed.FS

// LoadModerator loads the embedded censored dictionaries and builds the
// moderator applied to forwarded chat lines.
func LoadModerator(log *slog.Logger, charReplacement rune) (*moderation.Moderator, error) {
	loader := NewCensoredLoader(censoredFolder)
	data, err := loader.LoadAll("censored")
	if err != nil {
		return nil, fmt.Errorf("loading censored words: %w", err)
	}

	log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	return moderation.NewModerator(data.Words, charReplacement, log)
}
