package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// TestModerator_Censor
// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dictionary := []string{"badger", "snake", "mushroom"}
	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		found    int
	}{
		{
			name:     "Simple word and space preservation",
			input:    "The badger is here",
			expected: "The ****** is here",
			found:    1,
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "badger badger badger",
			expected: "****** ****** ******",
			found:    3,
		},
		{
			name:     "Leet speak substitution",
			input:    "Look at b4dg3r now",
			expected: "Look at ****** now",
			found:    1,
		},
		{
			name:     "Uppercase and internal punctuation",
			input:    "S-N-A-K-E is loose",
			expected: "********* is loose",
			found:    1,
		},
		{
			name:     "Clean input is returned verbatim",
			input:    "nothing wrong here",
			expected: "nothing wrong here",
			found:    0,
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
			found:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			censored, found := mod.Censor(tt.input)
			req.Equal(tt.expected, censored)
			req.Len(found, tt.found)
		})
	}
}

func TestModerator_CensorIsConcurrencySafe(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	mod, err := NewModerator([]string{"badger"}, replacementChar, log)
	req.NoError(err)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				censored, _ := mod.Censor("a badger walked by")
				if censored != "a ****** walked by" {
					t.Error("unexpected censor output")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
