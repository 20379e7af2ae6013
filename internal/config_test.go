package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := Load()

	req.NoError(err)
	req.Equal("0.0.0.0:5000", config.Addr())
	req.Equal("info", config.LogLevel)
	req.True(config.EnableModeration)
	req.Equal("*", config.CharReplacement)
}

func TestLoad_FromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "6000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENABLE_MODERATION", "false")

	config, err := Load()

	req.NoError(err)
	req.Equal("127.0.0.1:6000", config.Addr())
	req.Equal("debug", config.LogLevel)
	req.False(config.EnableModeration)
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	req := require.New(t)
	t.Setenv("PORT", "70000")

	_, err := Load()

	req.Error(err)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}{
		{name: "Single ASCII character", input: "*", want: '*'},
		{name: "Single multibyte character", input: "█", want: '█'},
		{name: "Empty string", input: "", wantErr: true},
		{name: "More than one character", input: "**", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := CharacterRune(tt.input)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, r)
		})
	}
}
