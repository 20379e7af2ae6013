package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		line     string
		expected Input
	}{
		{
			name:     "Plain text is a chat message",
			line:     "hello there",
			expected: ChatText{Content: "hello there"},
		},
		{
			name:     "Users command",
			line:     "/users",
			expected: UsersCommand{},
		},
		{
			name:     "Command keyword is case-insensitive",
			line:     "/USERS",
			expected: UsersCommand{},
		},
		{
			name:     "Chat command with target",
			line:     "/chat bob",
			expected: ChatCommand{Target: "bob"},
		},
		{
			name:     "Chat target is trimmed",
			line:     "/chat    bob  ",
			expected: ChatCommand{Target: "bob"},
		},
		{
			name:     "Chat without argument",
			line:     "/chat",
			expected: ChatCommand{Target: ""},
		},
		{
			name:     "Chat with blank argument",
			line:     "/chat    ",
			expected: ChatCommand{Target: ""},
		},
		{
			name:     "Leave command",
			line:     "/leave",
			expected: LeaveCommand{},
		},
		{
			name:     "Quit command mixed case",
			line:     "/Quit",
			expected: QuitCommand{},
		},
		{
			name:     "Unknown command keeps its name",
			line:     "/dance tango",
			expected: UnknownCommand{Name: "/dance"},
		},
		{
			name:     "Slash alone is an unknown command",
			line:     "/",
			expected: UnknownCommand{Name: "/"},
		},
		{
			name:     "Text starting mid-sentence with slash-like words",
			line:     "half/half",
			expected: ChatText{Content: "half/half"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, ParseInput(tt.line))
		})
	}
}

func TestNormalizeIdentity(t *testing.T) {
	req := require.New(t)

	name, err := NormalizeIdentity("  alice \r")
	req.NoError(err)
	req.Equal("alice", name)

	_, err = NormalizeIdentity("   ")
	req.Error(err)

	// Identities are case-sensitive: no folding happens here
	name, err = NormalizeIdentity("Alice")
	req.NoError(err)
	req.Equal("Alice", name)
}

func TestMessage_Forwarded(t *testing.T) {
	req := require.New(t)

	msg := NewMessage("alice", "hello bob")
	req.Equal("alice: hello bob", msg.Forwarded())
	req.NotZero(msg.ID)
	req.False(msg.CreatedAt.IsZero())
}
