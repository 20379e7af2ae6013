package domain

import (
	"strings"
	"unicode"
)

// CommandMarker introduces a command line; anything else is chat text.
const CommandMarker = "/"

// Input is one classified line received from a registered user.
type Input interface {
	isInput()
}

type UsersCommand struct{}

type ChatCommand struct {
	// Target is the trimmed argument; empty means the argument was missing.
	Target string
}

type LeaveCommand struct{}

type QuitCommand struct{}

type UnknownCommand struct {
	Name string
}

// ChatText is a plain, non-command line addressed to the current partner.
type ChatText struct {
	Content string
}

func (UsersCommand) isInput()   {}
func (ChatCommand) isInput()    {}
func (LeaveCommand) isInput()   {}
func (QuitCommand) isInput()    {}
func (UnknownCommand) isInput() {}
func (ChatText) isInput()       {}

// ParseInput classifies a non-blank line. The first whitespace-delimited token
// of a command line is matched case-insensitively; the remainder is a single
// argument string.
func ParseInput(line string) Input {
	if !strings.HasPrefix(line, CommandMarker) {
		return ChatText{Content: line}
	}

	name, arg := splitCommand(line)
	switch strings.ToLower(name) {
	case "/users":
		return UsersCommand{}
	case "/chat":
		return ChatCommand{Target: strings.TrimSpace(arg)}
	case "/leave":
		return LeaveCommand{}
	case "/quit":
		return QuitCommand{}
	default:
		return UnknownCommand{Name: name}
	}
}

// splitCommand cuts the line at the first whitespace run.
func splitCommand(line string) (name, arg string) {
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}
