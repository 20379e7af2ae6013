package domain

import "fmt"

// ServerPrefix marks informational lines emitted by the relay itself,
// as opposed to forwarded chat lines.
const ServerPrefix = "[SERVER] "

// ServerLine renders a system notice.
func ServerLine(text string) string {
	return ServerPrefix + text
}

// Serverf renders a formatted system notice.
func Serverf(format string, args ...any) string {
	return ServerPrefix + fmt.Sprintf(format, args...)
}

// HelpLines is the command help block sent right after a successful
// registration. Indentation matches the welcome banner layout.
var HelpLines = []string{
	ServerPrefix + "Commands:",
	"  /users                -> list online users",
	"  /chat <username>      -> start chat with user",
	"  /leave                -> leave current chat",
	"  /quit                 -> disconnect",
	ServerPrefix + "Tip: after /chat, just type messages normally.",
}
