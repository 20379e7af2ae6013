package runtime

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/moderation"
)

// Dispatcher drives one connection through its whole lifecycle:
// Unregistered -> Registered -> Terminated. "In a chat" is never tracked here;
// the pairing table stays authoritative and is queried on every message.
type Dispatcher struct {
	log       *slog.Logger
	roster    contract.IRoster
	moderator *moderation.Moderator // nil disables censoring
}

func NewDispatcher(log *slog.Logger, roster contract.IRoster, moderator *moderation.Moderator) *Dispatcher {
	return &Dispatcher{log: log, roster: roster, moderator: moderator}
}

// Handle runs the entry protocol, the command loop, and the teardown for one
// peer. Whatever happens inside, the peer is closed exactly once before
// returning; a session that never registered leaves no trace in the roster.
func (d *Dispatcher) Handle(peer contract.Peer, connID string) {
	log := d.log.With("conn", connID)

	name, registered := d.enter(peer, log)
	if !registered {
		peer.Close()
		return
	}

	d.loop(peer, name, log)
	d.teardown(peer, name, log)
}

// enter prompts for a username and registers it. A blank or already-taken name
// is fatal to the registration attempt: the peer is notified and the session
// never reaches the command loop.
func (d *Dispatcher) enter(peer contract.Peer, log *slog.Logger) (string, bool) {
	_ = peer.WriteLine(domain.ServerLine("Welcome! Enter your username:"))

	raw, err := peer.ReadLine()
	if err != nil {
		log.Debug("Peer left before registering")
		return "", false
	}

	name, err := domain.NormalizeIdentity(raw)
	if err != nil {
		_ = peer.WriteLine(domain.ServerLine("Empty username. Bye."))
		return "", false
	}

	if err := d.roster.Register(name, peer); err != nil {
		_ = peer.WriteLine(domain.ServerLine("Username already taken. Bye."))
		log.Info("Registration refused", "user", name, "error", err)
		return "", false
	}

	_ = peer.WriteLine(domain.Serverf("Hello %s!", name))
	for _, line := range domain.HelpLines {
		_ = peer.WriteLine(line)
	}

	log.Info("User registered", "user", name, "sessions", d.roster.Size())
	return name, true
}

// loop reads lines until the peer hangs up or quits. Blank lines are ignored
// without a response.
func (d *Dispatcher) loop(peer contract.Peer, name string, log *slog.Logger) {
	for {
		line, err := peer.ReadLine()
		if err != nil {
			log.Debug("Read loop ended", "user", name, "error", err)
			return
		}
		if line == "" {
			continue
		}

		switch in := domain.ParseInput(line).(type) {
		case domain.UsersCommand:
			d.handleUsers(peer, name)
		case domain.ChatCommand:
			d.handleChat(peer, name, in.Target, log)
		case domain.LeaveCommand:
			d.handleLeave(peer, name)
		case domain.QuitCommand:
			_ = peer.WriteLine(domain.ServerLine("Bye."))
			return
		case domain.UnknownCommand:
			_ = peer.WriteLine(domain.ServerLine("Unknown command."))
		case domain.ChatText:
			d.route(peer, name, in.Content, log)
		}
	}
}

func (d *Dispatcher) handleUsers(peer contract.Peer, name string) {
	others := d.roster.ListExcept(name)
	if len(others) == 0 {
		_ = peer.WriteLine(domain.ServerLine("No other users online."))
		return
	}
	_ = peer.WriteLine(domain.Serverf("Online: %s", strings.Join(others, ", ")))
}

// handleChat applies the pairing transition and emits its notifications.
// The old-partner notices come first even when the transition ends in a busy
// refusal: the sender-side unpair already happened inside the roster.
func (d *Dispatcher) handleChat(peer contract.Peer, name, target string, log *slog.Logger) {
	if target == "" {
		_ = peer.WriteLine(domain.ServerLine("Usage: /chat <username>"))
		return
	}

	transition, err := d.roster.StartChat(name, target)

	if transition.OldPartner != "" {
		if transition.OldPartnerSink != nil {
			_ = transition.OldPartnerSink.WriteLine(domain.Serverf("%s left the chat.", name))
		}
		_ = peer.WriteLine(domain.Serverf("Left previous chat with %s.", transition.OldPartner))
	}

	var busy *errors.BusyError
	switch {
	case stderrors.Is(err, errors.ErrSelfChat):
		_ = peer.WriteLine(domain.ServerLine("You can't chat with yourself."))
	case stderrors.Is(err, errors.ErrUserNotFound):
		_ = peer.WriteLine(domain.Serverf("User '%s' not found.", target))
	case stderrors.As(err, &busy):
		_ = peer.WriteLine(domain.Serverf("'%s' is already chatting with '%s'.", busy.Target, busy.Partner))
	case err == nil:
		_ = peer.WriteLine(domain.Serverf("Chat started with %s.", target))
		_ = transition.TargetSink.WriteLine(domain.Serverf("%s started a chat with you. You are now connected.", name))
		log.Info("Chat started", "user", name, "partner", target)
	}
}

func (d *Dispatcher) handleLeave(peer contract.Peer, name string) {
	partner, sink, ok := d.roster.Leave(name)
	if !ok {
		_ = peer.WriteLine(domain.ServerLine("You're not in a chat."))
		return
	}
	if sink != nil {
		_ = sink.WriteLine(domain.Serverf("%s left the chat.", name))
	}
	_ = peer.WriteLine(domain.Serverf("You left the chat with %s.", partner))
}

// route forwards a plain line to the current partner. A pairing whose other
// side vanished is dropped on the spot and reported to the sender.
func (d *Dispatcher) route(peer contract.Peer, name, text string, log *slog.Logger) {
	partner, ok := d.roster.Partner(name)
	if !ok {
		_ = peer.WriteLine(domain.ServerLine("You're not in a chat. Use /users then /chat <username>."))
		return
	}

	sink, ok := d.roster.Lookup(partner)
	if !ok {
		d.roster.DropPartner(name)
		_ = peer.WriteLine(domain.ServerLine("Partner disconnected. Chat closed."))
		return
	}

	content := text
	if d.moderator != nil {
		censored, found := d.moderator.Censor(content)
		if len(found) > 0 {
			info := whatlanggo.Detect(content)
			log.Warn("Message censored",
				"author", name,
				"words", len(found),
				"lang", info.Lang.Iso6391())
		}
		content = censored
	}

	msg := domain.NewMessage(name, content)
	_ = sink.WriteLine(msg.Forwarded())
	log.Debug("Message forwarded", "id", msg.ID, "from", name, "to", partner)
}

// teardown unregisters the session, notifies a live former partner once, and
// closes the peer. Runs for every registered session regardless of how the
// loop ended.
func (d *Dispatcher) teardown(peer contract.Peer, name string, log *slog.Logger) {
	_, sink := d.roster.Unregister(name)
	if sink != nil {
		_ = sink.WriteLine(domain.Serverf("%s disconnected. Chat closed.", name))
	}
	peer.Close()
	log.Info("Session closed", "user", name, "sessions", d.roster.Size())
}
