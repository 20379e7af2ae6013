// Package runtime hosts the relay core: the roster of connected users, the
// pairing table, and the per-connection dispatcher. It orchestrates the system
// without containing transport or UI logic.
package runtime

import (
	"sort"
	"sync"

	"github.com/samber/lo"

	"chat-relay/contract"
	"chat-relay/errors"
)

// Roster owns the two shared mutable maps of the relay: the session registry
// (username -> connection sink) and the pairing table (username -> partner).
// Both live behind the same mutex because pairing transitions must be atomic
// with respect to registry membership: a user must never end up paired with a
// name that was removed mid-operation.
type Roster struct {
	mu       sync.Mutex
	sessions map[string]contract.LineSink
	pairs    map[string]string
}

func NewRoster() *Roster {
	return &Roster{
		sessions: make(map[string]contract.LineSink),
		pairs:    make(map[string]string),
	}
}

// Register atomically checks absence and inserts the session.
// On errors.ErrNameTaken the registry is left untouched.
func (r *Roster) Register(name string, sink contract.LineSink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.sessions[name]; taken {
		return errors.ErrNameTaken
	}
	r.sessions[name] = sink
	return nil
}

// Lookup resolves a registered username to its connection sink.
func (r *Roster) Lookup(name string) (contract.LineSink, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sink, ok := r.sessions[name]
	return sink, ok
}

// ListExcept returns every other registered username in lexicographic order,
// so /users output is deterministic.
func (r *Roster) ListExcept(name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	others := lo.Filter(lo.Keys(r.sessions), func(u string, _ int) bool {
		return u != name
	})
	sort.Strings(others)
	return others
}

// Partner returns the current chat partner of name, if any.
func (r *Roster) Partner(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	partner, ok := r.pairs[name]
	return partner, ok
}

// StartChat performs the whole pairing transition as one critical section:
//  1. self-target is refused;
//  2. an unknown target is refused;
//  3. the sender's previous pairing (if any) is torn down symmetrically and
//     reported through the returned ChatTransition;
//  4. a target already paired with a third user yields *errors.BusyError —
//     first come, first served on the target side. The sender-side teardown
//     from step 3 stands, matching the relay's historical behavior;
//  5. otherwise the symmetric pair sender<->target is installed.
//
// Notifications are the caller's job, using the old values carried by the
// transition; the mutation itself never escapes the lock half-done.
func (r *Roster) StartChat(sender, target string) (contract.ChatTransition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var transition contract.ChatTransition

	if target == sender {
		return transition, errors.ErrSelfChat
	}
	targetSink, ok := r.sessions[target]
	if !ok {
		return transition, errors.ErrUserNotFound
	}

	if old, had := r.pairs[sender]; had {
		if r.pairs[old] == sender {
			delete(r.pairs, old)
		}
		delete(r.pairs, sender)
		transition.OldPartner = old
		transition.OldPartnerSink = r.sessions[old]
	}

	if occupant, busy := r.pairs[target]; busy && occupant != sender {
		return transition, &errors.BusyError{Target: target, Partner: occupant}
	}

	r.pairs[sender] = target
	r.pairs[target] = sender
	transition.TargetSink = targetSink
	return transition, nil
}

// Leave removes name's pairing symmetrically and returns the former partner
// with its sink so the caller can notify it. ok is false when name was not in
// a chat.
func (r *Roster) Leave(name string) (string, contract.LineSink, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	partner, ok := r.pairs[name]
	if !ok {
		return "", nil, false
	}
	if r.pairs[partner] == name {
		delete(r.pairs, partner)
	}
	delete(r.pairs, name)
	return partner, r.sessions[partner], true
}

// DropPartner removes a dangling pairing entry left behind when the partner
// vanished without a symmetric teardown.
func (r *Roster) DropPartner(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	partner, ok := r.pairs[name]
	if !ok {
		return "", false
	}
	delete(r.pairs, name)
	return partner, true
}

// Unregister tears a session down: it removes the registry entry and any
// pairing entries referencing name on either side. The still-connected former
// partner (if any) is returned for a single disconnect notice. Idempotent:
// a second call for the same name is a no-op returning zero values.
func (r *Roster) Unregister(name string) (string, contract.LineSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, name)

	partner, ok := r.pairs[name]
	delete(r.pairs, name)
	if !ok || r.pairs[partner] != name {
		return "", nil
	}
	delete(r.pairs, partner)

	sink, live := r.sessions[partner]
	if !live {
		return "", nil
	}
	return partner, sink
}

// Size reports the number of live registered sessions, for telemetry.
func (r *Roster) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
