//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// LineSink is the write half of a connected peer. Writes are best-effort and
// never block on the recipient; callers are free to ignore the returned error.
type LineSink interface {
	WriteLine(text string) error
}

// Peer is a single connected client as seen by the dispatcher: read one
// newline-terminated line, write one line, close. ReadLine returns io.EOF
// when the peer hangs up.
type Peer interface {
	LineSink
	ReadLine() (string, error)
	Close()
}

// ChatTransition carries the outcome of an atomic pairing transition so the
// caller can emit notifications after the guarded mutation completed.
type ChatTransition struct {
	// OldPartner is the sender's previous partner, unpaired as part of the
	// transition; empty if the sender was not in a chat.
	OldPartner     string
	OldPartnerSink LineSink
	TargetSink     LineSink
}

// IRoster owns the session registry and the pairing table behind one guard.
// Every method is a single atomic step with respect to the others.
type IRoster interface {
	Register(name string, sink LineSink) error
	Lookup(name string) (LineSink, bool)
	ListExcept(name string) []string
	Partner(name string) (string, bool)
	StartChat(sender, target string) (ChatTransition, error)
	Leave(name string) (partner string, sink LineSink, ok bool)
	DropPartner(name string) (string, bool)
	Unregister(name string) (partner string, sink LineSink)
	Size() int
}
