package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"
)

// Handler runs the whole lifecycle of one connected peer.
type Handler interface {
	Handle(peer *Peer, connID string)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(peer *Peer, connID string)

func (f HandlerFunc) Handle(peer *Peer, connID string) { f(peer, connID) }

// Server accepts TCP connections and hands each one to the Handler in its own
// goroutine. It implements contract.Worker so it runs under the supervisor;
// canceling the context closes the listener and every tracked peer.
type Server struct {
	log     *slog.Logger
	addr    string
	handler Handler

	mu        sync.Mutex
	peers     map[string]*Peer
	boundAddr string
}

func NewServer(log *slog.Logger, addr string, handler Handler) *Server {
	return &Server{
		log:     log,
		addr:    addr,
		handler: handler,
		peers:   make(map[string]*Peer),
	}
}

// Run binds the listener and accepts until the context is canceled. Each
// accepted connection gets a uuid so log lines of one session correlate.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.boundAddr = ln.Addr().String()
	s.mu.Unlock()
	s.log.Info("Relay listening", "addr", s.addr)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	var handlers sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.closePeers()
				handlers.Wait()
				s.log.Info("Relay stopped")
				return nil
			}
			s.log.Error("Accept failed", "error", err)
			continue
		}

		id := uuid.NewString()
		peer := NewPeer(conn)
		s.track(id, peer)
		s.log.Info("New connection", "conn", id, "remote", peer.RemoteAddr())

		handlers.Add(1)
		go func() {
			defer handlers.Done()
			defer s.untrack(id)
			s.handler.Handle(peer, id)
		}()
	}
}

// BoundAddr reports the actual listen address, useful when the configured
// port is 0. Empty until Run has bound the listener.
func (s *Server) BoundAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}

func (s *Server) track(id string, peer *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[id] = peer
}

func (s *Server) untrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.peers, id)
}

// closePeers unblocks every connection worker still waiting in ReadLine so
// shutdown cannot hang on an idle session.
func (s *Server) closePeers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, peer := range s.peers {
		peer.Close()
	}
}
