// Package transport owns the TCP plumbing: the accept loop and the
// line-oriented view of a single connection. The relay core only ever sees the
// contract.Peer interface.
package transport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
)

// Peer wraps a net.Conn into the newline-delimited text protocol. Reads belong
// to the owning connection worker; writes may come from any worker forwarding
// a message, so they are serialized by a dedicated mutex here rather than by
// the roster guard.
type Peer struct {
	conn      net.Conn
	reader    *bufio.Reader
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func NewPeer(conn net.Conn) *Peer {
	return &Peer{conn: conn, reader: bufio.NewReader(conn)}
}

// ReadLine blocks until the next newline-terminated text unit arrives and
// returns it without the line ending. A final unterminated line before EOF is
// still delivered; after that, io.EOF.
func (p *Peer) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine sends one line, best-effort. Callers forwarding to another user's
// connection ignore the result; the recipient's own teardown will clean up a
// dead peer.
func (p *Peer) WriteLine(text string) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	_, err := fmt.Fprintf(p.conn, "%s\n", text)
	return err
}

// Close is safe to call from any worker and more than once.
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		_ = p.conn.Close()
	})
}

// RemoteAddr reports the peer address for logging.
func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}
