package transport

import (
	"bufio"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeer_ReadLineFraming(t *testing.T) {
	req := require.New(t)
	client, server := net.Pipe()
	peer := NewPeer(server)

	go func() {
		_, _ = client.Write([]byte("hello\r\nworld\n"))
		_ = client.Close()
	}()

	// Both \n and \r\n endings are stripped
	line, err := peer.ReadLine()
	req.NoError(err)
	req.Equal("hello", line)

	line, err = peer.ReadLine()
	req.NoError(err)
	req.Equal("world", line)

	_, err = peer.ReadLine()
	req.ErrorIs(err, io.EOF)
}

func TestPeer_ReadLineDeliversFinalUnterminatedLine(t *testing.T) {
	req := require.New(t)
	client, server := net.Pipe()
	peer := NewPeer(server)

	go func() {
		_, _ = client.Write([]byte("goodbye"))
		_ = client.Close()
	}()

	line, err := peer.ReadLine()
	req.NoError(err)
	req.Equal("goodbye", line)

	_, err = peer.ReadLine()
	req.ErrorIs(err, io.EOF)
}

func TestPeer_ConcurrentWritesStayLineAtomic(t *testing.T) {
	req := require.New(t)
	client, server := net.Pipe()
	peer := NewPeer(server)

	const writers = 8
	const perWriter = 50

	received := make(chan string, writers*perWriter)
	go func() {
		scanner := bufio.NewScanner(client)
		for scanner.Scan() {
			received <- scanner.Text()
		}
		close(received)
	}()

	// When several workers write to the same peer concurrently
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = peer.WriteLine("tick tock tick tock")
			}
		}()
	}
	wg.Wait()
	peer.Close()

	// Then every received line is intact: no interleaved fragments
	count := 0
	for line := range received {
		req.Equal("tick tock tick tock", line)
		count++
	}
	req.Equal(writers*perWriter, count)
}

func TestPeer_CloseIsIdempotent(t *testing.T) {
	_, server := net.Pipe()
	peer := NewPeer(server)

	peer.Close()
	peer.Close() // must not panic
}
