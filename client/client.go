package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"chat-relay/domain"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddr string `envconfig:"CHAT_SERVER_ADDR" default:"127.0.0.1:5000"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	Colours    bool   `envconfig:"CHAT_COLOURS" default:"true"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the TCP client lifecycle: configuration, connection, a receive
// loop rendering server lines, and a send loop reading stdin.
func run() (int, error) {
	addrOverride := pflag.String("addr", "", "relay address override (host:port)")
	pflag.Parse()
	_ = godotenv.Load()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	addr := config.ServerAddr
	if *addrOverride != "" {
		addr = *addrOverride
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Connecting to relay", "addr", addr)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to relay at %s: %w", addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// Receive loop: print every server line until the relay hangs up.
	g.Go(func() error {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			render(scanner.Text(), config.Colours)
		}
		fmt.Println("\n[Disconnected from server]")
		return io.EOF
	})

	// Send loop: forward stdin lines; /help is handled locally.
	g.Go(func() error {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.EqualFold(strings.TrimSpace(line), "/help") {
				printHelp()
				continue
			}
			if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
				return err
			}
			if strings.EqualFold(strings.TrimSpace(line), "/quit") {
				return io.EOF
			}
		}
		// stdin closed: leave politely before going away
		_, _ = fmt.Fprintln(conn, "/quit")
		return io.EOF
	})

	// Closer: a canceled context (Ctrl+C or either loop ending) tears the
	// connection down, which unblocks the receive loop.
	g.Go(func() error {
		<-gctx.Done()
		_, _ = fmt.Fprintln(conn, "/quit")
		_ = conn.Close()
		return nil
	})

	if err := g.Wait(); err != nil && !stderrors.Is(err, io.EOF) {
		return exitRuntime, err
	}
	log.Info("Client stopped")
	return exitOK, nil
}

// render prints one incoming line, coloring system notices differently from
// forwarded chat lines.
func render(line string, colours bool) {
	if !colours {
		fmt.Println(line)
		return
	}
	if strings.HasPrefix(line, domain.ServerPrefix) {
		color.Yellow.Println(line)
		return
	}
	color.Green.Println(line)
}

// printHelp renders the local command table, including the client-only /help.
func printHelp() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Command", "Description"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	rows := [][]string{
		{"/users", "list online users"},
		{"/chat <username>", "start chat with user"},
		{"/leave", "leave current chat"},
		{"/quit", "disconnect"},
		{"/help", "show this table (local)"},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
