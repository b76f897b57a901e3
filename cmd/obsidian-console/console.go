package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/zocram4cc/ObsidianIRC/pkg/transport"
	"github.com/zocram4cc/ObsidianIRC/pkg/update"
)

// console is the interactive shell. It implements transport.EventHandler so
// the manager's event stream prints through the readline-coordinated
// stdout, keeping the prompt intact.
type console struct {
	cfg     Config
	rl      *readline.Instance
	manager *transport.Manager

	mu  sync.Mutex
	ids []string // open connections, in connect order
}

func newConsole(cfg Config) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "irc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &console{cfg: cfg, rl: rl}, nil
}

// Stderr returns a writer that coordinates with the prompt. Use it for log
// output so lines don't clobber pending input.
func (c *console) Stderr() io.Writer {
	return c.rl.Stderr()
}

func (c *console) Close() error {
	return c.rl.Close()
}

// Run drives the interactive command loop until quit or EOF.
func (c *console) Run() {
	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "connect", "c":
			c.cmdConnect(args)

		case "send", "s":
			// send takes the raw remainder so spacing survives
			c.cmdSend(args, input)

		case "disconnect", "d":
			c.cmdDisconnect(args)

		case "servers":
			c.cmdServers()

		case "list", "ls":
			c.cmdList()

		case "update":
			c.cmdUpdate()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *console) cmdConnect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: connect <name|address> [id]")
		return
	}

	address := c.cfg.resolveServer(args[0])
	id := uuid.New().String()[:8]
	if len(args) > 1 {
		id = args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.manager.Connect(ctx, id, address); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Connect failed: %v\n", err)
		return
	}

	c.mu.Lock()
	c.ids = append(c.ids, id)
	c.mu.Unlock()

	fmt.Fprintf(c.rl.Stdout(), "Connected: %s -> %s\n", id, address)
}

func (c *console) cmdSend(args []string, input string) {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: send <id> <line>")
		return
	}

	// Strip the command word and the id positionally so the payload keeps
	// its spacing verbatim.
	rest := strings.TrimLeft(input, " \t")
	rest = strings.TrimLeft(rest[strings.IndexAny(rest, " \t"):], " \t")
	rest = strings.TrimLeft(rest[strings.IndexAny(rest, " \t"):], " \t")

	if err := c.manager.Send(args[0], []byte(rest)); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Send failed: %v\n", err)
	}
}

func (c *console) cmdDisconnect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: disconnect <id>")
		return
	}

	if err := c.manager.Disconnect(args[0]); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Disconnect failed: %v\n", err)
		return
	}
	c.forget(args[0])
}

func (c *console) cmdServers() {
	if len(c.cfg.Servers) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No servers configured")
		return
	}

	names := make([]string, 0, len(c.cfg.Servers))
	for name := range c.cfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(c.rl.Stdout(), "  %-12s %s\n", name, c.cfg.Servers[name])
	}
}

func (c *console) cmdList() {
	c.mu.Lock()
	ids := append([]string(nil), c.ids...)
	c.mu.Unlock()

	if len(ids) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No open connections")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(c.rl.Stdout(), "  %s\n", id)
	}
}

func (c *console) cmdUpdate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := update.NewChecker(releaseTag).Check(ctx)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Update check failed: %v\n", err)
		return
	}
	if info == nil {
		fmt.Fprintf(c.rl.Stdout(), "Up to date (%s)\n", releaseTag)
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "Update available: %s (%s)\n", info.Version, info.Tag)
	fmt.Fprintf(c.rl.Stdout(), "  %s\n", info.DownloadURL)
}

// forget drops id from the open-connection list.
func (c *console) forget(id string) {
	c.mu.Lock()
	for i, known := range c.ids {
		if known == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
}

func (c *console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
ObsidianIRC Console Commands:
  connect <name|address> [id] - Open a connection (irc:// or ircs://)
  send <id> <line>            - Send one raw line (CRLF appended)
  disconnect <id>             - Close a connection
  servers                     - List configured servers
  list                        - List open connections
  update                      - Check GitHub for a newer release
  quit                        - Exit`)
}

// OnMessage prints one framed line as received.
func (c *console) OnMessage(clientID string, data []byte) {
	fmt.Fprintf(c.rl.Stdout(), "[%s] %s\n", clientID, strings.TrimRight(string(data), transport.Terminator))
}

// OnError prints a transport failure.
func (c *console) OnError(clientID string, err error) {
	fmt.Fprintf(c.rl.Stdout(), "[%s] error: %v\n", clientID, err)
}

// OnStateChange prints connection state transitions and forgets closed
// connections.
func (c *console) OnStateChange(clientID string, connected bool) {
	if connected {
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "[%s] disconnected\n", clientID)
	c.forget(clientID)
}

// Compile-time interface satisfaction check.
var _ transport.EventHandler = (*console)(nil)
