// Command obsidian-console is a line-level IRC console built on the
// ObsidianIRC transport core.
//
// It plays the role of the host shell: it drives the connection manager's
// command surface (connect/send/disconnect) and prints the event stream
// (messages, errors, state changes). It speaks no IRC semantics - every
// line is sent and shown raw.
//
// Usage:
//
//	obsidian-console [flags]
//
// Flags:
//
//	-config string        YAML file with named servers
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Write wire-level events to this file (CBOR)
//
// Examples:
//
//	# Connect to a named server from the config
//	obsidian-console -config servers.yaml
//	irc> connect libera
//
//	# Connect ad-hoc, watch the wire in debug logs
//	obsidian-console -log-level debug
//	irc> connect ircs://irc.libera.chat:6697
//	irc> send <id> NICK obsidian
//
// Interactive Commands:
//
//	connect <name|address> [id] - Open a connection (id defaults to a fresh UUID)
//	send <id> <line>            - Send one raw line
//	disconnect <id>             - Close a connection
//	servers                     - List configured servers
//	list                        - List open connections
//	update                      - Check GitHub for a newer release
//	quit                        - Exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zocram4cc/ObsidianIRC/pkg/log"
	"github.com/zocram4cc/ObsidianIRC/pkg/transport"
)

// releaseTag is the running release, set at build time via
// -ldflags "-X main.releaseTag=v0.2.4-build5".
var releaseTag = "v0.0.0"

func main() {
	configPath := flag.String("config", "", "YAML file with named servers")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	protocolLog := flag.String("protocol-log", "", "write wire-level events to this file")
	flag.Parse()

	if err := run(*configPath, *logLevel, *protocolLog); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, protocolLog string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	console, err := newConsole(cfg)
	if err != nil {
		return err
	}
	defer console.Close()

	logger := slog.New(slog.NewTextHandler(console.Stderr(), &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	slog.SetDefault(logger)

	managerCfg := transport.DefaultConfig()
	managerCfg.Logger = logger
	if protocolLog != "" {
		fileLogger, err := log.NewFileLogger(protocolLog)
		if err != nil {
			return fmt.Errorf("failed to open protocol log: %w", err)
		}
		defer fileLogger.Close()
		managerCfg.ProtocolLogger = fileLogger
	}

	manager := transport.NewManager(managerCfg, console)
	defer manager.Close()
	console.manager = manager

	console.Run()
	return nil
}

// parseLevel maps a flag value to an slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
