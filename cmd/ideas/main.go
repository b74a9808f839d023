package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/app"
	"github.com/asismo/idea-management-mvp/internal/config"
	"github.com/asismo/idea-management-mvp/internal/engine"
	"github.com/asismo/idea-management-mvp/internal/mcp"
	"github.com/asismo/idea-management-mvp/internal/remote"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"capture": true, "list": true, "search": true, "update": true, "delete": true,
	"folders": true, "merge": true, "describe": true, "settings": true,
	"export": true, "web": true, "devserver": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _     _
  (_) __| | ___  __ _ ___
  | |/ _' |/ _ \/ _' / __|
  | | (_| |  __/ (_| \__ \
  |_|\__,_|\___|\__,_|___/

  Idea capture and organization engine

  Usage: ideas <command> [options]
         ideas --help

  MCP server mode requires piped input.`)
}

// newLogger builds the process logger writing to stderr, so stdout stays
// clean for CLI JSON output and the MCP stdio transport.
func newLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// baseDir returns the per-user state directory (~/.ideas).
func baseDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ideas"), nil
}

// bootstrap assembles a hydrated App from config, the persisted session
// identity, and the remote + AI clients.
func bootstrap(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app.App, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}
	sessionID, err := app.LoadOrCreateSessionID(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load session identity: %w", err)
	}

	rc := remote.New(cfg.PersistenceURL)
	gen := ai.NewOllamaGenerator(cfg.AIURL, cfg.AIModel, cfg.AITimeout)
	cache := ai.NewCache(cfg.CacheMaxEntries, cfg.CacheTTL)
	eng := engine.New(gen, cache, log)

	a := app.New(sessionID, rc, eng, log)
	if err := a.Load(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	log := newLogger()

	// Handle --help/--version before any bootstrapping
	if isHelpOrVersion() {
		cliApp := newCLIApp(nil, log)
		if err := cliApp.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		cliApp := newCLIApp(cfg, log)
		if err := cliApp.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'ideas --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	a, err := bootstrap(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := mcp.Run(a, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
