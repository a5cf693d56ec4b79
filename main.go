package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// main dispatches the four CLI subcommands: play, load, cmd, help. Exit
// codes: 0 success, 1 bad arguments or load failure (narrowed here to one
// subcommand argument instead of a flat flag set, since this repo has
// four distinct entry modes rather than one).
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		printUsage()
	case "play":
		os.Exit(runPlay(os.Args[2:]))
	case "load":
		os.Exit(runLoad(os.Args[2:]))
	case "cmd":
		os.Exit(runCmd(os.Args[2:]))
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  gardensim play [--zone Z] [--seed N] [--catalog PATH] [--spectate PORT]
  gardensim load PATH [--catalog PATH]
  gardensim cmd "STRING" [--zone Z] [--seed N] [--catalog PATH]
  gardensim help`)
}

func loadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

func runPlay(args []string) int {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	zone := fs.String("zone", "temperate", "climate zone id")
	seed := fs.Int64("seed", 1, "run seed")
	catalogPath := fs.String("catalog", "catalog.json", "path to catalog JSON")
	spectatePort := fs.String("spectate", "", "if set, serve a read-only websocket spectator on this port")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	catalog, err := loadCatalogFile(*catalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := NewLogger(os.Stderr, "session")
	session, serr := NewSession(catalog, *zone, uint64(*seed), 3, 3)
	if serr != nil {
		fmt.Fprintln(os.Stderr, serr)
		return 1
	}

	if *spectatePort != "" {
		stop := make(chan struct{})
		defer close(stop)
		serveSpectator(session, *spectatePort, logger, stop)
	}

	model := NewReplModel(session, catalog, logger)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// serveSpectator attaches a Spectator to session, mounts its websocket and
// JSON-status handlers on port, and starts its fan-out loop in the
// background. The HTTP server runs until the process exits.
func serveSpectator(session *GameSession, port string, logger *Logger, stop <-chan struct{}) {
	sp := NewSpectator(session)
	session.AttachSpectator(sp)

	mux := http.NewServeMux()
	mux.Handle("/spectate", sp.Handler())
	mux.HandleFunc("/status", sp.StatusJSON)

	go sp.Run(stop)
	go func() {
		addr := ":" + port
		logger.Infof("spectator listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Errorf("spectator server stopped: %v", err)
		}
	}()
}

func runLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "catalog.json", "path to catalog JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		printUsage()
		return 1
	}
	savePath := fs.Arg(0)

	catalog, err := loadCatalogFile(*catalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	var raw []RawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		fmt.Fprintln(os.Stderr, "invalid save:", err)
		return 1
	}

	logger := NewLogger(os.Stderr, "session")
	session, serr := LoadSession(catalog, raw, logger)
	if serr != nil {
		fmt.Fprintln(os.Stderr, serr)
		return 1
	}

	model := NewReplModel(session, catalog, logger)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runCmd executes a single REPL command line non-interactively and exits.
// Backs the `cmd "STRING"` subcommand — useful for scripting a session
// without the interactive Bubble Tea loop.
func runCmd(args []string) int {
	fs := flag.NewFlagSet("cmd", flag.ContinueOnError)
	zone := fs.String("zone", "temperate", "climate zone id")
	seed := fs.Int64("seed", 1, "run seed")
	catalogPath := fs.String("catalog", "catalog.json", "path to catalog JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		printUsage()
		return 1
	}
	line := fs.Arg(0)

	catalog, err := loadCatalogFile(*catalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := NewLogger(os.Stderr, "session")
	session, serr := NewSession(catalog, *zone, uint64(*seed), 3, 3)
	if serr != nil {
		fmt.Fprintln(os.Stderr, serr)
		return 1
	}

	model := NewReplModel(session, catalog, logger)
	model.dispatch(line)
	fmt.Println(model.view.View())
	return 0
}
