package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/cmd/preview/models"
	"github.com/VoidMesh/worldgen/internal/config"
	"github.com/VoidMesh/worldgen/internal/db"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

func main() {
	defaults := terrain.DefaultGenerationConfig()

	dbPath := flag.String("db", "", "Path to the SQLite preset database (optional)")
	outDir := flag.String("out", ".", "Directory for exported PNGs")
	workers := flag.Int("workers", 0, "Goroutines per stage (0 = GOMAXPROCS)")
	seed := config.Uint32Flag(defaults.Seed)
	size := config.Uint32Flag(defaults.Width)
	flag.Var(&seed, "seed", "Initial seed")
	flag.Var(&size, "size", "Export width and height")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Bubble Tea owns the terminal, so logs go to a file or nowhere.
	logOut, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if len(os.Getenv("DEBUG")) > 0 {
		logOut, err = tea.LogToFile("debug.log", "debug")
	}
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	defer logOut.Close()
	logging.Configure(logOut, logging.ParseLevel(*logLevel), logging.TextFormat)

	var presets *preset.Manager
	if *dbPath != "" {
		conn, err := db.Open(*dbPath, db.Options{MaxOpenConns: 1})
		if err != nil {
			fatal("Failed to open database", err)
		}
		defer conn.Close()

		if err := db.RunMigrations(conn); err != nil {
			fatal("Failed to run database migrations", err)
		}
		presets = preset.NewManager(conn)
	}

	cfg := defaults
	cfg.Seed = uint32(seed)
	cfg.Width = uint32(size)
	cfg.Height = uint32(size)

	generator := terrain.NewGenerator(terrain.WithWorkers(*workers))
	app := models.NewApp(generator, presets, cfg, *outDir)

	// Create and run the Bubble Tea program
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting worldgen preview", "db_path", *dbPath, "seed", cfg.Seed)

	if _, err := program.Run(); err != nil {
		fatal("Error running preview", err)
	}
}

// fatal reports to stderr as well, since the logger may point at /dev/null.
func fatal(msg string, err error) {
	log.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
