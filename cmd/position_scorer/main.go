package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/posmatch/go-position-scorer/api"
	"github.com/posmatch/go-position-scorer/internal/engine"
)

func main() {
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./scorer_data", "Directory to store index data")
		debug   = flag.Bool("debug", false, "Enable debug logging")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Position Scorer - position-match document ranking over term vectors\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/scorer   # Use custom data directory\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("Position Scorer v1.0.0\n")
		return
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting position scorer", "data_dir", *dataDir, "port", *port)
	scoringEngine := engine.NewEngine(*dataDir, logger)

	router := gin.Default()
	api.SetupRoutes(router, scoringEngine, logger)

	if err := router.Run(":" + *port); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
