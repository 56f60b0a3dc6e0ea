package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	// A missing .env file is fine; environment variables still apply.
	if err := godotenv.Load(); err == nil {
		log.Debug("[main] loaded .env file")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".memories")
	if dir := os.Getenv("MEMORIES_HOME"); dir != "" {
		baseDir = dir
	}

	app := newCLIApp(baseDir)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
