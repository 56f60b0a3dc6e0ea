package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/campusfest/memories/internal/api"
	"github.com/campusfest/memories/internal/auth"
	"github.com/campusfest/memories/internal/config"
	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
	"github.com/campusfest/memories/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(baseDir string) *cli.App {
	app := &cli.App{
		Name:    "memories",
		Usage:   "College-fest photo gallery server",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(baseDir),
			exportCmd(baseDir),
			purgeSessionsCmd(baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// openGallery wires the shared state every command needs.
func openGallery(baseDir string) (*sql.DB, *config.Config, *ops.Gallery, error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	cfg, err := config.Load(baseDir)
	if err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db.ConfigurePool(database, cfg)

	seeds := gallery.NewCollection(gallery.SeedMoments())
	return database, cfg, ops.New(database, seeds, cfg, baseDir), nil
}

// serveCmd creates the serve command.
func serveCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			database, cfg, g, err := openGallery(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close()

			if host := c.String("host"); host != "" {
				cfg.Host = host
			}
			if port := c.Int("port"); port != 0 {
				cfg.Port = port
			}

			srv := api.NewServer(g, auth.NewService(database, cfg), cfg)
			if err := srv.Run(); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the moment catalog to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output path (default: <base>/exports/moments-<timestamp>.jsonl)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only export one category: legendary|achievements|milestones"},
		},
		Action: func(c *cli.Context) error {
			database, _, g, err := openGallery(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close()

			input := ops.ExportInput{Path: c.String("output")}
			if raw := c.String("category"); raw != "" {
				cat := gallery.Category(raw)
				if !gallery.ValidCategory(cat) {
					return outputError(errors.NewInvalidRequest("unknown category: " + raw))
				}
				input.Category = &cat
			}

			output, err := ops.Export(g, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// purgeSessionsCmd creates the purge-sessions command.
func purgeSessionsCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "purge-sessions",
		Usage: "Remove expired sign-in sessions",
		Action: func(c *cli.Context) error {
			database, _, g, err := openGallery(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close()

			n, err := db.PurgeExpiredSessions(database, g.Now().Unix())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]int64{"purged": n})
		},
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if gErr, ok := err.(*errors.GalleryError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", gErr.Code, gErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
