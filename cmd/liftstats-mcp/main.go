package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftstats/internal/config"
	"github.com/claude/liftstats/internal/mcp"
	"github.com/claude/liftstats/internal/stats"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("server", "", "LiftStats server URL for remote mode (e.g. https://liftstats.tail1234.ts.net)")
	userLogin := flag.String("user", "local", "user login to serve data for")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftstats-mcp", Version)
		return
	}

	// Logs go to stderr: stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	var userID uuid.UUID

	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL, *userLogin)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		userID, err = db.GetOrCreateUser(ctx, *userLogin, *userLogin)
		if err != nil {
			log.Error("failed to resolve user", "login", *userLogin, "error", err)
			os.Exit(1)
		}

		ds = mcp.NewLocalSource(stats.New(db, log))
	}

	srv := mcp.New(ds, Version, log)

	err := mcpserver.ServeStdio(srv, mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, userID)
	}))
	if err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
