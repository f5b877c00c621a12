package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/liftstats/internal/config"
	"github.com/claude/liftstats/internal/importer"
	"github.com/claude/liftstats/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	importPath := flag.String("path", "", "path to a CSV export file or a directory of exports (required)")
	serverURL := flag.String("server", "", "LiftStats server URL for remote mode (e.g. https://liftstats.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for remote mode")
	userLogin := flag.String("user", "local", "user login to import data for (local mode)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftstats-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *importPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftstats-import -path <export.csv or dir> [-config config.yaml | -server <URL> -api-key <key>] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	files, err := collectExports(*importPath)
	if err != nil {
		log.Error("resolving import path", "path", *importPath, "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		log.Info("no CSV exports found", "path", *importPath)
		return
	}

	if *serverURL != "" {
		runRemote(log, files, strings.TrimRight(*serverURL, "/"), *apiKey)
		return
	}

	runLocal(log, files, *configPath, *userLogin, *dryRun)
}

// collectExports returns the CSV files under path, or path itself when it is
// a single file.
func collectExports(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

// runRemote sends each export to a server. Already-sent files are skipped via
// the local state database, so repeated runs only transfer new exports.
func runRemote(log *slog.Logger, files []string, serverURL, apiKey string) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := importer.OpenStateDB(filepath.Join(homeDir, ".liftstats-import"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	client := importer.NewClient(serverURL, apiKey)

	var sent, skipped, errored int
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			log.Error("stat failed", "file", path, "error", err)
			errored++
			continue
		}
		hash, err := importer.HashFile(path)
		if err != nil {
			log.Error("hash failed", "file", path, "error", err)
			errored++
			continue
		}

		done, err := state.IsImported(filepath.Base(path), info.Size(), hash)
		if err != nil {
			log.Error("state lookup failed", "file", path, "error", err)
			errored++
			continue
		}
		if done {
			skipped++
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("read failed", "file", path, "error", err)
			errored++
			continue
		}

		result, err := client.SendExport(data)
		if err != nil {
			log.Error("upload failed", "file", path, "error", err)
			errored++
			continue
		}
		log.Info("export sent",
			"file", filepath.Base(path),
			"sessions_inserted", result.SessionsInserted,
			"sets_inserted", result.SetsInserted,
		)

		if err := state.MarkImported(filepath.Base(path), info.Size(), hash); err != nil {
			log.Error("state update failed", "file", path, "error", err)
		}
		sent++
	}

	log.Info("remote import complete", "sent", sent, "skipped", skipped, "errored", errored)
	if errored > 0 {
		os.Exit(1)
	}
}

// runLocal imports exports straight into the database.
func runLocal(log *slog.Logger, files []string, configPath, userLogin string, dryRun bool) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	}

	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	userID, err := db.GetOrCreateUser(ctx, userLogin, userLogin)
	if err != nil {
		log.Error("failed to resolve user", "login", userLogin, "error", err)
		os.Exit(1)
	}

	imp := importer.New(db, log, dryRun)

	var total importer.Result
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			log.Error("open failed", "file", path, "error", err)
			os.Exit(1)
		}
		result, err := imp.Ingest(ctx, f, userID)
		f.Close()
		if err != nil {
			log.Error("import failed", "file", path, "error", err)
			os.Exit(1)
		}

		total.SessionsReceived += result.SessionsReceived
		total.SessionsInserted += result.SessionsInserted
		total.SetsReceived += result.SetsReceived
		total.SetsInserted += result.SetsInserted
		total.SetsSkipped += result.SetsSkipped
		total.ExercisesCreated += result.ExercisesCreated
	}

	log.Info("import stats",
		"files", len(files),
		"sessions_received", total.SessionsReceived,
		"sessions_inserted", total.SessionsInserted,
		"sets_received", total.SetsReceived,
		"sets_inserted", total.SetsInserted,
		"sets_skipped", total.SetsSkipped,
		"exercises_created", total.ExercisesCreated,
	)
	log.Info("import complete")
}
