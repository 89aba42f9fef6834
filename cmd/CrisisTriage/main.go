package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/carelink/crisistriage/internal/api"
	"github.com/carelink/crisistriage/internal/store"
	"github.com/carelink/crisistriage/internal/util"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for CrisisTriage state data
	DefaultStateDir = "/var/lib/crisistriage"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "crisistriage.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	storeOpts := buildStoreOptions(flags)
	apiOpts := buildAPIOptions(flags)

	slog.Info("Bootstrapping CrisisTriage with configured modules")
	slog.Debug("Final configuration", "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr, "persist_assessments", *flags.persistAssessments)
	if err := api.Run(storeOpts, apiOpts); err != nil {
		slog.Error("CrisisTriage failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("CrisisTriage exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL        string
	StateDir           string
	APIAddr            string
	PersistAssessments bool
}

// Flags holds command line flag values
type Flags struct {
	stateDir           *string
	dbDSN              *string
	apiAddr            *string
	persistAssessments *bool
}

// initializeLogger sets up structured logging
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		StateDir:           os.Getenv("CRISISTRIAGE_STATE_DIR"),
		APIAddr:            os.Getenv("API_ADDR"),
		PersistAssessments: util.ParseBoolEnv("PERSIST_ASSESSMENTS", true),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No CRISISTRIAGE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"CRISISTRIAGE_STATE_DIR", config.StateDir,
		"API_ADDR", config.APIAddr,
		"PERSIST_ASSESSMENTS", config.PersistAssessments)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:           flag.String("state-dir", config.StateDir, "state directory for CrisisTriage data (overrides $CRISISTRIAGE_STATE_DIR)"),
		dbDSN:              flag.String("db-dsn", config.DatabaseURL, "database DSN for the store (overrides $DATABASE_URL)"),
		apiAddr:            flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		persistAssessments: flag.Bool("persist-assessments", config.PersistAssessments, "store assessment results for requests carrying a participant id (overrides $PERSIST_ASSESSMENTS)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"apiAddr", *flags.apiAddr,
		"persistAssessments", *flags.persistAssessments)

	// Follow a moved state directory when the DSN was left at its default
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "old_state_dir", config.StateDir, "new_state_dir", *flags.stateDir)
	}

	return flags
}

// buildStoreOptions constructs store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.dbDSN != "" {
		if store.DetectDSNType(*flags.dbDSN) == "postgres" {
			slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
			storeOpts = append(storeOpts, store.WithPostgresDSN(*flags.dbDSN))
		} else {
			slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
			storeOpts = append(storeOpts, store.WithSQLiteDSN(*flags.dbDSN))
		}
	} else {
		slog.Debug("No database DSN provided, will use in-memory store")
	}
	return storeOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	apiOpts = append(apiOpts, api.WithPersistAssessments(*flags.persistAssessments))
	return apiOpts
}
