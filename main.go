package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jpreston/bloggerpro/internal/ai"
	"github.com/jpreston/bloggerpro/internal/config"
	"github.com/jpreston/bloggerpro/internal/db"
	"github.com/jpreston/bloggerpro/internal/logger"
	"github.com/jpreston/bloggerpro/internal/render"
	"github.com/jpreston/bloggerpro/internal/store"
	"github.com/jpreston/bloggerpro/internal/ui"
	"github.com/jpreston/bloggerpro/internal/util/compression"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bloggerpro:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(config.EnvFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading %s: %w", config.EnvFile, err)
	}

	if err := config.LoadConfig(config.DefaultConfigFile); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.AppConfig

	log := logger.New(cfg.Logging.Level, cfg.Logging.File)
	config.SetLogger(log)
	db.SetLogger(log)
	store.SetLogger(log)
	render.SetLogger(log)
	ui.SetLogger(log)

	persistence, closer, err := newPersistence(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	if closer != nil {
		defer closer()
	}

	st := store.New(persistence, cfg.Site.Author)
	st.Load()

	assistant, err := ai.NewGeminiClient(
		cfg.AI.BaseURL,
		cfg.AI.TextModel,
		cfg.AI.ImageModel,
		ai.EnvCredential(cfg.AI.APIKeyEnv),
	)
	if err != nil {
		return fmt.Errorf("initializing assistant: %w", err)
	}

	log.Info().Str("backend", cfg.Storage.Backend).Msg("starting")

	program := tea.NewProgram(ui.NewApp(st, assistant, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// newPersistence selects the snapshot backend from config. The returned
// closer, when non-nil, must run after the program exits.
func newPersistence(cfg *config.Config) (store.Persistence, func(), error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		conn := db.NewSQLite(cfg.Storage.SQLitePath)
		if err := conn.InitDB(); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store.NewSQLitePersistence(conn), func() { conn.Close() }, nil

	case "s3":
		p, err := store.NewS3Persistence(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Bucket,
		)
		if err != nil {
			return nil, nil, err
		}
		return p, nil, nil

	default:
		p := store.NewFilePersistence(cfg.Storage.Path, compression.ForName(cfg.Storage.Compression))
		return p, nil, nil
	}
}
