// Command import loads a directory of markdown files into the configured
// post snapshot. Files may carry a %%%-delimited TOML front matter block;
// its title wins over the file name.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpreston/bloggerpro/internal/config"
	"github.com/jpreston/bloggerpro/internal/db"
	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
	"github.com/jpreston/bloggerpro/internal/util"
	"github.com/jpreston/bloggerpro/internal/util/compression"
)

func main() {
	path := flag.String("path", "", "Path to the directory containing .md files")
	configPath := flag.String("config", config.DefaultConfigFile, "Path to the config file")
	publish := flag.Bool("publish", false, "Import posts as published instead of drafts")
	flag.Parse()

	if *path == "" {
		log.Fatal("The --path flag is required")
	}

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	cfg := config.AppConfig

	persistence, closer, err := newPersistence(cfg)
	if err != nil {
		log.Fatalf("Error initializing storage: %v", err)
	}
	if closer != nil {
		defer closer()
	}

	st := store.New(persistence, cfg.Site.Author)
	st.Load()

	status := model.StatusDraft
	if *publish {
		status = model.StatusPublished
	}

	files, err := os.ReadDir(*path)
	if err != nil {
		log.Fatalf("Error reading directory %s: %v", *path, err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}
		title, err := importFile(st, *path, file.Name(), status)
		if err != nil {
			log.Printf("Error importing %s: %v", file.Name(), err)
			continue
		}
		log.Printf("Imported %q from %s", title, file.Name())
	}
}

// importFile creates one post from a markdown file and returns its title.
func importFile(st *store.Store, dir, name string, status model.Status) (string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	title := strings.TrimSuffix(name, ".md")
	content := string(raw)

	if frontMatter, err := util.GetFrontMatter(raw); err == nil && frontMatter.Title != "" {
		title = frontMatter.Title
	}

	post := st.Create(store.Fields{
		Title:   &title,
		Content: &content,
		Status:  &status,
	})
	return post.Title, nil
}

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
