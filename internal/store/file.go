package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/util"
	"github.com/jpreston/bloggerpro/internal/util/compression"
)

// FilePersistence keeps the snapshot in a single JSON file, optionally
// compressed. This is the default backend.
type FilePersistence struct { // implements Persistence
	path       string
	compressor compression.Compressor

	// Hash of the last written snapshot, used to skip redundant rewrites.
	lastHash string
}

func NewFilePersistence(path string, compressor compression.Compressor) *FilePersistence {
	if compressor == nil {
		compressor = compression.NopCompressor{}
	}
	return &FilePersistence{
		path:       path,
		compressor: compressor,
	}
}

func (f *FilePersistence) Load() ([]model.Post, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	data, err := f.compressor.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("error decompressing snapshot: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("error parsing snapshot: %w", err)
	}

	f.lastHash = util.ContentHash(data)
	return posts, nil
}

func (f *FilePersistence) Save(posts []model.Post) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing snapshot: %w", err)
	}

	hash := util.ContentHash(data)
	if hash == f.lastHash {
		return nil
	}

	compressed, err := f.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("error compressing snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("error creating snapshot directory: %w", err)
	}

	// Write to a sibling temp file and rename so a crash mid-write cannot
	// destroy the previous snapshot.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("error replacing snapshot: %w", err)
	}

	f.lastHash = hash
	return nil
}
