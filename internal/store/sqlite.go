package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jpreston/bloggerpro/internal/db"
	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/util/compression"
)

// SnapshotKey is the storage key the whole post list lives under.
const SnapshotKey = "blogger_pro_posts"

// SQLitePersistence stores the snapshot as a single compressed row in the
// key/value storage table.
type SQLitePersistence struct { // implements Persistence
	db         db.DB
	compressor compression.Compressor
}

func NewSQLitePersistence(database db.DB) *SQLitePersistence {
	return &SQLitePersistence{
		db:         database,
		compressor: compression.ZstdCompressor{},
	}
}

func (s *SQLitePersistence) Load() ([]model.Post, error) {
	row := s.db.Get().QueryRow(`SELECT value FROM storage WHERE key = ?`, SnapshotKey)

	var compressed []byte
	if err := row.Scan(&compressed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no snapshot stored: %w", err)
		}
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	data, err := s.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing snapshot: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("error parsing snapshot: %w", err)
	}
	return posts, nil
}

func (s *SQLitePersistence) Save(posts []model.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("error serializing snapshot: %w", err)
	}

	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("error compressing snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO storage (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SnapshotKey, compressed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving snapshot: %w", err)
	}
	return nil
}
