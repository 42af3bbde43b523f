// Package storage persists named JSON documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	KeyEmployees     = "employees"
	KeyProjects      = "projects"
	KeyChatHistory   = "chat_history"
	KeyKnowledgeBase = "knowledge_base"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store loads and saves whole documents by key. Load reports false when the key was never saved.
type Store interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Close() error
}

type Config struct {
	Backend    string
	Dir        string
	SQLitePath string
}

// Open picks the backend named in cfg. An empty backend means json.
func Open(cfg Config) (Store, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "."
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendJSON:
		return NewJSONStore(dir)
	case BackendSQLite:
		path := strings.TrimSpace(cfg.SQLitePath)
		if path == "" {
			path = filepath.Join(dir, "resource-allocator.db")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
