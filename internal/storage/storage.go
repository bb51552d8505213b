package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local cookie jar and key-value cache.

// Store persists cookies (with expiry) and opaque key-value entries.
type Store interface {
	Close() error

	GetCookie(name, path string) (string, bool, error)
	PutCookie(name, path, value string, expires time.Time) error
	DeleteCookie(name, path string) error

	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// Clear drops every key-value entry. Cookies are left alone.
	Clear() error
}

// Options controls housekeeping for concrete store implementations.
type Options struct {
	CleanupInterval time.Duration
	Now             func() time.Time
}

const defaultCleanupInterval = 12 * time.Hour

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func cookieKey(name, path string) string {
	if path == "" {
		path = "/"
	}
	return name + "\x00" + path
}

type noopStore struct{}

func (noopStore) Close() error                                      { return nil }
func (noopStore) GetCookie(string, string) (string, bool, error)    { return "", false, nil }
func (noopStore) PutCookie(string, string, string, time.Time) error { return nil }
func (noopStore) DeleteCookie(string, string) error                 { return nil }
func (noopStore) Get(string) ([]byte, bool, error)                  { return nil, false, nil }
func (noopStore) Put(string, []byte) error                          { return nil }
func (noopStore) Delete(string) error                               { return nil }
func (noopStore) Clear() error                                      { return nil }
