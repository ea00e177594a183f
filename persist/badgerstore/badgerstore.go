// Package badgerstore provides a durable navigator.Bridge backed by
// BadgerDB, an embedded key-value store with low-latency access. Scope
// history written here survives process restarts: a history-preserving
// scope remounted with the same identity restores its stack from disk.
package badgerstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Config holds configuration for a Bridge.
type Config struct {
	// Path is the directory for BadgerDB files. Required unless InMemory.
	Path string

	// InMemory enables in-memory mode (no disk persistence). Useful for
	// testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// KeyPrefix namespaces all scope identities within the database, so a
	// Bridge can share a DB with other subsystems. Default "nav/".
	KeyPrefix string

	// Logger receives storage errors. Bridge write failures are logged and
	// swallowed; navigation must never fail on persistence. If nil, errors
	// are dropped.
	Logger *zap.Logger
}

// DefaultConfig returns production defaults: durable, synchronous writes,
// "nav/" key prefix.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true, KeyPrefix: "nav/"}
}

// InMemoryConfig returns a configuration for tests: no disk I/O.
func InMemoryConfig() Config {
	return Config{InMemory: true, KeyPrefix: "nav/"}
}

// Bridge is a navigator.Bridge persisting scope history in BadgerDB.
type Bridge struct {
	db     *badger.DB
	prefix string
	logger *zap.Logger
}

// Open creates a Bridge with the given configuration. The caller must call
// Close when done.
func Open(cfg Config) (*Bridge, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerstore: path is required for a persistent bridge")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("badgerstore: create directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open database: %w", err)
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "nav/"
	}
	return &Bridge{db: db, prefix: prefix, logger: cfg.Logger}, nil
}

// ReadState returns the bytes stored for identity, or ok=false when the key
// is absent or the read fails. Reads never surface errors to the navigation
// core; a broken store behaves like an empty one.
func (b *Bridge) ReadState(identity string) ([]byte, bool) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(identity))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) && b.logger != nil {
			b.logger.Warn("badgerstore read failed",
				zap.String("identity", identity), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// WriteState stores data under identity. Failures are logged, never
// returned.
func (b *Bridge) WriteState(identity string, data []byte) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(identity), data)
	})
	if err != nil && b.logger != nil {
		b.logger.Warn("badgerstore write failed",
			zap.String("identity", identity), zap.Error(err))
	}
}

// Delete removes the state for identity, if any.
func (b *Bridge) Delete(identity string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key(identity))
	})
}

// Close closes the underlying database.
func (b *Bridge) Close() error {
	return b.db.Close()
}

func (b *Bridge) key(identity string) []byte {
	return []byte(b.prefix + identity)
}

// badgerLogger adapts zap.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *zap.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
