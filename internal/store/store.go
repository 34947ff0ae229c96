// Package store wraps an embedded BadgerDB instance behind the small
// string get/set/delete surface the tracker needs. Keys are plain
// strings, values are raw strings (JSON or free text); interpretation
// is left to the caller.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Store is the persistence contract used by the tracker. A missing key
// is reported through the bool, never as an error.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// KV is a BadgerDB-backed Store.
type KV struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens (creating if needed) a persistent store at dir. Writes are
// synchronous; this is the app's only durability mechanism.
func Open(dir string, logger *slog.Logger) (*KV, error) {
	if dir == "" {
		return nil, errors.New("store: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir %s: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir).WithSyncWrites(true)
	return open(opts, logger)
}

// OpenInMemory opens a throwaway in-memory store. Used by tests so the
// full engine runs against the real store implementation.
func OpenInMemory(logger *slog.Logger) (*KV, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*KV, error) {
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &KV{db: db, logger: logger}, nil
}

// Get returns the value stored under key. The bool is false when the
// key is absent.
func (s *KV) Get(key string) (string, bool) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) && s.logger != nil {
			s.logger.Warn("store read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return "", false
	}
	return string(val), true
}

// Set durably writes value under key.
func (s *KV) Set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("store: set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *KV) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

// Close flushes and closes the underlying database.
func (s *KV) Close() error {
	return s.db.Close()
}
