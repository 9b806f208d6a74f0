package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
)

var noncePrefix = []byte("nonce/")

// BadgerStore persists nonces in BadgerDB. Advance runs in a single read-write
// transaction; a write lock serializes concurrent advances so they never conflict.
type BadgerStore struct {
	db *badgerdb.DB
	mu sync.Mutex
}

// OpenBadger opens or creates a store in dir. An empty dir opens an in-memory store.
func OpenBadger(dir string, log zerolog.Logger) (*BadgerStore, error) {
	var opts badgerdb.Options
	if dir == "" {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create replay store directory: %w", err)
		}
		opts = badgerdb.DefaultOptions(dir).WithSyncWrites(true)
	}
	opts.Logger = &badgerLogger{log: log.With().Str("component", "badger").Logger()}
	opts.BlockCacheSize = 16 << 20
	opts.IndexCacheSize = 16 << 20

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func nonceKey(authority [32]byte) []byte {
	return append(append([]byte{}, noncePrefix...), authority[:]...)
}

func (s *BadgerStore) Advance(authority [32]byte, nonce uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nonceKey(authority)
	return s.db.Update(func(txn *badgerdb.Txn) error {
		last, ok, err := get(txn, key)
		if err != nil {
			return err
		}
		if ok && nonce <= last {
			return replayError(authority, nonce, last)
		}
		var value [8]byte
		binary.BigEndian.PutUint64(value[:], nonce)
		return txn.Set(key, value[:])
	})
}

func (s *BadgerStore) Last(authority [32]byte) (uint64, bool, error) {
	var (
		last uint64
		ok   bool
	)
	err := s.db.View(func(txn *badgerdb.Txn) error {
		var err error
		last, ok, err = get(txn, nonceKey(authority))
		return err
	})
	return last, ok, err
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func get(txn *badgerdb.Txn, key []byte) (uint64, bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("badger get failed: %w", err)
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return 0, false, fmt.Errorf("badger read failed: %w", err)
	}
	if len(value) != 8 {
		return 0, false, fmt.Errorf("corrupt nonce record: %d bytes", len(value))
	}
	return binary.BigEndian.Uint64(value), true, nil
}

type badgerLogger struct {
	log zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
