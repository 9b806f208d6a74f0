// Package replay enforces strictly increasing nonces per minting authority.
package replay

import (
	"errors"
	"fmt"
	"sync"
)

// ErrReplay is returned when a nonce is not above the last accepted nonce.
var ErrReplay = errors.New("nonce replayed")

// Store records the highest accepted nonce per authority hash.
type Store interface {
	// Advance accepts nonce if it is greater than the last accepted nonce for
	// authority, and records it. Otherwise it returns ErrReplay.
	Advance(authority [32]byte, nonce uint64) error
	// Last returns the last accepted nonce, if any.
	Last(authority [32]byte) (uint64, bool, error)
	Close() error
}

func replayError(authority [32]byte, nonce, last uint64) error {
	return fmt.Errorf("%w: authority %x nonce %d, last accepted %d", ErrReplay, authority[:8], nonce, last)
}

type MemoryStore struct {
	mu   sync.Mutex
	last map[[32]byte]uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{last: make(map[[32]byte]uint64)}
}

func (s *MemoryStore) Advance(authority [32]byte, nonce uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.last[authority]; ok && nonce <= last {
		return replayError(authority, nonce, last)
	}
	s.last[authority] = nonce
	return nil
}

func (s *MemoryStore) Last(authority [32]byte) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.last[authority]
	return last, ok, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
