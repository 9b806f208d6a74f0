package replay

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	mem, err := OpenBadger("", zerolog.Nop())
	require.NoError(t, err)
	disk, err := OpenBadger(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		mem.Close()
		disk.Close()
	})
	return map[string]Store{
		"memory":          NewMemoryStore(),
		"badger-inmemory": mem,
		"badger-disk":     disk,
	}
}

func TestAdvance(t *testing.T) {
	alice := [32]byte{1}
	bob := [32]byte{2}
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Last(alice)
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, s.Advance(alice, 1))
			require.NoError(t, s.Advance(alice, 5))
			require.ErrorIs(t, s.Advance(alice, 5), ErrReplay)
			require.ErrorIs(t, s.Advance(alice, 4), ErrReplay)

			// Authorities are independent.
			require.NoError(t, s.Advance(bob, 1))

			last, ok, err := s.Last(alice)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, uint64(5), last)
		})
	}
}

func TestAdvanceFirstNonceZero(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Advance([32]byte{9}, 0))
			require.ErrorIs(t, s.Advance([32]byte{9}, 0), ErrReplay)
		})
	}
}

func TestConcurrentAdvanceAcceptsOnce(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var accepted atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := s.Advance([32]byte{7}, 42)
					if err == nil {
						accepted.Add(1)
						return
					}
					if !errors.Is(err, ErrReplay) {
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
			wg.Wait()
			require.Equal(t, int32(1), accepted.Load())
		})
	}
}

func TestBadgerPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadger(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Advance([32]byte{3}, 10))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	require.ErrorIs(t, s.Advance([32]byte{3}, 10), ErrReplay)
	require.NoError(t, s.Advance([32]byte{3}, 11))
}
