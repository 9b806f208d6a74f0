package types

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func onesPubkey() [32]byte {
	var pk [32]byte
	for i := range pk {
		pk[i] = 1
	}
	return pk
}

func TestWitnessValidate(t *testing.T) {
	cases := []struct {
		name   string
		amount uint64
		limit  uint64
		ok     bool
	}{
		{"within limit", 1_000_000, 10_000_000, true},
		{"equal to limit", 10, 10, true},
		{"one", 1, 1, true},
		{"zero amount", 0, 10, false},
		{"over limit", 11, 10, false},
		{"zero limit", 1, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWitness(tc.amount, onesPubkey(), tc.limit)
			require.NoError(t, err)
			err = w.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidWitness))
		})
	}
}

func TestNewWitnessFreshBlinding(t *testing.T) {
	a, err := NewWitness(5, onesPubkey(), 10)
	require.NoError(t, err)
	b, err := NewWitness(5, onesPubkey(), 10)
	require.NoError(t, err)
	require.NotEqual(t, a.Blinding, b.Blinding)
}

func TestAuthorityHashDeterministic(t *testing.T) {
	pk := onesPubkey()
	h1 := ComputeAuthorityHash(pk)
	h2 := ComputeAuthorityHash(pk)
	require.Equal(t, h1, h2)
	require.Equal(t, sha256.Sum256(pk[:]), h1)

	pk[7] ^= 0x01
	require.NotEqual(t, h1, ComputeAuthorityHash(pk))
}

func TestLimitHashPadding(t *testing.T) {
	padded := PadLimit(0x0102030405060708)
	require.Len(t, padded, 32)
	require.Equal(t, make([]byte, 24), padded[:24])
	require.Equal(t, "0102030405060708", hex.EncodeToString(padded[24:]))

	require.Equal(t, ComputeLimitHash(10_000_000), ComputeLimitHash(10_000_000))
	require.NotEqual(t, ComputeLimitHash(10_000_000), ComputeLimitHash(10_000_001))
}

func TestBlindingScalarReduced(t *testing.T) {
	var w Witness
	for i := range w.Blinding {
		w.Blinding[i] = 0xff
	}
	s := w.BlindingScalar()
	require.Equal(t, -1, s.Cmp(fr.Modulus()))

	max := new(big.Int).Lsh(big.NewInt(1), 256)
	max.Sub(max, big.NewInt(1))
	require.Equal(t, new(big.Int).Mod(max, fr.Modulus()), s)
}

func TestLittleEndianElementRoundTrip(t *testing.T) {
	var e fr.Element
	e.SetUint64(0xdeadbeef)
	le := ElementToLittleEndian(&e)
	require.Equal(t, byte(0xef), le[0])
	require.Equal(t, byte(0xde), le[3])
	back := LittleEndianToElement(le)
	require.True(t, back.Equal(&e))
}

func TestReadWitnessFromRequest(t *testing.T) {
	pk := hex.EncodeToString(make([]byte, 32))
	w, err := ReadWitnessFromRequest([]byte(`{"amount":5,"pubkey":"0x` + pk + `","daily_limit":9}`))
	require.NoError(t, err)
	require.Equal(t, uint64(5), w.Amount)
	require.Equal(t, uint64(9), w.DailyLimit)
	require.NotEqual(t, [32]byte{}, w.Blinding)

	_, err = ReadWitnessFromRequest([]byte(`{"amount":5,"pubkey":"0x0102","daily_limit":9}`))
	require.ErrorIs(t, err, ErrSerialization)

	_, err = ReadWitnessFromRequest([]byte(`{"amount":`))
	require.ErrorIs(t, err, ErrSerialization)
}
