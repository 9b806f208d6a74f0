package types

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Witness is the private input of a mint proof. It lives only in prover memory.
type Witness struct {
	Amount     uint64
	Blinding   [32]byte
	Pubkey     [32]byte
	DailyLimit uint64
}

// NewWitness creates a witness with a fresh random blinding factor.
func NewWitness(amount uint64, pubkey [32]byte, dailyLimit uint64) (*Witness, error) {
	w := &Witness{
		Amount:     amount,
		Pubkey:     pubkey,
		DailyLimit: dailyLimit,
	}
	if _, err := rand.Read(w.Blinding[:]); err != nil {
		return nil, fmt.Errorf("failed to sample blinding: %w", err)
	}
	return w, nil
}

// Validate is a fast-fail policy check. The circuit enforces the same bounds.
func (w *Witness) Validate() error {
	if w.Amount == 0 {
		return WrapInvalidWitness("amount must be positive")
	}
	if w.Amount > w.DailyLimit {
		return WrapInvalidWitness(fmt.Sprintf("amount %d exceeds daily limit %d", w.Amount, w.DailyLimit))
	}
	return nil
}

// BlindingScalar interprets the blinding bytes as a little-endian integer reduced mod r.
func (w *Witness) BlindingScalar() *big.Int {
	e := LittleEndianToElement(w.Blinding)
	return e.BigInt(new(big.Int))
}

func (w *Witness) AuthorityHash() [32]byte {
	return ComputeAuthorityHash(w.Pubkey)
}

func (w *Witness) LimitHash() [32]byte {
	return ComputeLimitHash(w.DailyLimit)
}

// ComputeAuthorityHash returns SHA-256(pubkey).
func ComputeAuthorityHash(pubkey [32]byte) [32]byte {
	return sha256.Sum256(pubkey[:])
}

// ComputeLimitHash returns SHA-256 of the limit encoded as a 32-byte big-endian,
// zero-padded integer. The circuit rebuilds the same preimage from the limit bits.
func ComputeLimitHash(dailyLimit uint64) [32]byte {
	return sha256.Sum256(PadLimit(dailyLimit))
}

func PadLimit(dailyLimit uint64) []byte {
	padded := make([]byte, 32)
	binary.BigEndian.PutUint64(padded[24:], dailyLimit)
	return padded
}

// LittleEndianToElement reduces a 32-byte little-endian integer modulo r.
func LittleEndianToElement(le [32]byte) fr.Element {
	var be [32]byte
	for i := range le {
		be[31-i] = le[i]
	}
	var e fr.Element
	e.SetBigInt(new(big.Int).SetBytes(be[:]))
	return e
}

// ElementToLittleEndian is the inverse of LittleEndianToElement on canonical values.
func ElementToLittleEndian(e *fr.Element) [32]byte {
	be := e.Bytes()
	var le [32]byte
	for i := range be {
		le[31-i] = be[i]
	}
	return le
}
