package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	// PublicInputsSize is the encoded length: 4×32 bytes + 2×8 bytes.
	PublicInputsSize = 144

	// NumPublicInputs is the number of field elements the verifier consumes.
	NumPublicInputs = 6
)

// Commitment holds the affine coordinates of amount·G + blinding·H, little-endian.
type Commitment struct {
	X [32]byte
	Y [32]byte
}

// PublicInputs is the statement of a mint proof. Field order is part of the wire format.
type PublicInputs struct {
	CommitmentX   [32]byte
	CommitmentY   [32]byte
	AuthorityHash [32]byte
	LimitHash     [32]byte
	Nonce         uint64
	Epoch         uint64
}

// DerivePublicInputs binds a witness to a commitment and the anti-replay fields.
func DerivePublicInputs(w *Witness, commitment Commitment, nonce, epoch uint64) *PublicInputs {
	return &PublicInputs{
		CommitmentX:   commitment.X,
		CommitmentY:   commitment.Y,
		AuthorityHash: w.AuthorityHash(),
		LimitHash:     w.LimitHash(),
		Nonce:         nonce,
		Epoch:         epoch,
	}
}

func (p *PublicInputs) Commitment() Commitment {
	return Commitment{X: p.CommitmentX, Y: p.CommitmentY}
}

// Bytes encodes the inputs into the fixed 144-byte little-endian layout.
func (p *PublicInputs) Bytes() []byte {
	buf := make([]byte, 0, PublicInputsSize)
	buf = append(buf, p.CommitmentX[:]...)
	buf = append(buf, p.CommitmentY[:]...)
	buf = append(buf, p.AuthorityHash[:]...)
	buf = append(buf, p.LimitHash[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, p.Nonce)
	buf = binary.LittleEndian.AppendUint64(buf, p.Epoch)
	return buf
}

// PublicInputsFromBytes decodes the 144-byte layout. Any other length is rejected.
func PublicInputsFromBytes(b []byte) (*PublicInputs, error) {
	if len(b) != PublicInputsSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicInput, PublicInputsSize, len(b))
	}
	p := new(PublicInputs)
	copy(p.CommitmentX[:], b[0:32])
	copy(p.CommitmentY[:], b[32:64])
	copy(p.AuthorityHash[:], b[64:96])
	copy(p.LimitHash[:], b[96:128])
	p.Nonce = binary.LittleEndian.Uint64(b[128:136])
	p.Epoch = binary.LittleEndian.Uint64(b[136:144])
	return p, nil
}

// FieldElements maps the inputs to the verifier's input vector. Byte segments are
// reduced little-endian mod r, integers are embedded directly. The circuit assignment
// is built from the same values.
func (p *PublicInputs) FieldElements() [NumPublicInputs]fr.Element {
	var out [NumPublicInputs]fr.Element
	out[0] = LittleEndianToElement(p.CommitmentX)
	out[1] = LittleEndianToElement(p.CommitmentY)
	out[2] = LittleEndianToElement(p.AuthorityHash)
	out[3] = LittleEndianToElement(p.LimitHash)
	out[4].SetUint64(p.Nonce)
	out[5].SetUint64(p.Epoch)
	return out
}

// BigInts returns FieldElements as canonical big integers.
func (p *PublicInputs) BigInts() [NumPublicInputs]*big.Int {
	elements := p.FieldElements()
	var out [NumPublicInputs]*big.Int
	for i := range elements {
		out[i] = elements[i].BigInt(new(big.Int))
	}
	return out
}

// Canonical returns a copy whose 32-byte segments hold the reduced representatives.
// Encodings that map to the same field elements have the same canonical form.
func (p *PublicInputs) Canonical() *PublicInputs {
	fe := p.FieldElements()
	return &PublicInputs{
		CommitmentX:   ElementToLittleEndian(&fe[0]),
		CommitmentY:   ElementToLittleEndian(&fe[1]),
		AuthorityHash: ElementToLittleEndian(&fe[2]),
		LimitHash:     ElementToLittleEndian(&fe[3]),
		Nonce:         p.Nonce,
		Epoch:         p.Epoch,
	}
}

func (p *PublicInputs) Equal(o *PublicInputs) bool {
	return bytes.Equal(p.Bytes(), o.Bytes())
}
