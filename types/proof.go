package types

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ProofSize is the compressed size of A∈G1 ‖ B∈G2 ‖ C∈G1 on BN254.
const ProofSize = 32 + 64 + 32

// Proof is an opaque, fixed-size Groth16 proof.
type Proof struct {
	raw [ProofSize]byte
}

// ProofFromBytes copies b into a Proof. Truncated or oversized input is rejected;
// point validity is checked when the proof is decoded for verification.
func ProofFromBytes(b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, fmt.Errorf("%w: proof must be %d bytes, got %d", ErrSerialization, ProofSize, len(b))
	}
	p := new(Proof)
	copy(p.raw[:], b)
	return p, nil
}

func (p *Proof) Bytes() []byte {
	out := make([]byte, ProofSize)
	copy(out, p.raw[:])
	return out
}

func (p *Proof) Size() int {
	return len(p.raw)
}

// ProofBundle is the JSON envelope a prover hands to a verifier.
type ProofBundle struct {
	Proof        hexutil.Bytes `json:"proof"`
	PublicInputs hexutil.Bytes `json:"publicInputs"`
}

func NewProofBundle(proof *Proof, publicInputs *PublicInputs) *ProofBundle {
	return &ProofBundle{
		Proof:        proof.Bytes(),
		PublicInputs: publicInputs.Bytes(),
	}
}

func (b *ProofBundle) Decode() (*Proof, *PublicInputs, error) {
	proof, err := ProofFromBytes(b.Proof)
	if err != nil {
		return nil, nil, err
	}
	publicInputs, err := PublicInputsFromBytes(b.PublicInputs)
	if err != nil {
		return nil, nil, err
	}
	return proof, publicInputs, nil
}

func (b *ProofBundle) Export(file string) error {
	proofFile, err := os.Create(file)
	if err != nil {
		return WrapIO(file, err)
	}
	defer proofFile.Close()

	jsonString, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal proof bundle: %w", err)
	}
	if _, err = proofFile.Write(jsonString); err != nil {
		return WrapIO(file, err)
	}
	return nil
}
