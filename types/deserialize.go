package types

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// WitnessRaw is the JSON form of a witness. A missing blinding is sampled fresh.
type WitnessRaw struct {
	Amount     uint64        `json:"amount"`
	Blinding   hexutil.Bytes `json:"blinding,omitempty"`
	Pubkey     hexutil.Bytes `json:"pubkey"`
	DailyLimit uint64        `json:"daily_limit"`
}

func (raw *WitnessRaw) Witness() (*Witness, error) {
	if len(raw.Pubkey) != 32 {
		return nil, fmt.Errorf("%w: pubkey must be 32 bytes, got %d", ErrSerialization, len(raw.Pubkey))
	}
	var pubkey [32]byte
	copy(pubkey[:], raw.Pubkey)

	switch len(raw.Blinding) {
	case 0:
		return NewWitness(raw.Amount, pubkey, raw.DailyLimit)
	case 32:
		w := &Witness{Amount: raw.Amount, Pubkey: pubkey, DailyLimit: raw.DailyLimit}
		copy(w.Blinding[:], raw.Blinding)
		return w, nil
	default:
		return nil, fmt.Errorf("%w: blinding must be 32 bytes, got %d", ErrSerialization, len(raw.Blinding))
	}
}

func ReadWitness(path string) (*Witness, error) {
	rawBytes, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ReadWitnessFromRequest(rawBytes)
}

func ReadWitnessFromRequest(data []byte) (*Witness, error) {
	var raw WitnessRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, WrapSerialization("witness", err)
	}
	return raw.Witness()
}

func ReadProofBundle(path string) (*ProofBundle, error) {
	rawBytes, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ReadProofBundleFromRequest(rawBytes)
}

func ReadProofBundleFromRequest(data []byte) (*ProofBundle, error) {
	var bundle ProofBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, WrapSerialization("proof bundle", err)
	}
	return &bundle, nil
}

func readFile(path string) ([]byte, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, WrapIO(path, err)
	}
	defer jsonFile.Close()

	rawBytes, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, WrapIO(path, err)
	}
	return rawBytes, nil
}
