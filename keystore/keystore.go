// Package keystore reads and writes the key directory produced by setup.
package keystore

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/logger"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/sovchain/mint-verifier/circuit"
	"github.com/sovchain/mint-verifier/onchain"
	"github.com/sovchain/mint-verifier/types"
)

const (
	ConstraintsFile         = "r1cs.bin"
	ProvingKeyFile          = "pk.bin"
	VerifyingKeyFile        = "vk.bin"
	OnChainVerifyingKeyFile = "vk.move.bin"
	SolidityFile            = "GrothVerifier.sol"
	ManifestFile            = "manifest.json"
)

// Manifest describes the keys in a directory.
type Manifest struct {
	Version      string        `json:"version"`
	Constraints  int           `json:"constraints,omitempty"`
	PublicInputs int           `json:"publicInputs"`
	VKSha256     hexutil.Bytes `json:"vkSha256"`
}

// Save writes the constraint system, both keys, the on-chain key, the Solidity
// verifier and the manifest into dir.
func Save(dir string, cs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	log := logger.Logger()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return types.WrapIO(dir, err)
	}

	log.Info().Msg("Saving circuit constraints to " + filepath.Join(dir, ConstraintsFile))
	start := time.Now()
	if err := writeFile(filepath.Join(dir, ConstraintsFile), cs); err != nil {
		return err
	}
	log.Debug().Msg("Successfully saved circuit constraints, time: " + time.Since(start).String())

	log.Info().Msg("Saving proving key to " + filepath.Join(dir, ProvingKeyFile))
	start = time.Now()
	if err := writeFile(filepath.Join(dir, ProvingKeyFile), pk); err != nil {
		return err
	}
	log.Debug().Msg("Successfully saved proving key, time: " + time.Since(start).String())

	manifest, err := SaveVerifyingKey(dir, vk)
	if err != nil {
		return err
	}
	manifest.Constraints = cs.GetNbConstraints()
	return writeManifest(dir, manifest)
}

// SaveVerifyingKey writes vk.bin, vk.move.bin, the Solidity verifier and a manifest
// without the constraint count.
func SaveVerifyingKey(dir string, vk groth16.VerifyingKey) (*Manifest, error) {
	log := logger.Logger()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, types.WrapIO(dir, err)
	}

	var buf bytes.Buffer
	if _, err := vk.WriteTo(&buf); err != nil {
		return nil, types.WrapSerialization("verifying key", err)
	}
	log.Info().Msg("Saving verifying key to " + filepath.Join(dir, VerifyingKeyFile))
	if err := os.WriteFile(filepath.Join(dir, VerifyingKeyFile), buf.Bytes(), 0644); err != nil {
		return nil, types.WrapIO(filepath.Join(dir, VerifyingKeyFile), err)
	}
	digest := sha256.Sum256(buf.Bytes())

	onchainVK, err := onchain.VerifyingKeyFromGnark(vk)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, OnChainVerifyingKeyFile), onchainVK.Bytes(), 0644); err != nil {
		return nil, types.WrapIO(filepath.Join(dir, OnChainVerifyingKeyFile), err)
	}

	start := time.Now()
	if err := ExportSolidityFile(filepath.Join(dir, SolidityFile), vk); err != nil {
		return nil, err
	}
	log.Info().Msg("Successfully saved solidity file, time: " + time.Since(start).String())

	manifest := &Manifest{
		Version:      circuit.Version,
		PublicInputs: onchainVK.NumPublicInputs(),
		VKSha256:     digest[:],
	}
	if err := writeManifest(dir, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func ExportSolidityFile(path string, vk groth16.VerifyingKey) error {
	contractFile, err := os.Create(path)
	if err != nil {
		return types.WrapIO(path, err)
	}
	defer contractFile.Close()

	w := bufio.NewWriter(contractFile)
	if err := ExportSolidity(w, vk); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return types.WrapIO(path, err)
	}
	return nil
}

// ExportSolidity renders the EVM verifier contract for vk.
func ExportSolidity(w io.Writer, vk groth16.VerifyingKey) error {
	if err := vk.ExportSolidity(w); err != nil {
		log := logger.Logger()
		log.Err(err).Msg("failed to export verifying key to solidity")
		return fmt.Errorf("failed to export solidity verifier: %w", err)
	}
	return nil
}

// LoadProverData reads the constraint system and proving key from dir.
func LoadProverData(dir string) (constraint.ConstraintSystem, groth16.ProvingKey, error) {
	log := logger.Logger()
	if _, err := checkManifest(dir); err != nil {
		return nil, nil, err
	}

	cs := groth16.NewCS(ecc.BN254)
	start := time.Now()
	if err := readFile(filepath.Join(dir, ConstraintsFile), cs); err != nil {
		return nil, nil, err
	}
	log.Debug().Msg("Successfully loaded constraint system, time: " + time.Since(start).String())

	pk := groth16.NewProvingKey(ecc.BN254)
	start = time.Now()
	if err := readFile(filepath.Join(dir, ProvingKeyFile), pk); err != nil {
		return nil, nil, err
	}
	log.Debug().Msg("Successfully loaded proving key, time: " + time.Since(start).String())

	return cs, pk, nil
}

// LoadVerifyingKey reads vk.bin from dir and checks it against the manifest digest
// when a manifest is present.
func LoadVerifyingKey(dir string) (groth16.VerifyingKey, error) {
	log := logger.Logger()
	manifest, err := checkManifest(dir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, VerifyingKeyFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapIO(path, err)
	}
	if manifest != nil {
		digest := sha256.Sum256(raw)
		if !bytes.Equal(digest[:], manifest.VKSha256) {
			return nil, fmt.Errorf("%w: %s does not match manifest digest", types.ErrSerialization, path)
		}
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	start := time.Now()
	if _, err := vk.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, types.WrapSerialization("verifying key", err)
	}
	log.Debug().Msg("Successfully loaded verifying key, time: " + time.Since(start).String())
	return vk, nil
}

// ReadManifest returns the manifest of dir, or nil if the directory has none.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, types.WrapIO(path, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, types.WrapSerialization("manifest", err)
	}
	return &manifest, nil
}

func checkManifest(dir string) (*Manifest, error) {
	manifest, err := ReadManifest(dir)
	if err != nil || manifest == nil {
		return manifest, err
	}
	if manifest.Version != circuit.Version {
		return nil, fmt.Errorf("%w: keys in %s are for circuit %q, expected %q", types.ErrSerialization, dir, manifest.Version, circuit.Version)
	}
	return manifest, nil
}

func writeManifest(dir string, manifest *Manifest) error {
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return types.WrapSerialization("manifest", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return types.WrapIO(path, err)
	}
	return nil
}

func writeFile(path string, src io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return types.WrapIO(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := src.WriteTo(w); err != nil {
		return types.WrapSerialization(filepath.Base(path), err)
	}
	if err := w.Flush(); err != nil {
		return types.WrapIO(path, err)
	}
	return nil
}

func readFile(path string, dst io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return types.WrapIO(path, err)
	}
	defer f.Close()

	if _, err := dst.ReadFrom(bufio.NewReader(f)); err != nil {
		return types.WrapSerialization(filepath.Base(path), err)
	}
	return nil
}
