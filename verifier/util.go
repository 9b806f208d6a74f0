package verifier

import (
	"github.com/consensys/gnark/logger"

	"github.com/sovchain/mint-verifier/keystore"
)

// Load reads the verifying key from a key directory and prepares it.
func Load(dir string) (*Verifier, error) {
	vk, err := keystore.LoadVerifyingKey(dir)
	if err != nil {
		return nil, err
	}
	v, err := New(vk)
	if err != nil {
		return nil, err
	}
	log := logger.Logger()
	log.Debug().Msg("Prepared verifying key from " + dir)
	return v, nil
}

// Save writes vk.bin, vk.move.bin and the Solidity verifier to dir.
func (v *Verifier) Save(dir string) error {
	_, err := keystore.SaveVerifyingKey(dir, v.vk)
	return err
}
