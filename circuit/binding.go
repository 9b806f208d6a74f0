package circuit

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/sovchain/mint-verifier/sha256"
)

// AssertAuthorityBinding enforces SHA-256(pubkey) = hash.
func AssertAuthorityBinding(api frontend.API, hasher *sha256.Chip, pubkey []frontend.Variable, hash frontend.Variable) {
	digest := hasher.Hash(hasher.ToBytes(pubkey))
	api.AssertIsEqual(packDigest(api, digest), hash)
}

// AssertLimitBinding enforces SHA-256(pad32(limit)) = hash, rebuilding the
// preimage from the already range-checked limit bits.
func AssertLimitBinding(api frontend.API, hasher *sha256.Chip, limitBits []frontend.Variable, hash frontend.Variable) {
	digest := hasher.Hash(padLimit(limitBits))
	api.AssertIsEqual(packDigest(api, digest), hash)
}

// padLimit lays out 24 zero bytes followed by the 8 limit bytes, most significant first.
func padLimit(limitBits []frontend.Variable) []sha256.Byte {
	preimage := make([]sha256.Byte, 32)
	for i := 0; i < 24; i++ {
		preimage[i] = sha256.ConstByte(0)
	}
	for k := 0; k < 8; k++ {
		copy(preimage[24+k][:], limitBits[8*(7-k):8*(7-k)+8])
	}
	return preimage
}

// packDigest reads the digest as a little-endian integer, reduced in the field.
func packDigest(api frontend.API, digest [sha256.Size]sha256.Byte) frontend.Variable {
	modulus := api.Compiler().Field()
	var acc frontend.Variable = 0
	weight := big.NewInt(1)
	for i := range digest {
		for _, bit := range digest[i] {
			acc = api.Add(acc, api.Mul(bit, new(big.Int).Mod(weight, modulus)))
			weight.Lsh(weight, 1)
		}
	}
	return acc
}
