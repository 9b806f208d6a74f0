package circuit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"

	"github.com/sovchain/mint-verifier/pedersen"
	"github.com/sovchain/mint-verifier/sha256"
)

// Isolated circuits for costing each sub-relation. Inputs a gadget borrows from
// another sub-relation (the amount bits, the limit bits) are decomposed locally.

type commitmentGadget struct {
	X, Y     frontend.Variable `gnark:",public"`
	Amount   frontend.Variable
	Blinding frontend.Variable
}

func (c *commitmentGadget) Define(api frontend.API) error {
	chip, err := pedersen.NewChip(api)
	if err != nil {
		return err
	}
	amountBits := RangeCheck64(api, c.Amount)
	chip.AssertCommitment(c.X, c.Y, amountBits, bits.ToBinary(api, c.Blinding))
	return nil
}

type rangeGadget struct {
	Amount, DailyLimit frontend.Variable
}

func (c *rangeGadget) Define(api frontend.API) error {
	RangeCheck64(api, c.Amount)
	RangeCheck64(api, c.DailyLimit)
	return nil
}

type policyGadget struct {
	Amount, DailyLimit frontend.Variable
}

func (c *policyGadget) Define(api frontend.API) error {
	AssertPolicy(api, c.Amount, c.DailyLimit)
	return nil
}

type authorityGadget struct {
	Hash   frontend.Variable `gnark:",public"`
	Pubkey [32]frontend.Variable
}

func (c *authorityGadget) Define(api frontend.API) error {
	AssertAuthorityBinding(api, sha256.NewChip(api), c.Pubkey[:], c.Hash)
	return nil
}

type limitGadget struct {
	Hash       frontend.Variable `gnark:",public"`
	DailyLimit frontend.Variable
}

func (c *limitGadget) Define(api frontend.API) error {
	AssertLimitBinding(api, sha256.NewChip(api), RangeCheck64(api, c.DailyLimit), c.Hash)
	return nil
}

type miscGadget struct {
	Nonce, Epoch frontend.Variable `gnark:",public"`
}

func (c *miscGadget) Define(api frontend.API) error {
	RangeCheck64(api, c.Nonce)
	RangeCheck64(api, c.Epoch)
	return nil
}
