package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWitness is returned when a witness violates the mint policy.
	ErrInvalidWitness = errors.New("invalid witness")

	// ErrProving is returned on constraint-system or randomness failures while proving.
	ErrProving = errors.New("proof generation failed")

	// ErrVerificationFailed marks a well-formed proof that does not satisfy the relation.
	// Verify itself reports this as (false, nil); the sentinel is for callers that
	// need to carry the rejection as an error value.
	ErrVerificationFailed = errors.New("proof verification failed")

	// ErrSerialization is returned for malformed bytes at any codec boundary.
	ErrSerialization = errors.New("serialization error")

	// ErrIO is returned when key files cannot be read or written.
	ErrIO = errors.New("io error")

	// ErrInvalidPublicInput is returned for public input encodings of the wrong length.
	ErrInvalidPublicInput = errors.New("invalid public input")
)

func WrapInvalidWitness(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidWitness, reason)
}

func WrapProving(err error) error {
	return fmt.Errorf("%w: %w", ErrProving, err)
}

func WrapSerialization(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSerialization, what, err)
}

func WrapIO(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
}
