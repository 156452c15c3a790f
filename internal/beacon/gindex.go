package beacon

import (
	"fmt"
	"math/bits"

	"github.com/berachain/beacon-ssz-proofs/internal/sszhash"
)

// StateFieldGIndex returns the generalized index of BeaconState field
// k within the state container's own tree: limit + k, where limit is
// next_pow2(BeaconStateFieldCount).
func StateFieldGIndex(fieldIndex int) uint64 {
	limit := sszhash.NextPow2(BeaconStateFieldCount)
	return limit + uint64(fieldIndex)
}

// appendBits concatenates nbits low-order bits of value onto g,
// MSB-first, the bit-concatenation used to compose a generalized
// index across nested trees (container -> list body -> vector leaf).
// It reports ErrInternalInvariant if appending would overflow g past
// 64 bits, since a generalized index this deep cannot be represented
// and indicates a bug in the caller's path arithmetic rather than bad
// input (validator/balance index range is already checked before
// appendBits is reached).
func appendBits(g, value uint64, nbits int) (uint64, error) {
	if nbits < 0 || bits.Len64(g)+nbits > 64 {
		return 0, fmt.Errorf("%w: generalized index path overflows 64 bits", ErrInternalInvariant)
	}
	mask := (uint64(1) << uint(nbits)) - 1
	return (g << uint(nbits)) | (value & mask), nil
}

// ValidatorGIndex computes the generalized index of validator n's
// full record root within the mutated BeaconState tree: the
// validators field's node, one bit descending into the list body (the
// body root is the left child of the field's list node; the right
// child is the length mix-in), then n's path through the depth-40
// virtual vector the list rule merkleizes the body as.
func ValidatorGIndex(n uint64) (uint64, error) {
	if n >= ValidatorRegistryLimit {
		return 0, fmt.Errorf("%w: validator index %d exceeds registry limit", ErrInvalidInput, n)
	}
	depth := sszhash.TreeDepth(ValidatorsBodyLimit())
	g := StateFieldGIndex(FieldValidators)
	g, err := appendBits(g, 0, 1)
	if err != nil {
		return 0, err
	}
	g, err = appendBits(g, n, depth)
	if err != nil {
		return 0, err
	}
	return g, nil
}

// BalanceGIndex computes the generalized index of the 32-byte chunk
// holding validator n's balance (4 u64 balances packed per chunk), and
// the lane (0..3) within that chunk n occupies.
func BalanceGIndex(n uint64) (g uint64, lane int, err error) {
	if n >= ValidatorRegistryLimit {
		return 0, 0, fmt.Errorf("%w: validator index %d exceeds registry limit", ErrInvalidInput, n)
	}
	const perChunk = 4
	chunkIdx := n / perChunk
	lane = int(n % perChunk)

	depth := sszhash.TreeDepth(BalancesBodyLimit())
	g = StateFieldGIndex(FieldBalances)
	g, err = appendBits(g, 0, 1)
	if err != nil {
		return 0, 0, err
	}
	g, err = appendBits(g, chunkIdx, depth)
	if err != nil {
		return 0, 0, err
	}
	return g, lane, nil
}
