// Package sszhash implements the SSZ hash-primitive and merkleization
// engine used to compute Berachain beacon-state roots and inclusion
// proofs. It knows nothing about BeaconState's field layout; that
// belongs to package beacon. This package only knows how to turn
// chunk lists into roots, and roots into proofs.
package sszhash

import "crypto/sha256"

// Chunk is a single 32-byte SSZ tree leaf or internal node.
type Chunk = [32]byte

// MaxDepth bounds the zero-hash table. It comfortably covers the
// deepest tree this system builds: the 40-level validator registry
// vector (VALIDATOR_REGISTRY_LIMIT = 2^40).
const MaxDepth = 48

// zeroHashes[d] is the root of a perfect binary tree of depth d whose
// leaves are all the zero chunk. zeroHashes[0] is the zero chunk
// itself; zeroHashes[d+1] = Hash(zeroHashes[d], zeroHashes[d]).
var zeroHashes [MaxDepth + 1]Chunk

func init() {
	for d := 0; d < MaxDepth; d++ {
		zeroHashes[d+1] = Hash(zeroHashes[d], zeroHashes[d])
	}
}

// ZeroHash returns the precomputed zero-subtree root at the given
// depth.
func ZeroHash(depth int) Chunk {
	if depth < 0 {
		depth = 0
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	return zeroHashes[depth]
}

// Hash is the core compression function: SHA-256 over the 64-byte
// concatenation of two chunks.
func Hash(a, b Chunk) Chunk {
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	return sha256.Sum256(buf[:])
}

// MixInLength folds a little-endian 32-byte length value into a root,
// implementing the list length mix-in shared by merkleize_with_length
// and the list-body-vs-length step of the list merkleization rule.
func MixInLength(root Chunk, length uint64) Chunk {
	return Hash(root, Uint256LE(length))
}

// Uint256LE encodes a length or index as a little-endian 32-byte
// chunk, the "uint256_le" helper the mix-in steps fold in.
func Uint256LE(v uint64) Chunk {
	var c Chunk
	c[0] = byte(v)
	c[1] = byte(v >> 8)
	c[2] = byte(v >> 16)
	c[3] = byte(v >> 24)
	c[4] = byte(v >> 32)
	c[5] = byte(v >> 40)
	c[6] = byte(v >> 48)
	c[7] = byte(v >> 56)
	return c
}
