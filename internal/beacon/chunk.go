package beacon

import (
	"encoding/binary"

	"github.com/berachain/beacon-ssz-proofs/internal/sszhash"
)

// Chunk is a single 32-byte SSZ leaf, re-exported from sszhash so
// callers of this package never need to import it directly.
type Chunk = sszhash.Chunk

// bytesPerChunk is the fixed SSZ chunk width.
const bytesPerChunk = 32

// packUint64s packs a slice of u64 scalars into 32-byte chunks, 4 per
// chunk, right-zero-padding the final partial chunk. This is the
// merkleization input for Vector/List[uint64, N] — balances and
// slashings in BeaconState.
func packUint64s(values []uint64) []Chunk {
	const stride = 8
	const perChunk = bytesPerChunk / stride

	n := (len(values) + perChunk - 1) / perChunk
	chunks := make([]Chunk, n)
	for i, v := range values {
		chunkIdx := i / perChunk
		off := (i % perChunk) * stride
		binary.LittleEndian.PutUint64(chunks[chunkIdx][off:off+stride], v)
	}
	return chunks
}

// chunkUint64 packs a single u64 scalar into one chunk, right-padded
// with zero bytes.
func chunkUint64(v uint64) Chunk {
	var c Chunk
	binary.LittleEndian.PutUint64(c[:8], v)
	return c
}

// chunkBool packs a bool into one chunk: 0x01 or 0x00, right-padded.
func chunkBool(b bool) Chunk {
	var c Chunk
	if b {
		c[0] = 1
	}
	return c
}

// chunkBytes4 packs a 4-byte fork version into one chunk, right-padded.
func chunkBytes4(b [4]byte) Chunk {
	var c Chunk
	copy(c[:4], b[:])
	return c
}

// chunkBytes32 treats a 32-byte value as a chunk directly.
func chunkBytes32(b Root) Chunk {
	return Chunk(b)
}

// chunkBytes48 packs a 48-byte pubkey into two chunks: bytes 0..32 and
// bytes 32..48 right-padded with 16 zero bytes.
func chunkBytes48(b [48]byte) [2]Chunk {
	var out [2]Chunk
	copy(out[0][:], b[:32])
	copy(out[1][:16], b[32:48])
	return out
}

// rootsToChunks treats a slice of 32-byte roots as a chunk list
// directly, used for block_roots/state_roots/randao_mixes.
func rootsToChunks(roots []Root) []Chunk {
	chunks := make([]Chunk, len(roots))
	for i, r := range roots {
		chunks[i] = Chunk(r)
	}
	return chunks
}
