package beacon

import (
	"fmt"

	"github.com/berachain/beacon-ssz-proofs/internal/sszhash"
)

// ValidatorsBodyLimit and BalancesBodyLimit are the virtual-vector
// limits the list bodies merkleize against, before the length mix-in.
// They are exported because proof.go's generalized index arithmetic
// needs the same tree depth the hasher used.
//
// A composite-element list (validators) merkleizes its body as
// Vector[Validator, LIMIT]: the body limit is the element limit
// itself. A basic-element list (balances) packs elements 4 per chunk
// first, so the body limit is the element limit translated into chunk
// space.
func ValidatorsBodyLimit() uint64 {
	return ValidatorRegistryLimit
}

func BalancesBodyLimit() uint64 {
	return (ValidatorRegistryLimit*8 + 31) / 32
}

func rootVectorRoot(roots [VectorSize]Root) (Chunk, error) {
	return sszhash.Merkleize(rootsToChunks(roots[:]), VectorSize)
}

func randaoMixesVectorRoot(mixes [RandaoMixesLength]Root) (Chunk, error) {
	return sszhash.Merkleize(rootsToChunks(mixes[:]), RandaoMixesLength)
}

func slashingsVectorRoot(slashings [VectorSize]Gwei) (Chunk, error) {
	chunks := packUint64s(slashings[:])
	limit := (uint64(VectorSize)*8 + 31) / 32
	return sszhash.Merkleize(chunks, limit)
}

// HashForkRoot computes hash_tree_root(Fork).
func HashForkRoot(f Fork) (Chunk, error) {
	fieldRoots := []Chunk{
		chunkBytes4(f.PreviousVersion),
		chunkBytes4(f.CurrentVersion),
		chunkUint64(f.Epoch),
	}
	return sszhash.Merkleize(fieldRoots, sszhash.NextPow2(uint64(len(fieldRoots))))
}

// HashBeaconBlockHeaderRoot computes hash_tree_root(BeaconBlockHeader).
func HashBeaconBlockHeaderRoot(h BeaconBlockHeader) (Chunk, error) {
	fieldRoots := []Chunk{
		chunkUint64(h.Slot),
		chunkUint64(h.ProposerIndex),
		chunkBytes32(h.ParentRoot),
		chunkBytes32(h.StateRoot),
		chunkBytes32(h.BodyRoot),
	}
	return sszhash.Merkleize(fieldRoots, sszhash.NextPow2(uint64(len(fieldRoots))))
}

// HashEth1DataRoot computes hash_tree_root(Eth1Data).
func HashEth1DataRoot(e Eth1Data) (Chunk, error) {
	fieldRoots := []Chunk{
		chunkBytes32(e.DepositRoot),
		chunkUint64(e.DepositCount),
		chunkBytes32(e.BlockHash),
	}
	return sszhash.Merkleize(fieldRoots, sszhash.NextPow2(uint64(len(fieldRoots))))
}

// HashValidatorRoot computes hash_tree_root(Validator). The pubkey's
// two chunks are hashed directly rather than merkleized through the
// generic container path, since a 2-leaf tree has a single compression
// step.
func HashValidatorRoot(v Validator) (Chunk, error) {
	pubkeyChunks := chunkBytes48(v.Pubkey)
	pubkeyRoot := sszhash.Hash(pubkeyChunks[0], pubkeyChunks[1])

	fieldRoots := []Chunk{
		pubkeyRoot,
		chunkBytes32(v.WithdrawalCredentials),
		chunkUint64(v.EffectiveBalance),
		chunkBool(v.Slashed),
		chunkUint64(v.ActivationEligibilityEpoch),
		chunkUint64(v.ActivationEpoch),
		chunkUint64(v.ExitEpoch),
		chunkUint64(v.WithdrawableEpoch),
	}
	return sszhash.Merkleize(fieldRoots, sszhash.NextPow2(uint64(len(fieldRoots))))
}

// checkListLimit reports ErrLimitExceeded if n exceeds limit. It is
// split out from the list-merkleization functions so the bound itself
// is unit-testable without allocating a limit-sized slice.
func checkListLimit(n, limit uint64, what string) error {
	if n > limit {
		return fmt.Errorf("%w: %d %s exceeds limit %d", ErrLimitExceeded, n, what, limit)
	}
	return nil
}

// validatorsListRoot computes the validator registry's list root:
// body = merkleize([hash_tree_root(v) ...], ValidatorsBodyLimit()),
// root = hash(body, uint256_le(len(validators))).
func validatorsListRoot(validators []Validator) (Chunk, error) {
	if err := checkListLimit(uint64(len(validators)), ValidatorRegistryLimit, "validators"); err != nil {
		return Chunk{}, err
	}
	elemRoots := make([]Chunk, len(validators))
	for i, v := range validators {
		root, err := HashValidatorRoot(v)
		if err != nil {
			return Chunk{}, err
		}
		elemRoots[i] = root
	}
	body, err := sszhash.Merkleize(elemRoots, ValidatorsBodyLimit())
	if err != nil {
		return Chunk{}, err
	}
	return sszhash.MixInLength(body, uint64(len(validators))), nil
}

// balancesListRoot computes the balances list root: balances pack
// 4-per-chunk before merkleizing, same as any basic-element vector,
// then the length is mixed in exactly as for composite lists.
func balancesListRoot(balances []Gwei) (Chunk, error) {
	if err := checkListLimit(uint64(len(balances)), ValidatorRegistryLimit, "balances"); err != nil {
		return Chunk{}, err
	}
	chunks := packUint64s(balances)
	body, err := sszhash.Merkleize(chunks, BalancesBodyLimit())
	if err != nil {
		return Chunk{}, err
	}
	return sszhash.MixInLength(body, uint64(len(balances))), nil
}

// FieldRoots computes the 16 field roots of a BeaconState, in field
// order, without merkleizing them into the final container root.
// proof.go reuses this so the container-level proof step and
// ComputeStateRoot never compute the field roots twice with different
// code paths.
func FieldRoots(s *BeaconState) ([BeaconStateFieldCount]Chunk, error) {
	var roots [BeaconStateFieldCount]Chunk

	roots[FieldGenesisValidatorsRoot] = chunkBytes32(s.GenesisValidatorsRoot)
	roots[FieldSlot] = chunkUint64(s.Slot)

	forkRoot, err := HashForkRoot(s.Fork)
	if err != nil {
		return roots, err
	}
	roots[FieldFork] = forkRoot

	headerRoot, err := HashBeaconBlockHeaderRoot(s.LatestBlockHeader)
	if err != nil {
		return roots, err
	}
	roots[FieldLatestBlockHeader] = headerRoot

	blockRootsRoot, err := rootVectorRoot(s.BlockRoots)
	if err != nil {
		return roots, err
	}
	roots[FieldBlockRoots] = blockRootsRoot

	stateRootsRoot, err := rootVectorRoot(s.StateRoots)
	if err != nil {
		return roots, err
	}
	roots[FieldStateRoots] = stateRootsRoot

	eth1Root, err := HashEth1DataRoot(s.Eth1Data)
	if err != nil {
		return roots, err
	}
	roots[FieldEth1Data] = eth1Root

	roots[FieldEth1DepositIndex] = chunkUint64(s.Eth1DepositIndex)
	roots[FieldLatestExecPayloadHdr] = chunkBytes32(s.LatestExecutionPayloadHeader.Root)

	validatorsRoot, err := validatorsListRoot(s.Validators)
	if err != nil {
		return roots, err
	}
	roots[FieldValidators] = validatorsRoot

	balancesRoot, err := balancesListRoot(s.Balances)
	if err != nil {
		return roots, err
	}
	roots[FieldBalances] = balancesRoot

	randaoRoot, err := randaoMixesVectorRoot(s.RandaoMixes)
	if err != nil {
		return roots, err
	}
	roots[FieldRandaoMixes] = randaoRoot

	roots[FieldNextWithdrawalIndex] = chunkUint64(s.NextWithdrawalIndex)
	roots[FieldNextWithdrawalValIdx] = chunkUint64(s.NextWithdrawalValidatorIndex)

	slashingsRoot, err := slashingsVectorRoot(s.Slashings)
	if err != nil {
		return roots, err
	}
	roots[FieldSlashings] = slashingsRoot

	roots[FieldTotalSlashing] = chunkUint64(s.TotalSlashing)

	return roots, nil
}

// HashTreeRoot computes hash_tree_root(BeaconState) over the current
// field values. It does not apply the pre-merkleization mutation —
// callers needing the canonical on-chain root should call Mutate
// first.
func HashTreeRoot(s *BeaconState) (Chunk, error) {
	fieldRoots, err := FieldRoots(s)
	if err != nil {
		return Chunk{}, err
	}
	return sszhash.Merkleize(fieldRoots[:], sszhash.NextPow2(BeaconStateFieldCount))
}
