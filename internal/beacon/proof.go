package beacon

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/berachain/beacon-ssz-proofs/internal/sszhash"
)

// Proofs is the core's entry point, exposing the four proof
// operations to collaborators. It carries no state of its own; every
// method applies Mutate to the state it is given, in place, and its
// result depends only on its arguments.
type Proofs struct{}

// ValidatorProofResult is the return value of GenerateValidatorProof.
type ValidatorProofResult struct {
	Root           Root
	Proof          []Chunk
	Leaf           Chunk
	GIndex         uint64
	ValidatorIndex ValidatorIndex
	Validator      Validator
}

// BalanceProofResult is the return value of GenerateBalanceProof.
type BalanceProofResult struct {
	Root           Root
	Proof          []Chunk
	Leaf           Chunk
	GIndex         uint64
	BalancesRoot   Root
	Balance        Gwei
	ValidatorIndex ValidatorIndex
}

// CombinedProofResult bundles a validator proof and a balance proof
// computed against the same mutated state.
type CombinedProofResult struct {
	Validator ValidatorProofResult
	Balance   BalanceProofResult
}

// ComputeStateRoot applies the pre-merkleization mutation and returns
// hash_tree_root(state).
func (Proofs) ComputeStateRoot(state *BeaconState, prevStateRoot, prevBlockRoot *Root) (Root, error) {
	if err := Mutate(state, prevStateRoot, prevBlockRoot); err != nil {
		return Root{}, err
	}
	root, err := HashTreeRoot(state)
	if err != nil {
		return Root{}, err
	}
	return Root(root), nil
}

// GenerateValidatorProof mutates state and extracts the sibling-hash
// witness proving validator identifier's full record appears in the
// resulting state root.
func (p Proofs) GenerateValidatorProof(state *BeaconState, identifier string, prevStateRoot, prevBlockRoot *Root) (ValidatorProofResult, error) {
	if err := Mutate(state, prevStateRoot, prevBlockRoot); err != nil {
		return ValidatorProofResult{}, err
	}

	idx, err := ResolveValidatorIndex(state, identifier)
	if err != nil {
		return ValidatorProofResult{}, err
	}

	stateRoot, proof, leaf, err := validatorProofForIndex(state, idx)
	if err != nil {
		return ValidatorProofResult{}, err
	}
	g, err := ValidatorGIndex(idx)
	if err != nil {
		return ValidatorProofResult{}, err
	}

	return ValidatorProofResult{
		Root:           Root(stateRoot),
		Proof:          proof,
		Leaf:           leaf,
		GIndex:         g,
		ValidatorIndex: idx,
		Validator:      state.Validators[idx],
	}, nil
}

// GenerateBalanceProof mutates state and extracts the sibling-hash
// witness proving the 32-byte chunk holding validator identifier's
// balance appears in the resulting state root.
func (p Proofs) GenerateBalanceProof(state *BeaconState, identifier string, prevStateRoot, prevBlockRoot *Root) (BalanceProofResult, error) {
	if err := Mutate(state, prevStateRoot, prevBlockRoot); err != nil {
		return BalanceProofResult{}, err
	}

	idx, err := ResolveValidatorIndex(state, identifier)
	if err != nil {
		return BalanceProofResult{}, err
	}

	stateRoot, proof, leaf, balancesRoot, err := balanceProofForIndex(state, idx)
	if err != nil {
		return BalanceProofResult{}, err
	}
	g, _, err := BalanceGIndex(idx)
	if err != nil {
		return BalanceProofResult{}, err
	}

	lane := idx % 4
	balance := binary.LittleEndian.Uint64(leaf[lane*8 : lane*8+8])

	return BalanceProofResult{
		Root:           Root(stateRoot),
		Proof:          proof,
		Leaf:           leaf,
		GIndex:         g,
		BalancesRoot:   Root(balancesRoot),
		Balance:        balance,
		ValidatorIndex: idx,
	}, nil
}

// GenerateCombinedProof produces both a validator proof and a balance
// proof against one mutation of state.
func (p Proofs) GenerateCombinedProof(state *BeaconState, identifier string, prevStateRoot, prevBlockRoot *Root) (CombinedProofResult, error) {
	if err := Mutate(state, prevStateRoot, prevBlockRoot); err != nil {
		return CombinedProofResult{}, err
	}

	idx, err := ResolveValidatorIndex(state, identifier)
	if err != nil {
		return CombinedProofResult{}, err
	}

	vRoot, vProof, vLeaf, err := validatorProofForIndex(state, idx)
	if err != nil {
		return CombinedProofResult{}, err
	}
	vG, err := ValidatorGIndex(idx)
	if err != nil {
		return CombinedProofResult{}, err
	}
	bRoot, bProof, bLeaf, balancesRoot, err := balanceProofForIndex(state, idx)
	if err != nil {
		return CombinedProofResult{}, err
	}
	bG, _, err := BalanceGIndex(idx)
	if err != nil {
		return CombinedProofResult{}, err
	}

	lane := idx % 4
	balance := binary.LittleEndian.Uint64(bLeaf[lane*8 : lane*8+8])

	return CombinedProofResult{
		Validator: ValidatorProofResult{
			Root:           Root(vRoot),
			Proof:          vProof,
			Leaf:           vLeaf,
			GIndex:         vG,
			ValidatorIndex: idx,
			Validator:      state.Validators[idx],
		},
		Balance: BalanceProofResult{
			Root:           Root(bRoot),
			Proof:          bProof,
			Leaf:           bLeaf,
			GIndex:         bG,
			BalancesRoot:   Root(balancesRoot),
			Balance:        balance,
			ValidatorIndex: idx,
		},
	}, nil
}

// validatorProofForIndex composes the body-level proof (within the
// depth-40 virtual vector validators are merkleized as), the
// length-mixin sibling, and the container-level proof (within the
// 16-field BeaconState tree) into one leaf-first sibling list.
func validatorProofForIndex(state *BeaconState, idx ValidatorIndex) (stateRoot Chunk, proof []Chunk, leaf Chunk, err error) {
	if idx >= uint64(len(state.Validators)) {
		return Chunk{}, nil, Chunk{}, fmt.Errorf("%w: index %d", ErrValidatorNotFound, idx)
	}

	elemRoots := make([]Chunk, len(state.Validators))
	for i, v := range state.Validators {
		r, herr := HashValidatorRoot(v)
		if herr != nil {
			return Chunk{}, nil, Chunk{}, herr
		}
		elemRoots[i] = r
	}

	_, bodyProof, validatorLeaf, err := sszhash.MerkleizeWithProof(elemRoots, ValidatorsBodyLimit(), idx)
	if err != nil {
		return Chunk{}, nil, Chunk{}, err
	}

	lengthChunk := sszhash.Uint256LE(uint64(len(state.Validators)))

	fieldRoots, err := FieldRoots(state)
	if err != nil {
		return Chunk{}, nil, Chunk{}, err
	}

	root, fieldProof, _, err := sszhash.MerkleizeWithProof(fieldRoots[:], sszhash.NextPow2(BeaconStateFieldCount), FieldValidators)
	if err != nil {
		return Chunk{}, nil, Chunk{}, err
	}

	full := make([]Chunk, 0, len(bodyProof)+1+len(fieldProof))
	full = append(full, bodyProof...)
	full = append(full, lengthChunk)
	full = append(full, fieldProof...)

	return root, full, validatorLeaf, nil
}

// balanceProofForIndex mirrors validatorProofForIndex for the packed
// balances list: the leaf is the 32-byte chunk containing four packed
// balances, not a single scalar.
func balanceProofForIndex(state *BeaconState, idx ValidatorIndex) (stateRoot Chunk, proof []Chunk, leaf Chunk, balancesRoot Chunk, err error) {
	if idx >= uint64(len(state.Validators)) {
		return Chunk{}, nil, Chunk{}, Chunk{}, fmt.Errorf("%w: index %d", ErrValidatorNotFound, idx)
	}

	chunks := packUint64s(state.Balances)
	chunkIdx := idx / 4

	bodyRoot, bodyProof, balanceLeaf, err := sszhash.MerkleizeWithProof(chunks, BalancesBodyLimit(), chunkIdx)
	if err != nil {
		return Chunk{}, nil, Chunk{}, Chunk{}, err
	}

	lengthChunk := sszhash.Uint256LE(uint64(len(state.Balances)))
	balancesRoot = sszhash.Hash(bodyRoot, lengthChunk)

	fieldRoots, err := FieldRoots(state)
	if err != nil {
		return Chunk{}, nil, Chunk{}, Chunk{}, err
	}

	root, fieldProof, _, err := sszhash.MerkleizeWithProof(fieldRoots[:], sszhash.NextPow2(BeaconStateFieldCount), FieldBalances)
	if err != nil {
		return Chunk{}, nil, Chunk{}, Chunk{}, err
	}

	full := make([]Chunk, 0, len(bodyProof)+1+len(fieldProof))
	full = append(full, bodyProof...)
	full = append(full, lengthChunk)
	full = append(full, fieldProof...)

	return root, full, balanceLeaf, balancesRoot, nil
}

// ResolveValidatorIndex resolves an identifier — a decimal validator
// index or a 0x-prefixed 48-byte pubkey — to a validator index,
// matching the boundary encoding used throughout this package:
// lowercase 0x-prefixed hex for bytes, decimal ASCII for integers.
func ResolveValidatorIndex(state *BeaconState, identifier string) (ValidatorIndex, error) {
	if strings.HasPrefix(identifier, "0x") || strings.HasPrefix(identifier, "0X") {
		raw, err := hex.DecodeString(identifier[2:])
		if err != nil {
			return 0, fmt.Errorf("%w: malformed pubkey hex %q: %v", ErrInvalidInput, identifier, err)
		}
		if len(raw) != 48 {
			return 0, fmt.Errorf("%w: pubkey must be 48 bytes, got %d", ErrInvalidInput, len(raw))
		}
		var pubkey [48]byte
		copy(pubkey[:], raw)
		for i, v := range state.Validators {
			if v.Pubkey == pubkey {
				return ValidatorIndex(i), nil
			}
		}
		return 0, fmt.Errorf("%w: pubkey %s", ErrValidatorNotFound, identifier)
	}

	n, err := strconv.ParseUint(identifier, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed validator identifier %q: %v", ErrInvalidInput, identifier, err)
	}
	if n >= uint64(len(state.Validators)) {
		return 0, fmt.Errorf("%w: index %d", ErrValidatorNotFound, n)
	}
	return ValidatorIndex(n), nil
}
