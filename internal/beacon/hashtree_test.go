package beacon

import (
	"errors"
	"testing"

	"github.com/berachain/beacon-ssz-proofs/internal/sszhash"
)

func newTestState(numValidators, numBalances int) *BeaconState {
	s := &BeaconState{
		Slot: 42,
		Fork: Fork{
			PreviousVersion: [4]byte{1, 0, 0, 0},
			CurrentVersion:  [4]byte{2, 0, 0, 0},
			Epoch:           7,
		},
		Eth1DepositIndex:             3,
		NextWithdrawalIndex:          1,
		NextWithdrawalValidatorIndex: 0,
		TotalSlashing:                0,
	}
	for i := 0; i < numValidators; i++ {
		var v Validator
		v.Pubkey[0] = byte(i)
		v.EffectiveBalance = 32_000_000_000
		v.ActivationEpoch = uint64(i)
		s.Validators = append(s.Validators, v)
	}
	for i := 0; i < numBalances; i++ {
		s.Balances = append(s.Balances, uint64(32_000_000_000+i))
	}
	return s
}

func TestHashTreeRootDeterministic(t *testing.T) {
	s1 := newTestState(5, 5)
	s2 := newTestState(5, 5)

	r1, err := HashTreeRoot(s1)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	r2, err := HashTreeRoot(s2)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	if r1 != r2 {
		t.Errorf("HashTreeRoot is not deterministic across identical states: %x != %x", r1, r2)
	}
}

func TestHashTreeRootFieldOrderSensitivity(t *testing.T) {
	s := newTestState(3, 3)
	root, err := HashTreeRoot(s)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}

	swapped := *s
	swapped.Slot, swapped.Eth1DepositIndex = s.Eth1DepositIndex, s.Slot
	swappedRoot, err := HashTreeRoot(&swapped)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}

	if s.Slot != s.Eth1DepositIndex && root == swappedRoot {
		t.Errorf("swapping field values should change the root")
	}
}

func TestCheckListLimit(t *testing.T) {
	if err := checkListLimit(0, 10, "items"); err != nil {
		t.Errorf("checkListLimit(0, 10): unexpected error: %v", err)
	}
	if err := checkListLimit(10, 10, "items"); err != nil {
		t.Errorf("checkListLimit(10, 10): at-limit count must be valid: %v", err)
	}
	err := checkListLimit(11, 10, "items")
	if err == nil {
		t.Fatal("checkListLimit(11, 10): expected ErrLimitExceeded, got nil")
	}
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("checkListLimit(11, 10): got %v, want wrapped ErrLimitExceeded", err)
	}
}

func TestValidatorsListRootLimitExceeded(t *testing.T) {
	if _, err := validatorsListRoot(make([]Validator, 0)); err != nil {
		t.Fatalf("empty validator list must be valid: %v", err)
	}

	validators := make([]Validator, 3)
	if _, err := validatorsListRoot(validators); err != nil {
		t.Fatalf("validator list within limit must be valid: %v", err)
	}
	if err := checkListLimit(uint64(len(validators)), 2, "validators"); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("checkListLimit with a list past the bound = %v, want ErrLimitExceeded", err)
	}
}

func TestValidatorsListRootBodyAtElementLimit(t *testing.T) {
	validators := []Validator{{EffectiveBalance: 1}, {EffectiveBalance: 2}}
	root, err := validatorsListRoot(validators)
	if err != nil {
		t.Fatalf("validatorsListRoot: %v", err)
	}

	elemRoots := make([]Chunk, len(validators))
	for i, v := range validators {
		r, err := HashValidatorRoot(v)
		if err != nil {
			t.Fatalf("HashValidatorRoot: %v", err)
		}
		elemRoots[i] = r
	}
	bodyRootWant, err := sszhash.Merkleize(elemRoots, ValidatorsBodyLimit())
	if err != nil {
		t.Fatalf("merkleize: %v", err)
	}
	want := sszhash.MixInLength(bodyRootWant, uint64(len(validators)))
	if root != want {
		t.Errorf("validatorsListRoot = %x, want %x (body merkleized at the element limit, then length mixed in)", root, want)
	}
}

func TestHashValidatorRootZeroValueDeterministic(t *testing.T) {
	v := Validator{}
	r1, err := HashValidatorRoot(v)
	if err != nil {
		t.Fatalf("HashValidatorRoot: %v", err)
	}
	r2, err := HashValidatorRoot(v)
	if err != nil {
		t.Fatalf("HashValidatorRoot: %v", err)
	}
	if r1 != r2 {
		t.Errorf("HashValidatorRoot not deterministic for zero validator")
	}
}

func TestAdjacentFieldRootSwapChangesStateRoot(t *testing.T) {
	s := newTestState(3, 3)
	fieldRoots, err := FieldRoots(s)
	if err != nil {
		t.Fatalf("FieldRoots: %v", err)
	}

	root, err := sszhash.Merkleize(fieldRoots[:], sszhash.NextPow2(BeaconStateFieldCount))
	if err != nil {
		t.Fatalf("Merkleize: %v", err)
	}

	for i := 0; i < BeaconStateFieldCount-1; i++ {
		if fieldRoots[i] == fieldRoots[i+1] {
			continue
		}
		swapped := fieldRoots
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		swappedRoot, err := sszhash.Merkleize(swapped[:], sszhash.NextPow2(BeaconStateFieldCount))
		if err != nil {
			t.Fatalf("Merkleize: %v", err)
		}
		if swappedRoot == root {
			t.Errorf("swapping field roots %d and %d left the state root unchanged", i, i+1)
		}
	}
}
