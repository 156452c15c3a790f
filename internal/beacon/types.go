// Package beacon implements hash-tree-root computation and Merkle
// proof generation for Berachain's BeaconState container. Every list
// merkleizes its body as though it were a vector of its element limit
// (for the packed balances list, that limit expressed in 32-byte
// chunks), then mixes in the element count.
package beacon

// Root, Slot, ValidatorIndex, and Gwei are domain-named aliases over
// the underlying SSZ scalars, kept distinct so call sites read as
// what they carry rather than bare uint64s.
type Root = [32]byte
type Slot = uint64
type ValidatorIndex = uint64
type Gwei = uint64

// VectorSize bounds block_roots, state_roots, and slashings.
const VectorSize = 8

// ValidatorRegistryLimit is the SSZ list limit for validators and balances.
const ValidatorRegistryLimit = uint64(1) << 40

// RandaoMixesLength is the fixed length of the randao_mixes vector.
const RandaoMixesLength = 65536

// Fork records the fork-version schedule active at a slot.
type Fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           uint64
}

// BeaconBlockHeader is the 5-field header container embedded in
// BeaconState as latest_block_header.
type BeaconBlockHeader struct {
	Slot          Slot
	ProposerIndex ValidatorIndex
	ParentRoot    Root
	StateRoot     Root
	BodyRoot      Root
}

// Eth1Data records the deposit-contract view carried into the state.
type Eth1Data struct {
	DepositRoot  Root
	DepositCount uint64
	BlockHash    Root
}

// Validator is one entry of the validator registry list.
type Validator struct {
	Pubkey                     [48]byte
	WithdrawalCredentials      [32]byte
	EffectiveBalance           Gwei
	Slashed                    bool
	ActivationEligibilityEpoch uint64
	ActivationEpoch            uint64
	ExitEpoch                  uint64
	WithdrawableEpoch          uint64
}

// ExecutionPayloadHeader is opaque to this system: the loader
// supplies its hash_tree_root directly; decoding the payload header
// body is out of scope.
type ExecutionPayloadHeader struct {
	Root Root
}

// BeaconState is Berachain's 16-field state container, in the exact
// field order hash_tree_root depends on. Field order is part of the
// wire contract: swapping two adjacent fields changes the root, by
// design (see hashtree_test.go).
type BeaconState struct {
	GenesisValidatorsRoot        Root                    // 0
	Slot                         Slot                    // 1
	Fork                         Fork                    // 2
	LatestBlockHeader            BeaconBlockHeader       // 3
	BlockRoots                   [VectorSize]Root        // 4
	StateRoots                   [VectorSize]Root        // 5
	Eth1Data                     Eth1Data                // 6
	Eth1DepositIndex             uint64                  // 7
	LatestExecutionPayloadHeader ExecutionPayloadHeader  // 8
	Validators                   []Validator             // 9
	Balances                     []Gwei                  // 10
	RandaoMixes                  [RandaoMixesLength]Root // 11
	NextWithdrawalIndex          uint64                  // 12
	NextWithdrawalValidatorIndex ValidatorIndex          // 13
	Slashings                    [VectorSize]Gwei        // 14
	TotalSlashing                Gwei                    // 15
}

// BeaconStateFieldCount is the fixed field count F in the container
// merkleization rule: root = merkleize(field_roots, next_pow2(F)).
const BeaconStateFieldCount = 16

// Field indices into BeaconState, named for use by gindex.go and
// proof.go instead of magic numbers scattered through the codebase.
const (
	FieldGenesisValidatorsRoot = 0
	FieldSlot                  = 1
	FieldFork                  = 2
	FieldLatestBlockHeader     = 3
	FieldBlockRoots            = 4
	FieldStateRoots            = 5
	FieldEth1Data              = 6
	FieldEth1DepositIndex      = 7
	FieldLatestExecPayloadHdr  = 8
	FieldValidators            = 9
	FieldBalances              = 10
	FieldRandaoMixes           = 11
	FieldNextWithdrawalIndex   = 12
	FieldNextWithdrawalValIdx  = 13
	FieldSlashings             = 14
	FieldTotalSlashing         = 15
)
