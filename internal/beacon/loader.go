package beacon

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// jsonState mirrors BeaconState field-for-field, using the boundary
// encoding the loader's JSON wire format uses: lowercase 0x-prefixed
// hex for byte strings, decimal ASCII for integers. It exists purely
// so encoding/json can decode a snapshot without this package leaking
// json tags onto BeaconState itself — BeaconState is the core's type,
// not a wire format.
type jsonState struct {
	GenesisValidatorsRoot            string          `json:"genesis_validators_root"`
	Slot                             string          `json:"slot"`
	Fork                             jsonFork        `json:"fork"`
	LatestBlockHeader                jsonHeader      `json:"latest_block_header"`
	BlockRoots                       []string        `json:"block_roots"`
	StateRoots                       []string        `json:"state_roots"`
	Eth1Data                         jsonEth1Data    `json:"eth1_data"`
	Eth1DepositIndex                 string          `json:"eth1_deposit_index"`
	LatestExecutionPayloadHeaderRoot string          `json:"latest_execution_payload_header_root"`
	Validators                       []jsonValidator `json:"validators"`
	Balances                         []string        `json:"balances"`
	RandaoMixes                      []string        `json:"randao_mixes"`
	NextWithdrawalIndex              string          `json:"next_withdrawal_index"`
	NextWithdrawalValidatorIndex     string          `json:"next_withdrawal_validator_index"`
	Slashings                        []string        `json:"slashings"`
	TotalSlashing                    string          `json:"total_slashing"`
}

type jsonFork struct {
	PreviousVersion string `json:"previous_version"`
	CurrentVersion  string `json:"current_version"`
	Epoch           string `json:"epoch"`
}

type jsonHeader struct {
	Slot          string `json:"slot"`
	ProposerIndex string `json:"proposer_index"`
	ParentRoot    string `json:"parent_root"`
	StateRoot     string `json:"state_root"`
	BodyRoot      string `json:"body_root"`
}

type jsonEth1Data struct {
	DepositRoot  string `json:"deposit_root"`
	DepositCount string `json:"deposit_count"`
	BlockHash    string `json:"block_hash"`
}

type jsonValidator struct {
	Pubkey                     string `json:"pubkey"`
	WithdrawalCredentials      string `json:"withdrawal_credentials"`
	EffectiveBalance           string `json:"effective_balance"`
	Slashed                    bool   `json:"slashed"`
	ActivationEligibilityEpoch string `json:"activation_eligibility_epoch"`
	ActivationEpoch            string `json:"activation_epoch"`
	ExitEpoch                  string `json:"exit_epoch"`
	WithdrawableEpoch          string `json:"withdrawable_epoch"`
}

// LoadState decodes a beacon-state JSON document into a typed
// BeaconState. It is a reference implementation for tests and the
// CLI, not part of the core's correctness surface.
func LoadState(data []byte) (*BeaconState, error) {
	var js jsonState
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s := &BeaconState{}
	var err error

	if s.GenesisValidatorsRoot, err = parseRoot(js.GenesisValidatorsRoot); err != nil {
		return nil, err
	}
	if s.Slot, err = parseUint64(js.Slot); err != nil {
		return nil, err
	}
	if s.Fork, err = parseFork(js.Fork); err != nil {
		return nil, err
	}
	if s.LatestBlockHeader, err = parseHeader(js.LatestBlockHeader); err != nil {
		return nil, err
	}
	if s.BlockRoots, err = parseVectorSizeRoots(js.BlockRoots); err != nil {
		return nil, err
	}
	if s.StateRoots, err = parseVectorSizeRoots(js.StateRoots); err != nil {
		return nil, err
	}
	if s.Eth1Data, err = parseEth1Data(js.Eth1Data); err != nil {
		return nil, err
	}
	if s.Eth1DepositIndex, err = parseUint64(js.Eth1DepositIndex); err != nil {
		return nil, err
	}
	payloadRoot, err := parseRoot(js.LatestExecutionPayloadHeaderRoot)
	if err != nil {
		return nil, err
	}
	s.LatestExecutionPayloadHeader = ExecutionPayloadHeader{Root: payloadRoot}

	s.Validators = make([]Validator, len(js.Validators))
	for i, jv := range js.Validators {
		v, err := parseValidator(jv)
		if err != nil {
			return nil, fmt.Errorf("validator %d: %w", i, err)
		}
		s.Validators[i] = v
	}
	if uint64(len(s.Validators)) > ValidatorRegistryLimit {
		return nil, fmt.Errorf("%w: %d validators", ErrLimitExceeded, len(s.Validators))
	}

	s.Balances = make([]Gwei, len(js.Balances))
	for i, b := range js.Balances {
		v, err := parseUint64(b)
		if err != nil {
			return nil, fmt.Errorf("balance %d: %w", i, err)
		}
		s.Balances[i] = v
	}
	if uint64(len(s.Balances)) > ValidatorRegistryLimit {
		return nil, fmt.Errorf("%w: %d balances", ErrLimitExceeded, len(s.Balances))
	}

	if s.RandaoMixes, err = parseRandaoMixes(js.RandaoMixes); err != nil {
		return nil, err
	}
	if s.NextWithdrawalIndex, err = parseUint64(js.NextWithdrawalIndex); err != nil {
		return nil, err
	}
	if s.NextWithdrawalValidatorIndex, err = parseUint64(js.NextWithdrawalValidatorIndex); err != nil {
		return nil, err
	}
	slashings, err := parseVectorSizeUint64s(js.Slashings)
	if err != nil {
		return nil, err
	}
	s.Slashings = slashings
	if s.TotalSlashing, err = parseUint64(js.TotalSlashing); err != nil {
		return nil, err
	}

	return s, nil
}

func parseFork(j jsonFork) (Fork, error) {
	prev, err := parseBytes4(j.PreviousVersion)
	if err != nil {
		return Fork{}, err
	}
	cur, err := parseBytes4(j.CurrentVersion)
	if err != nil {
		return Fork{}, err
	}
	epoch, err := parseUint64(j.Epoch)
	if err != nil {
		return Fork{}, err
	}
	return Fork{PreviousVersion: prev, CurrentVersion: cur, Epoch: epoch}, nil
}

func parseHeader(j jsonHeader) (BeaconBlockHeader, error) {
	slot, err := parseUint64(j.Slot)
	if err != nil {
		return BeaconBlockHeader{}, err
	}
	proposer, err := parseUint64(j.ProposerIndex)
	if err != nil {
		return BeaconBlockHeader{}, err
	}
	parent, err := parseRoot(j.ParentRoot)
	if err != nil {
		return BeaconBlockHeader{}, err
	}
	state, err := parseRoot(j.StateRoot)
	if err != nil {
		return BeaconBlockHeader{}, err
	}
	body, err := parseRoot(j.BodyRoot)
	if err != nil {
		return BeaconBlockHeader{}, err
	}
	return BeaconBlockHeader{
		Slot:          slot,
		ProposerIndex: proposer,
		ParentRoot:    parent,
		StateRoot:     state,
		BodyRoot:      body,
	}, nil
}

func parseEth1Data(j jsonEth1Data) (Eth1Data, error) {
	depositRoot, err := parseRoot(j.DepositRoot)
	if err != nil {
		return Eth1Data{}, err
	}
	count, err := parseUint64(j.DepositCount)
	if err != nil {
		return Eth1Data{}, err
	}
	blockHash, err := parseRoot(j.BlockHash)
	if err != nil {
		return Eth1Data{}, err
	}
	return Eth1Data{DepositRoot: depositRoot, DepositCount: count, BlockHash: blockHash}, nil
}

func parseValidator(j jsonValidator) (Validator, error) {
	pubkeyRaw, err := parseHex(j.Pubkey, 48)
	if err != nil {
		return Validator{}, fmt.Errorf("pubkey: %w", err)
	}
	withdrawalCreds, err := parseRoot(j.WithdrawalCredentials)
	if err != nil {
		return Validator{}, fmt.Errorf("withdrawal_credentials: %w", err)
	}
	effectiveBalance, err := parseUint64(j.EffectiveBalance)
	if err != nil {
		return Validator{}, err
	}
	activationEligibility, err := parseUint64(j.ActivationEligibilityEpoch)
	if err != nil {
		return Validator{}, err
	}
	activation, err := parseUint64(j.ActivationEpoch)
	if err != nil {
		return Validator{}, err
	}
	exit, err := parseUint64(j.ExitEpoch)
	if err != nil {
		return Validator{}, err
	}
	withdrawable, err := parseUint64(j.WithdrawableEpoch)
	if err != nil {
		return Validator{}, err
	}

	var pubkey [48]byte
	copy(pubkey[:], pubkeyRaw)

	return Validator{
		Pubkey:                     pubkey,
		WithdrawalCredentials:      withdrawalCreds,
		EffectiveBalance:           effectiveBalance,
		Slashed:                    j.Slashed,
		ActivationEligibilityEpoch: activationEligibility,
		ActivationEpoch:            activation,
		ExitEpoch:                  exit,
		WithdrawableEpoch:          withdrawable,
	}, nil
}

func parseUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed integer %q: %v", ErrInvalidInput, s, err)
	}
	return v, nil
}

func parseHex(s string, wantLen int) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("%w: hex value %q missing 0x prefix", ErrInvalidInput, s)
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed hex %q: %v", ErrInvalidInput, s, err)
	}
	if wantLen > 0 && len(raw) != wantLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d in %q", ErrInvalidInput, wantLen, len(raw), s)
	}
	return raw, nil
}

func parseRoot(s string) (Root, error) {
	raw, err := parseHex(s, 32)
	if err != nil {
		return Root{}, err
	}
	var r Root
	copy(r[:], raw)
	return r, nil
}

func parseBytes4(s string) ([4]byte, error) {
	raw, err := parseHex(s, 4)
	if err != nil {
		return [4]byte{}, err
	}
	var b [4]byte
	copy(b[:], raw)
	return b, nil
}

func parseVectorSizeRoots(ss []string) ([VectorSize]Root, error) {
	var out [VectorSize]Root
	if len(ss) != VectorSize {
		return out, fmt.Errorf("%w: expected %d roots, got %d", ErrInvalidInput, VectorSize, len(ss))
	}
	for i, s := range ss {
		r, err := parseRoot(s)
		if err != nil {
			return out, err
		}
		out[i] = r
	}
	return out, nil
}

func parseRandaoMixes(ss []string) ([RandaoMixesLength]Root, error) {
	var out [RandaoMixesLength]Root
	if len(ss) != RandaoMixesLength {
		return out, fmt.Errorf("%w: expected %d randao mixes, got %d", ErrInvalidInput, RandaoMixesLength, len(ss))
	}
	for i, s := range ss {
		r, err := parseRoot(s)
		if err != nil {
			return out, err
		}
		out[i] = r
	}
	return out, nil
}

func parseVectorSizeUint64s(ss []string) ([VectorSize]Gwei, error) {
	var out [VectorSize]Gwei
	if len(ss) != VectorSize {
		return out, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidInput, VectorSize, len(ss))
	}
	for i, s := range ss {
		v, err := parseUint64(s)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
