package beacon

import (
	"strings"
	"testing"
)

const hex64Zeros = "0000000000000000000000000000000000000000000000000000000000000000"

var (
	eightZeroRoots  = repeatQuotedHexRoot(VectorSize)
	randaoZeroRoots = repeatQuotedHexRoot(RandaoMixesLength)
	eightZeroU64s   = repeatZeroString(VectorSize)

	minimalStateJSON = `{
  "genesis_validators_root": "0x` + hex64Zeros + `",
  "slot": "42",
  "fork": {
    "previous_version": "0x00000000",
    "current_version": "0x01000000",
    "epoch": "5"
  },
  "latest_block_header": {
    "slot": "41",
    "proposer_index": "2",
    "parent_root": "0x` + hex64Zeros + `",
    "state_root": "0x` + hex64Zeros + `",
    "body_root": "0x` + hex64Zeros + `"
  },
  "block_roots": [` + eightZeroRoots + `],
  "state_roots": [` + eightZeroRoots + `],
  "eth1_data": {
    "deposit_root": "0x` + hex64Zeros + `",
    "deposit_count": "10",
    "block_hash": "0x` + hex64Zeros + `"
  },
  "eth1_deposit_index": "10",
  "latest_execution_payload_header_root": "0x` + hex64Zeros + `",
  "validators": [],
  "balances": [],
  "randao_mixes": [` + randaoZeroRoots + `],
  "next_withdrawal_index": "0",
  "next_withdrawal_validator_index": "0",
  "slashings": [` + eightZeroU64s + `],
  "total_slashing": "0"
}`
)

func repeatQuotedHexRoot(n int) string {
	var b strings.Builder
	elem := `"0x` + hex64Zeros + `"`
	b.Grow(n * (len(elem) + 1))
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(elem)
	}
	return b.String()
}

func repeatZeroString(n int) string {
	var b strings.Builder
	b.Grow(n * 4)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"0"`)
	}
	return b.String()
}

func TestLoadStateMinimal(t *testing.T) {
	s, err := LoadState([]byte(minimalStateJSON))
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if s.Slot != 42 {
		t.Errorf("Slot = %d, want 42", s.Slot)
	}
	if s.Fork.Epoch != 5 {
		t.Errorf("Fork.Epoch = %d, want 5", s.Fork.Epoch)
	}
	if s.Fork.CurrentVersion != ([4]byte{1, 0, 0, 0}) {
		t.Errorf("Fork.CurrentVersion = %x, want 01000000", s.Fork.CurrentVersion)
	}
	if len(s.Validators) != 0 {
		t.Errorf("expected zero validators, got %d", len(s.Validators))
	}
	if _, err := HashTreeRoot(s); err != nil {
		t.Errorf("HashTreeRoot on loaded minimal state failed: %v", err)
	}
}

func TestLoadStateRejectsMissingHexPrefix(t *testing.T) {
	bad := `{"genesis_validators_root": "` + hex64Zeros + `"}`
	if _, err := LoadState([]byte(bad)); err == nil {
		t.Fatal("expected an error for a hex value missing its 0x prefix")
	}
}

func TestLoadStateRejectsWrongVectorLength(t *testing.T) {
	bad := []byte(`{
		"genesis_validators_root": "0x` + hex64Zeros + `",
		"slot": "1",
		"fork": {"previous_version":"0x00000000","current_version":"0x00000000","epoch":"0"},
		"latest_block_header": {"slot":"0","proposer_index":"0","parent_root":"0x` + hex64Zeros + `","state_root":"0x` + hex64Zeros + `","body_root":"0x` + hex64Zeros + `"},
		"block_roots": ["0x` + hex64Zeros + `"],
		"state_roots": [` + eightZeroRoots + `],
		"eth1_data": {"deposit_root":"0x` + hex64Zeros + `","deposit_count":"0","block_hash":"0x` + hex64Zeros + `"},
		"eth1_deposit_index": "0",
		"latest_execution_payload_header_root": "0x` + hex64Zeros + `",
		"validators": [],
		"balances": [],
		"randao_mixes": [` + randaoZeroRoots + `],
		"next_withdrawal_index": "0",
		"next_withdrawal_validator_index": "0",
		"slashings": [` + eightZeroU64s + `],
		"total_slashing": "0"
	}`)
	if _, err := LoadState(bad); err == nil {
		t.Fatal("expected an error for block_roots with the wrong length")
	}
}
