package beacon

import "errors"

// Error taxonomy for the core. Every error returned by this package
// wraps one of these sentinels with fmt.Errorf("%w: ...") so callers
// can classify failures with errors.Is.
var (
	// ErrInvalidInput covers malformed hex, wrong byte lengths,
	// negative integers, or an unrecognized identifier format.
	ErrInvalidInput = errors.New("beacon: invalid input")

	// ErrValidatorNotFound is returned when a validator index is out
	// of range or a pubkey does not match any validator.
	ErrValidatorNotFound = errors.New("beacon: validator not found")

	// ErrMissingHistoricalRoots is returned when the pre-merkleization
	// mutation needs prev_state_root/prev_block_root and the caller
	// did not supply them.
	ErrMissingHistoricalRoots = errors.New("beacon: missing historical roots")

	// ErrLimitExceeded is returned when an entity exceeds its declared
	// SSZ limit (e.g. more validators than ValidatorRegistryLimit).
	ErrLimitExceeded = errors.New("beacon: limit exceeded")

	// ErrInternalInvariant signals arithmetic overflow or a path-bit
	// overflow; its presence in a return value indicates a bug in this
	// package, not bad caller input.
	ErrInternalInvariant = errors.New("beacon: internal invariant violated")
)
