package beacon

// Mutate applies the two pre-merkleization mutations required before
// any root or proof is computed: zeroing the in-progress block
// header's state_root, and injecting the historical state/block roots
// at index slot mod VectorSize.
//
// prevStateRoot and prevBlockRoot are nil when the caller has no
// historical roots to inject; Mutate then returns
// ErrMissingHistoricalRoots rather than silently mutating with zero
// values, since a zeroed historical slot is indistinguishable from a
// genuinely empty one and would produce a root nobody can reproduce.
//
// Mutate is idempotent for a fixed (prevStateRoot, prevBlockRoot)
// pair: every assignment it makes is a pure function of its inputs,
// so calling it twice with the same arguments leaves the state
// byte-identical to calling it once. Historical roots are modeled as
// an explicit parameter rather than ambient mutable state, so callers
// are responsible for calling Mutate at most once per logical proof
// request.
func Mutate(s *BeaconState, prevStateRoot, prevBlockRoot *Root) error {
	if prevStateRoot == nil || prevBlockRoot == nil {
		return ErrMissingHistoricalRoots
	}

	s.LatestBlockHeader.StateRoot = Root{}

	i := s.Slot % VectorSize
	s.StateRoots[i] = *prevStateRoot
	s.BlockRoots[i] = *prevBlockRoot
	return nil
}

// HistoricalRootsFromState derives (prevStateRoot, prevBlockRoot) from
// a BeaconState snapshot taken some slots earlier: prevStateRoot is
// that state's own mutated hash_tree_root, and
// prevBlockRoot is its latest_block_header's hash_tree_root after
// zeroing state_root. The earlier snapshot is mutated with its own
// prior historical roots first, exactly like any other state.
func HistoricalRootsFromState(old *BeaconState, oldPrevStateRoot, oldPrevBlockRoot *Root) (stateRoot Root, blockRoot Root, err error) {
	if err := Mutate(old, oldPrevStateRoot, oldPrevBlockRoot); err != nil {
		return Root{}, Root{}, err
	}

	root, err := HashTreeRoot(old)
	if err != nil {
		return Root{}, Root{}, err
	}

	header := old.LatestBlockHeader
	header.StateRoot = Root{}
	headerRoot, err := HashBeaconBlockHeaderRoot(header)
	if err != nil {
		return Root{}, Root{}, err
	}

	return Root(root), Root(headerRoot), nil
}
