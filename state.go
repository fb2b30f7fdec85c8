package pubgrub

// state bundles everything a solve threads through unit propagation and
// conflict resolution: the root package being solved for, the append-only
// incompatibility store, and the partial solution built up so far.
type state struct {
	root        PackageID
	rootVersion Version

	store *store
	ps    *partialSolution
}

func newState(root PackageID, rootVersion Version) *state {
	st := &state{
		root:        root,
		rootVersion: rootVersion,
		store:       newStore(),
		ps:          newPartialSolution(),
	}
	st.store.add(notRootIncompatibility(root, rootVersion))
	st.ps.seedRoot(root, rootVersion)
	return st
}

// addIncompatibility stores ic and returns it with its assigned id.
func (st *state) addIncompatibility(ic *Incompatibility) *Incompatibility {
	return st.store.add(ic)
}
