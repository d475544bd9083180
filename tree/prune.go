package tree

// pruneUnused removes the nodes the prover never needed to close the
// tableau, but only once the whole tree is closed (§4.E): an open
// tableau is a satisfiability witness, and every branch — closed or
// still open — stays intact so CounterModel can walk whichever open
// leaf it finds; nothing is deleted on an open tree.
//
// On a closed tree this is the two-pass mark/sweep the assembler runs
// after denormalization. Pass one: for every node the prover already
// marked used, mark every node sharing its expansionStep (the group a
// single rule application produced together) as used too — except
// biconditionalExpansion nodes, which stay unused regardless, since
// they are byproducts meant to be removed in favor of the literal
// splits that replace them. Pass two: remove every node whose used flag
// is still false; a removal the shape rules refuse simply leaves that
// node in place.
func (st *SentenceTree) pruneUnused() {
	if st.firstOpenLeaf(st.Root) != NoNode {
		st.Flat.Clear()
		st.collectFlat(st.Root)
		return
	}
	for _, n := range st.Nodes {
		if n.IsRemoved || !n.Used {
			continue
		}
		for _, sib := range st.getExpansion(n.ID) {
			if st.Nodes[sib].BiconditionalExpansion {
				continue
			}
			st.Nodes[sib].Used = true
		}
	}
	for _, n := range st.Nodes {
		if n.IsRemoved || n.Used {
			continue
		}
		st.remove(n.ID)
	}
	st.Flat.Clear()
	st.collectFlat(st.Root)
}

// firstOpenLeaf walks the tree depth-first, leftmost branch first, and
// returns the first leaf not marked ClosedEnd, or NoNode if every branch
// closes. It never mutates the tree — both pruneUnused's closedness
// check and CounterModel's leaf lookup share this one read-only walk.
func (st *SentenceTree) firstOpenLeaf(id NodeID) NodeID {
	n := st.Nodes[id]
	if n.IsRemoved {
		return NoNode
	}
	if len(n.Children) == 0 {
		if !n.ClosedEnd {
			return id
		}
		return NoNode
	}
	for _, c := range n.Children {
		if r := st.firstOpenLeaf(c); r != NoNode {
			return r
		}
	}
	return NoNode
}

func (st *SentenceTree) collectFlat(id NodeID) {
	st.Flat.Add(id)
	for _, c := range st.Nodes[id].Children {
		st.collectFlat(c)
	}
}
