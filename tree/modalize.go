package tree

import (
	"sort"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
	"github.com/lxthorne/tableau/modal"
	"github.com/lxthorne/tableau/model"
)

// Modalize translates every live node's formula back to modal form via
// modal.TranslateToModal — a no-op if the original input was never
// modal — and, when hideAccessibility is set, splices out each surviving
// accessibility-atom node (one the S5 bypass in the denormalizer didn't
// already skip) that has a parent and exactly one child; accessibility
// atoms at the root, at a leaf or at a branch point stay in the tree.
// Other nodes' FromNodes are not rewritten, so a reference to a hidden
// node still names that node (§4.G).
func (st *SentenceTree) Modalize(hideAccessibility bool) {
	if !st.Parser.IsModal() {
		return
	}
	for _, n := range st.Nodes {
		if n.IsRemoved {
			continue
		}
		n.Formula = modal.TranslateToModal(n.Formula, st.Parser)
	}
	if hideAccessibility {
		st.hideAccessibilityAtoms(st.Root)
		st.Flat.Clear()
		st.collectFlat(st.Root)
	}
}

func (st *SentenceTree) hideAccessibilityAtoms(id NodeID) {
	n := st.Nodes[id]
	for _, c := range append([]NodeID{}, n.Children...) {
		st.hideAccessibilityAtoms(c)
	}
	a, ok := n.Formula.(formula.Atomic)
	if !ok || a.Pred != st.Parser.AccessibilityPredicate() || len(n.Children) != 1 || n.Parent == NoNode {
		return
	}
	child := n.Children[0]
	parent := st.Nodes[n.Parent]
	for i, c := range parent.Children {
		if c == id {
			parent.Children[i] = child
		}
	}
	st.Nodes[child].Parent = n.Parent
	n.IsRemoved = true
}

// CounterModel reads a countermodel off the tree's first open-branch leaf
// (leftmost, depth-first) — an open tableau is a satisfiability witness,
// so only one open branch is ever needed, and pruneUnused leaves every
// branch intact for exactly this walk (§4.E, §4.G). It asserts every
// ground literal on the branch and checks the result actually satisfies
// the original initial formulas before reporting it. It reports false if
// the tree has no open branch (i.e. closed — a proof, not a
// countermodel).
func (st *SentenceTree) CounterModel() (*model.Model, bool) {
	leaf := st.firstOpenLeaf(st.Root)
	if leaf == NoNode {
		return nil, false
	}
	path := st.branchPath(leaf)
	domain, worlds := st.collectDomainAndWorlds(path)
	accessib := st.Parser.AccessibilityPredicate()
	if st.Parser.IsModal() {
		worlds = append(worlds, modal.InitialWorld)
		worlds = setToSlice(toSet(worlds))
	}
	m := model.New(domain, worlds, st.Parser.IsModal(), modal.InitialWorld, accessib)
	for _, id := range path {
		assertLiteral(m, st.Nodes[id].Formula, st.Parser.IsModal(), accessib)
	}
	// The S5 bypass (§4.D) never materializes an Rwv literal for the
	// worlds it introduces, since S5's accessibility relation is simply
	// "every world sees every world" — so reconstruct it directly rather
	// than relying on literals the branch was built to skip.
	if st.branchUsesS5Bypass(path) {
		for _, w1 := range worlds {
			for _, w2 := range worlds {
				m.Assert(accessib, w1, w2)
			}
		}
	}
	if !m.SatisfiesInitFormulas(st.InitialModal) {
		tracer().Errorf("countermodel does not satisfy the initial formulas")
		return m, false
	}
	return m, true
}

func (st *SentenceTree) branchPath(leaf NodeID) []NodeID {
	var rev []NodeID
	for cur := leaf; cur != NoNode; cur = st.Nodes[cur].Parent {
		rev = append(rev, cur)
	}
	return reverseIDs(rev)
}

// branchUsesS5Bypass reports whether any node on path was produced by the
// collapsed-accessibility (modalGamma/modalDelta) rule.
func (st *SentenceTree) branchUsesS5Bypass(path []NodeID) bool {
	for _, id := range path {
		switch st.Nodes[id].FromRule {
		case tableau.RuleModalGamma, tableau.RuleModalDelta:
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := map[string]bool{}
	for _, s := range items {
		set[s] = true
	}
	return set
}

// assertLiteral asserts a branch literal into m. Atomic terms already
// carry the world as their trailing argument in the first-order
// translated vocabulary this runs over (§4.B), the same convention
// TranslateToModal strips back off, so no separate world lookup is
// needed here.
func assertLiteral(m *model.Model, f formula.Formula, isModal bool, accessib string) {
	switch t := f.(type) {
	case formula.Atomic:
		m.Assert(t.Pred, termStrings(t.Terms)...)
	case formula.Bin:
		if t.Op == tableau.And {
			assertLiteral(m, t.Sub1, isModal, accessib)
			assertLiteral(m, t.Sub2, isModal, accessib)
		}
	}
}

func (st *SentenceTree) collectDomainAndWorlds(path []NodeID) ([]string, []string) {
	domain := map[string]bool{}
	worlds := map[string]bool{}
	accessib := st.Parser.AccessibilityPredicate()
	isModal := st.Parser.IsModal()
	var walk func(f formula.Formula)
	walk = func(f formula.Formula) {
		switch t := f.(type) {
		case formula.Atomic:
			if t.Pred == accessib {
				for _, term := range t.Terms {
					worlds[term.String()] = true
				}
				return
			}
			terms := t.Terms
			if isModal && len(terms) > 0 {
				last := terms[len(terms)-1]
				worlds[last.String()] = true
				terms = terms[:len(terms)-1]
			}
			for _, term := range terms {
				domain[term.String()] = true
			}
		case formula.Neg:
			walk(t.Sub)
		case formula.Bin:
			walk(t.Sub1)
			walk(t.Sub2)
		}
	}
	for _, id := range path {
		walk(st.Nodes[id].Formula)
	}
	return setToSlice(domain), setToSlice(worlds)
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func termStrings(terms []formula.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String()
	}
	return out
}
