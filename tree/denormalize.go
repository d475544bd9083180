package tree

import (
	"fmt"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
	"github.com/lxthorne/tableau/modal"
	"github.com/lxthorne/tableau/proverapi"
)

// Denormalize builds a SentenceTree from the prover's free-variable
// tableau result, recovering each node's formula in the original,
// unnormalized vocabulary (§4.D). The three initial-formula views are
// carried through unchanged for later presentation and countermodel
// sanity-checking (§3).
func Denormalize(fv *FVTree, initialModal, initialFO, initialNorm []formula.Formula, parser proverapi.Parser) *SentenceTree {
	st := NewSentenceTree(parser)
	st.InitialModal = initialModal
	st.InitialFirstOrder = initialFO
	st.InitialNormalized = initialNorm

	step := 0
	st.Root = st.assemble(fv, fv.Root, NoNode, &step, map[string]int{})
	st.recomputeAll(st.Root)
	st.pruneUnused()
	st.namingPass()
	tracer().Debugf("denormalized tree: %d nodes, %d live", len(st.Nodes), st.Flat.Size())
	return st
}

// assemble copies the FVTree rooted at fvIdx into st's arena, returning
// the root's NodeID. Children are assembled before the parent returns so
// correction passes can walk a fully-built subtree.
//
// groups tracks, per (rule, origin) pair, the expansionStep already
// assigned to the first node of that rule application. Alpha and beta
// each produce their two results as two separate FVNodes sharing the
// same FromRule and FromNodes — invariant 4 requires both to carry one
// shared step — so the second node seen for a given key reuses the
// first's step instead of minting a new one. Every other rule is
// single-result per application (even when a quantifier is instantiated
// more than once, each instantiation is its own application) and always
// gets a fresh step.
func (st *SentenceTree) assemble(fv *FVTree, fvIdx int, parent NodeID, step *int, groups map[string]int) NodeID {
	fn := fv.Nodes[fvIdx]
	from := make([]NodeID, len(fn.FromNodes))
	// fvIdx's FromNodes reference other FVTree indices; since we assemble
	// top-down and FromNodes only ever points at an ancestor, the mapping
	// already exists once that ancestor's own assemble call returns.
	for i, f := range fn.FromNodes {
		from[i] = st.fvToNodeID[f]
	}
	id := st.makeNode(fn.Formula, fn.FromRule, from, parent)
	n := st.Nodes[id]
	n.InstanceTerm = fn.InstanceTerm
	n.ClosedEnd = fn.ClosedEnd
	n.Used = fn.Used
	n.IsSenNode = fn.FromRule == tableau.RuleInitial
	if key, grouped := expansionGroupKey(fn.FromRule, from); grouped {
		if s, ok := groups[key]; ok {
			n.ExpansionStep = s
		} else {
			n.ExpansionStep = *step
			groups[key] = *step
			*step++
		}
	} else {
		n.ExpansionStep = *step
		*step++
	}
	if st.fvToNodeID == nil {
		st.fvToNodeID = map[int]NodeID{}
	}
	st.fvToNodeID[fvIdx] = id
	if parent != NoNode {
		st.appendChild(parent, id)
	}
	for _, c := range fn.Children {
		st.assemble(fv, c, id, step, groups)
	}
	return id
}

func expansionGroupKey(rule tableau.RuleTag, from []NodeID) (string, bool) {
	if (rule != tableau.RuleAlpha && rule != tableau.RuleBeta) || len(from) == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", rule, from[0]), true
}

// recomputeAll walks the assembled tree and recovers every non-root
// node's formula from its origin and rule, applying alpha/beta ordering
// correction, modal S5-bypass recognition, and double-negation
// reinsertion along the way (§4.D). It re-reads a node's Children fresh
// on every recursive step (rather than a value captured before visiting
// it) since correctAlphaChain's reverse and reinsertDNEAt's splice can
// both rewrite the shape directly below the node being visited.
func (st *SentenceTree) recomputeAll(id NodeID) {
	n := st.Nodes[id]
	switch n.FromRule {
	case tableau.RuleAlpha:
		st.correctAlphaChain(n.FromNodes[0])
	case tableau.RuleBeta:
		st.correctBeta(n.FromNodes[0])
	case tableau.RuleGamma, tableau.RuleDelta, tableau.RuleModalGamma, tableau.RuleModalDelta:
		st.correctQuantifierChild(id)
		st.reinsertDNEAt(id)
	case tableau.RuleInitial, tableau.RuleDNE:
		st.reinsertDNEAt(id)
	}
	for _, c := range st.Nodes[id].Children {
		st.recomputeAll(c)
	}
}

// correctAlphaChain recovers the canonical (Alpha(f,1) then Alpha(f,2))
// content for an alpha origin's two-node chain (§4.D). The two positions
// are usually filled in order, but if the prover's search handed them
// back reversed — the first position actually holding alpha2's content,
// with alpha1 one level further down — reverse physically swaps the two
// node identities first, so each node's own bookkeeping (closedEnd,
// fromNodes back-references) travels with its real logical step rather
// than just the rendered content. A position whose content does not
// normalize to its candidate is logged and keeps its formula.
func (st *SentenceTree) correctAlphaChain(originID NodeID) {
	origin := st.Nodes[originID]
	if origin.Formula.Type() != formula.TAlpha || len(origin.Children) != 1 {
		return
	}
	cand1 := formula.Alpha(origin.Formula, 1)
	cand2 := formula.Alpha(origin.Formula, 2)
	c1 := st.Nodes[origin.Children[0]]
	if len(c1.Children) == 1 && formula.Normalize(c1.Formula).Equals(formula.Normalize(cand2)) {
		c2ID := c1.Children[0]
		st.reverse(c1.ID, c2ID)
		c1 = st.Nodes[origin.Children[0]]
	}
	if formula.Normalize(c1.Formula).Equals(formula.Normalize(cand1)) {
		c1.Formula = cand1
	} else {
		tracer().Errorf("node %d does not match alpha result 1 of node %d; left unchanged", c1.ID, originID)
	}
	if len(c1.Children) != 1 {
		return // closed before the second conjunct was ever produced
	}
	c2 := st.Nodes[c1.Children[0]]
	if formula.Normalize(c2.Formula).Equals(formula.Normalize(cand2)) {
		c2.Formula = cand2
	} else {
		tracer().Errorf("node %d does not match alpha result 2 of node %d; left unchanged", c2.ID, originID)
	}
	st.expandBiconditionalByproduct(c1.ID)
	st.expandBiconditionalByproduct(c2.ID)
	st.reinsertDNEAt(c1.ID)
	st.reinsertDNEAt(c2.ID)
}

// correctBeta recovers canonical (Beta(f,1), Beta(f,2)) content and
// physical child order for a beta origin's two branches (§4.D). If the
// first branch matches neither candidate, the mismatch is logged and both
// branches keep their formulas. A beta-byproduct conjunction (from a ↔ or its negation) is further split
// into two literal nodes by expandBiconditionalByproduct.
func (st *SentenceTree) correctBeta(originID NodeID) {
	origin := st.Nodes[originID]
	if origin.Formula.Type() != formula.TBeta || len(origin.Children) != 2 {
		return
	}
	a, b := origin.Children[0], origin.Children[1]
	na, nb := st.Nodes[a], st.Nodes[b]
	cand1 := formula.Beta(origin.Formula, 1)
	cand2 := formula.Beta(origin.Formula, 2)
	switch got := formula.Normalize(na.Formula); {
	case formula.Normalize(cand1).Equals(got):
		na.Formula, nb.Formula = cand1, cand2
	case formula.Normalize(cand2).Equals(got):
		na.Formula, nb.Formula = cand2, cand1
		origin.Children[0], origin.Children[1] = b, a
		na.SwappedWith, nb.SwappedWith = b, a
	default:
		tracer().Errorf("beta results of node %d match neither candidate; left unchanged", originID)
	}
	st.expandBiconditionalByproduct(a)
	st.expandBiconditionalByproduct(b)
	st.reinsertDNEAt(a)
	st.reinsertDNEAt(b)
}

// expandBiconditionalByproduct splits a beta/alpha-chain child that is
// itself a conjunction (the shape Beta produces for ↔ and its negation)
// into two stacked literal nodes. The conjunction-holding node itself is
// what the prover's NNF-based search actually produced as one step; it
// is flagged biconditionalExpansion and forced unused so pruneUnused
// removes it once the tree closes, leaving only the two literal splits
// on display (§4.D).
func (st *SentenceTree) expandBiconditionalByproduct(id NodeID) {
	n := st.Nodes[id]
	if n.Formula.Type() != formula.TAlpha || len(n.Children) != 0 {
		return
	}
	if _, ok := n.Formula.(formula.Bin); !ok {
		return
	}
	n.BiconditionalExpansion = true
	n.Used = false
	c1 := st.makeNode(formula.Alpha(n.Formula, 1), tableau.RuleAlpha, []NodeID{id}, id)
	nc1 := st.Nodes[c1]
	nc1.ExpansionStep = n.ExpansionStep
	nc1.Used = true
	n.Children = []NodeID{c1}
	c2 := st.makeNode(formula.Alpha(n.Formula, 2), tableau.RuleAlpha, []NodeID{c1}, c1)
	nc2 := st.Nodes[c2]
	nc2.ExpansionStep = n.ExpansionStep
	nc2.Used = true
	nc1.Children = []NodeID{c2}
	// n was the branch's actual leaf before this split; the new, deeper c2
	// is now the real leaf and inherits whatever close/open status n held.
	nc2.ClosedEnd = n.ClosedEnd
	n.ClosedEnd = false
}

// correctQuantifierChild recomputes a gamma/delta child's formula by
// substituting its InstanceTerm into the quantifier origin's matrix,
// recognizing the collapsed-accessibility shape TranslateFromModal
// produces for □/◇ and bypassing the intermediate accessibility atom
// when so — the S5 optimization (§4.D).
func (st *SentenceTree) correctQuantifierChild(id NodeID) {
	n := st.Nodes[id]
	if n.InstanceTerm == nil || len(n.FromNodes) == 0 {
		return
	}
	origin := st.Nodes[n.FromNodes[0]]
	q, ok := origin.Formula.(formula.Quant)
	if !ok {
		return
	}
	if m, ok := modal.SplitAccessibility(q, st.Parser.AccessibilityPredicate()); ok {
		n.Formula = formula.Substitute(m, formula.Sym{Name: q.Var}, n.InstanceTerm, false)
		if q.Q == tableau.Forall {
			n.FromRule = tableau.RuleModalGamma
		} else {
			n.FromRule = tableau.RuleModalDelta
		}
		return
	}
	n.Formula = formula.Substitute(q.Matrix, formula.Sym{Name: q.Var}, n.InstanceTerm, false)
}

// reinsertDNEAt checks node id — already holding its finalized content
// for this visit — for a collapsed double negation and, if found,
// splices in a synthetic node holding the de-negated formula, spelling
// out as its own tableau step the double-negation elimination the
// prover's NNF-based search never had to perform explicitly (§4.D).
//
// Folded into recomputeAll's walk (rather than run as a separate pass
// afterward) so that by the time recomputeAll reaches a node whose
// origin is O, any FromNodes reference to O has already been repointed
// at the synthetic node — recomputeAll's own candidate matching is
// type-guarded and silently no-ops against O's still-doubly-negated
// formula otherwise.
//
// If O is the first of an alpha pair — its only child shares its
// FromNodes, i.e. both are the two results of the very same alpha
// application (§9) — the synthetic node is spliced in after the second
// result instead of directly below O, keeping the pair contiguous on
// display.
func (st *SentenceTree) reinsertDNEAt(id NodeID) {
	n := st.Nodes[id]
	if n.DNETo != NoNode {
		return // already processed; correctAlphaChain/correctBeta call in redundantly
	}
	if n.Formula == nil || n.Formula.Type() != formula.TDoubleNegation {
		return
	}
	neg, ok := n.Formula.(formula.Neg)
	if !ok {
		return
	}
	inner, ok := neg.Sub.(formula.Neg)
	if !ok {
		return
	}
	spliceBelow := n
	if len(n.Children) == 1 {
		if o2 := st.Nodes[n.Children[0]]; o2.FromRule == tableau.RuleAlpha && sameFromNodes(o2.FromNodes, n.FromNodes) {
			spliceBelow = o2
		}
	}
	dneID := st.makeNode(inner.Sub, tableau.RuleDNE, []NodeID{n.ID}, spliceBelow.ID)
	dne := st.Nodes[dneID]
	dne.Used = true
	dne.ExpansionStep = n.ExpansionStep
	dne.Children = spliceBelow.Children
	for _, c := range spliceBelow.Children {
		st.Nodes[c].Parent = dneID
	}
	spliceBelow.Children = []NodeID{dneID}
	n.DNETo = dneID
	st.repointFromNodes(n.ID, dneID)
}

// repointFromNodes rewrites every node's FromNodes entries equal to old
// to repl, except on repl itself — used when a synthetic node takes over
// an existing node's role as another node's origin (§4.D).
func (st *SentenceTree) repointFromNodes(old, repl NodeID) {
	for _, node := range st.Nodes {
		if node.ID == repl {
			continue
		}
		for i, f := range node.FromNodes {
			if f == old {
				node.FromNodes[i] = repl
			}
		}
	}
}

func sameFromNodes(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
