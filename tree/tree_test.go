package tree

import (
	"testing"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
)

// fakeParser is a minimal proverapi.Parser, mirroring the one normalize's
// tests use, sufficient to drive denormalization and naming.
type fakeParser struct {
	arities  map[string]int
	kinds    map[string]tableau.ExpressionKind
	isModal  bool
	isProp   bool
	accessib string
}

func newFakeParser() *fakeParser {
	return &fakeParser{
		arities:  map[string]int{},
		kinds:    map[string]tableau.ExpressionKind{},
		accessib: "R",
	}
}

func (p *fakeParser) ParseFormula(string) (formula.Formula, error) { return nil, nil }
func (p *fakeParser) Arity(s string) (int, bool)                   { a, ok := p.arities[s]; return a, ok }
func (p *fakeParser) ExpressionType(s string) tableau.ExpressionKind {
	return p.kinds[s]
}
func (p *fakeParser) RegisterExpression(s string, k tableau.ExpressionKind, arity int) {
	p.arities[s] = arity
	p.kinds[s] = k
}
func (p *fakeParser) NewConstant() string            { return "?" }
func (p *fakeParser) NewWorldName(bool) string       { return "?" }
func (p *fakeParser) IsModal() bool                  { return p.isModal }
func (p *fakeParser) SetModal(b bool)                { p.isModal = b }
func (p *fakeParser) IsPropositional() bool          { return p.isProp }
func (p *fakeParser) SetPropositional(b bool)        { p.isProp = b }
func (p *fakeParser) AccessibilityPredicate() string { return p.accessib }

func atom(pred string, terms ...formula.Term) formula.Formula {
	return formula.Atomic{Pred: pred, Terms: terms}
}

func sym(n string) formula.Term { return formula.Sym{Name: n} }

// TestDenormalizeClosedPropositionalBranch builds the free-variable result
// for the trivial closed tableau on {p, ¬p}: an initial chain of two
// premise nodes, the second closing the branch.
func TestDenormalizeClosedPropositionalBranch(t *testing.T) {
	p := newFakeParser()
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: atom("p"), FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}, Used: true},
			{Formula: formula.Negate(atom("p")), FromRule: tableau.RuleInitial, FromNodes: []int{0}, Parent: 0, ClosedEnd: true, Used: true},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{atom("p"), formula.Negate(atom("p"))}, nil, nil, p)

	if st.Flat.Size() != 2 {
		t.Fatalf("got %d live nodes, want 2", st.Flat.Size())
	}
	root := st.Nodes[st.Root]
	if !root.IsSenNode {
		t.Errorf("root should be a premise (sentence) node")
	}
	if len(root.Children) != 1 {
		t.Fatalf("root should have exactly one child, got %d", len(root.Children))
	}
	child := st.Nodes[root.Children[0]]
	if !child.IsSenNode {
		t.Errorf("second premise node should also be a sentence node")
	}
	if !child.ClosedEnd {
		t.Errorf("second premise node should close the branch")
	}
	if !child.Used || root.IsRemoved || child.IsRemoved {
		t.Errorf("closed proof: every node should be kept, none removed")
	}

	if _, open := st.CounterModel(); open {
		t.Errorf("closed tableau should report no countermodel")
	}
}

// TestDenormalizeAlphaChainKeepsUnmatchedContent builds a root conjunction
// premise and its two-node alpha expansion, with the free-variable tree
// handing back content at the two positions that matches neither
// conjunct, and checks the denormalizer leaves that content in place
// instead of overwriting it.
func TestDenormalizeAlphaChainKeepsUnmatchedContent(t *testing.T) {
	p := newFakeParser()
	conj := formula.Bin{Op: tableau.And, Sub1: atom("p"), Sub2: atom("q")}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: conj, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			// Content matching neither alpha candidate; recomputeAll must
			// log the mismatch and keep it at this (first) position.
			{Formula: atom("bogus"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 0, Children: []int{2}},
			{Formula: atom("bogus2"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 1},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{conj}, nil, nil, p)

	c1 := st.Nodes[st.Root].Children[0]
	c2 := st.Nodes[c1].Children[0]
	if got := st.Nodes[c1].Formula.String(); got != "bogus" {
		t.Errorf("first position = %s, want bogus (unmatched content kept)", got)
	}
	if got := st.Nodes[c2].Formula.String(); got != "bogus2" {
		t.Errorf("second position = %s, want bogus2 (unmatched content kept)", got)
	}
}

// TestDenormalizeBetaSwapsBranchesWhenOrderDiffers builds a root
// disjunction premise whose two free-variable branches arrive in swapped
// order, and checks the denormalizer exchanges both formula content and
// physical child order to match the canonical Beta(f,1)/Beta(f,2) order.
// Both branches close and every node is marked used, so pruneUnused's
// closed-tree sweep removes nothing and the split stays intact to inspect.
func TestDenormalizeBetaSwapsBranchesWhenOrderDiffers(t *testing.T) {
	p := newFakeParser()
	disj := formula.Bin{Op: tableau.Or, Sub1: atom("p"), Sub2: atom("q")}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: disj, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1, 2}, Used: true},
			// Branch 0 (assembled first) actually holds q, the *second*
			// disjunct; branch 1 holds p, the first.
			{Formula: atom("q"), FromRule: tableau.RuleBeta, FromNodes: []int{0}, Parent: 0, ClosedEnd: true, Used: true},
			{Formula: atom("p"), FromRule: tableau.RuleBeta, FromNodes: []int{0}, Parent: 0, ClosedEnd: true, Used: true},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{disj}, nil, nil, p)

	root := st.Nodes[st.Root]
	if len(root.Children) != 2 {
		t.Fatalf("root should still have 2 children, got %d", len(root.Children))
	}
	first := st.Nodes[root.Children[0]]
	second := st.Nodes[root.Children[1]]
	if first.Formula.String() != "p" {
		t.Errorf("first branch after correction = %s, want p", first.Formula.String())
	}
	if second.Formula.String() != "q" {
		t.Errorf("second branch after correction = %s, want q", second.Formula.String())
	}
	if first.SwappedWith == NoNode || second.SwappedWith == NoNode {
		t.Errorf("both branches should record the swap")
	}
	if !first.ClosedEnd || !second.ClosedEnd {
		t.Errorf("both branches should keep their ClosedEnd through the reorder")
	}
}

// TestDenormalizeOpenTreeKeepsEveryBranch builds a beta split where only
// one branch is open, and checks the assembled tree keeps BOTH branches —
// pruning only ever fires once the whole tree is closed, never on an open
// one — while CounterModel still walks straight to the open leaf.
func TestDenormalizeOpenTreeKeepsEveryBranch(t *testing.T) {
	p := newFakeParser()
	disj := formula.Bin{Op: tableau.Or, Sub1: atom("p"), Sub2: atom("q")}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: disj, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1, 2}, Used: true},
			{Formula: atom("p"), FromRule: tableau.RuleBeta, FromNodes: []int{0}, Parent: 0, ClosedEnd: true, Used: true},
			{Formula: atom("q"), FromRule: tableau.RuleBeta, FromNodes: []int{0}, Parent: 0, ClosedEnd: false},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{disj}, nil, nil, p)

	root := st.Nodes[st.Root]
	if len(root.Children) != 2 {
		t.Fatalf("an open tableau keeps every branch, got %d children", len(root.Children))
	}
	for _, cid := range root.Children {
		if st.Nodes[cid].IsRemoved {
			t.Errorf("no branch should be removed while the tree is still open: node %d", cid)
		}
	}
	if st.Flat.Size() != 3 {
		t.Errorf("got %d live nodes, want 3 (nothing pruned from an open tree)", st.Flat.Size())
	}

	m, ok := st.CounterModel()
	if !ok {
		t.Fatalf("open tableau should yield a countermodel")
	}
	if !m.Satisfies("q") {
		t.Errorf("countermodel should be drawn from the open (q) branch")
	}
}

// TestDenormalizeGammaSubstitutesInstance builds a universally quantified
// premise and a gamma instantiation child, checking the child's formula is
// recovered by substituting InstanceTerm into the matrix.
func TestDenormalizeGammaSubstitutesInstance(t *testing.T) {
	p := newFakeParser()
	q := formula.Quant{Q: tableau.Forall, Var: "x", Matrix: atom("F", sym("x"))}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: q, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			{Formula: atom("placeholder"), FromRule: tableau.RuleGamma, FromNodes: []int{0}, InstanceTerm: sym("a"), Parent: 0},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{q}, nil, nil, p)
	child := st.Nodes[st.Nodes[st.Root].Children[0]]
	if got := child.Formula.String(); got != "Fa" {
		t.Errorf("gamma instance = %s, want Fa", got)
	}
}

// TestDenormalizeReinsertsDNE builds a node whose formula is a double
// negation and checks a synthetic DNE step is spliced in beneath it.
func TestDenormalizeReinsertsDNE(t *testing.T) {
	p := newFakeParser()
	dn := formula.Negate(formula.Negate(atom("p")))
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: dn, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			{Formula: atom("p"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 0},
		},
		Root: 0,
	}
	// Node 1 stays node 0's only child here; after reinsertion it sits
	// beneath the synthetic dne node the pass creates for node 0.
	fv.Nodes[0].Children = []int{1}
	st := Denormalize(fv, []formula.Formula{dn}, nil, nil, p)

	root := st.Nodes[st.Root]
	if len(root.Children) != 1 {
		t.Fatalf("root should have exactly one child (the synthetic DNE step), got %d", len(root.Children))
	}
	dneNode := st.Nodes[root.Children[0]]
	if dneNode.FromRule != tableau.RuleDNE {
		t.Errorf("spliced node should carry RuleDNE, got %s", dneNode.FromRule)
	}
	if dneNode.Formula.String() != "p" {
		t.Errorf("spliced node formula = %s, want p", dneNode.Formula.String())
	}
	if root.DNETo != dneNode.ID {
		t.Errorf("root.DNETo should point at the spliced node")
	}
}

// TestDenormalizeAlphaChainReversesWhenTransferredOutOfOrder builds an
// alpha chain whose two positions arrive reversed — position 1 actually
// holding the second conjunct, with the first one level further down —
// and checks correctAlphaChain physically swaps the two node identities
// (not just their displayed content) so each node's own ClosedEnd and
// SwappedWith bookkeeping travels with its real logical step.
func TestDenormalizeAlphaChainReversesWhenTransferredOutOfOrder(t *testing.T) {
	p := newFakeParser()
	conj := formula.Bin{Op: tableau.And, Sub1: atom("p"), Sub2: atom("q")}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: conj, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			// Position 1 actually holds the *second* conjunct; position 2
			// (one level down) holds the first.
			{Formula: atom("q"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 0, Children: []int{2}},
			{Formula: atom("p"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 1, ClosedEnd: true},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{conj}, nil, nil, p)

	root := st.Nodes[st.Root]
	if len(root.Children) != 1 {
		t.Fatalf("root should have one child, got %d", len(root.Children))
	}
	first := st.Nodes[root.Children[0]]
	if first.Formula.String() != "p" {
		t.Errorf("first position after reversal = %s, want p", first.Formula.String())
	}
	if !first.ClosedEnd {
		t.Errorf("ClosedEnd should have travelled with its own node identity through the swap")
	}
	if len(first.Children) != 1 {
		t.Fatalf("first position should chain to the second, got %d children", len(first.Children))
	}
	second := st.Nodes[first.Children[0]]
	if second.Formula.String() != "q" {
		t.Errorf("second position after reversal = %s, want q", second.Formula.String())
	}
	if first.SwappedWith != second.ID || second.SwappedWith != first.ID {
		t.Errorf("both nodes should record the swap against each other")
	}
}

// TestPruneRemovesBiconditionalByproductWhenTreeCloses builds a p↔q beta
// split whose both branches close, and checks the real closed-tree
// mark/sweep removes the intermediate conjunction byproduct on each side
// while keeping the two literal-split chains that replace it on display.
func TestPruneRemovesBiconditionalByproductWhenTreeCloses(t *testing.T) {
	p := newFakeParser()
	iff := formula.Bin{Op: tableau.Iff, Sub1: atom("p"), Sub2: atom("q")}
	cand1 := formula.Beta(iff, 1) // p∧q
	cand2 := formula.Beta(iff, 2) // ¬p∧¬q
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: iff, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1, 2}, Used: true},
			{Formula: cand1, FromRule: tableau.RuleBeta, FromNodes: []int{0}, Parent: 0, ClosedEnd: true, Used: true},
			{Formula: cand2, FromRule: tableau.RuleBeta, FromNodes: []int{0}, Parent: 0, ClosedEnd: true, Used: true},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{iff}, nil, nil, p)

	root := st.Nodes[st.Root]
	if len(root.Children) != 2 {
		t.Fatalf("root should have 2 children once the conjunction byproducts are pruned out, got %d", len(root.Children))
	}
	for _, cid := range root.Children {
		n := st.Nodes[cid]
		if n.BiconditionalExpansion {
			t.Errorf("node %d: the conjunction byproduct itself should have been pruned, not displayed", cid)
		}
		if len(n.Children) != 1 {
			t.Fatalf("node %d should chain to its literal partner, got %d children", cid, len(n.Children))
		}
	}
	for _, n := range st.Nodes {
		if n.BiconditionalExpansion && !n.IsRemoved {
			t.Errorf("biconditional byproduct node %d survived pruning", n.ID)
		}
	}

	if _, open := st.CounterModel(); open {
		t.Errorf("both branches close; should report no countermodel")
	}
}

// TestDenormalizeReinsertsDNEAfterAlphaPairFirstResult builds an alpha
// pair whose first result (¬¬p) is itself doubly negated, and checks the
// synthetic DNE splice lands after the pair's *second* result (q) rather
// than directly beneath the first, keeping the two alpha results
// contiguous on display (§9).
func TestDenormalizeReinsertsDNEAfterAlphaPairFirstResult(t *testing.T) {
	p := newFakeParser()
	dn := formula.Negate(formula.Negate(atom("p")))
	conj := formula.Bin{Op: tableau.And, Sub1: dn, Sub2: atom("q")}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: conj, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			{Formula: dn, FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 0, Children: []int{2}},
			{Formula: atom("q"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 1},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{conj}, nil, nil, p)

	root := st.Nodes[st.Root]
	c1 := st.Nodes[root.Children[0]]
	if c1.Formula.String() != "¬¬p" {
		t.Fatalf("first alpha result = %s, want ¬¬p", c1.Formula.String())
	}
	if len(c1.Children) != 1 {
		t.Fatalf("first alpha result should chain straight to the second, not to a spliced DNE node, got %d children", len(c1.Children))
	}
	c2 := st.Nodes[c1.Children[0]]
	if c2.Formula.String() != "q" {
		t.Fatalf("second alpha result = %s, want q", c2.Formula.String())
	}
	if len(c2.Children) != 1 {
		t.Fatalf("the synthetic DNE node should be spliced below the pair's second result, got %d children", len(c2.Children))
	}
	dneNode := st.Nodes[c2.Children[0]]
	if dneNode.FromRule != tableau.RuleDNE {
		t.Errorf("spliced node should carry RuleDNE, got %s", dneNode.FromRule)
	}
	if dneNode.Formula.String() != "p" {
		t.Errorf("spliced node formula = %s, want p", dneNode.Formula.String())
	}
	if c1.DNETo != dneNode.ID {
		t.Errorf("first alpha result's DNETo should point at the spliced node")
	}
}

// TestNamingPassRenamesFreeVariablesAndSkolemTerms builds a tiny tree whose
// formulas mention a free variable and a Skolem term in the prover's own
// internal (ξ/φ) vocabulary, and checks the naming pass assigns fresh,
// distinct surface names and rewrites every occurrence.
func TestNamingPassRenamesFreeVariablesAndSkolemTerms(t *testing.T) {
	p := newFakeParser()
	free := formula.Sym{Name: string(formula.FreeIndividualPrefix) + "1"}
	skolemName := string(formula.SkolemIndividualPrefix) + "1"
	// Simulate the external free-variable search having already classified
	// its own Skolem function symbol, the way the real prover would.
	p.RegisterExpression(skolemName, tableau.FunctionSymbol, 1)
	skolem := formula.Compound{Functor: skolemName, Args: []formula.Term{free}}
	f := formula.Bin{
		Op:   tableau.And,
		Sub1: atom("F", free),
		Sub2: atom("G", skolem),
	}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: f, FromRule: tableau.RuleInitial, Parent: -1},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{f}, nil, nil, p)

	got := st.Nodes[st.Root].Formula.String()
	// free -> "a" (first individual slot), skolem -> "b" (second individual
	// slot), applied to the already-renamed free variable.
	want := "(Fa∧Gb(a))"
	if got != want {
		t.Errorf("after naming pass, got %s, want %s", got, want)
	}
	if p.ExpressionType("a") != tableau.IndividualConstant {
		t.Errorf("a should be registered as an individual constant")
	}
	if p.ExpressionType("b") != tableau.FunctionSymbol {
		t.Errorf("b should be registered as a function symbol")
	}
}

// TestNamingPassSkipsAlreadyRegisteredCandidates checks the naming pass
// will not hand out a surface name the parser already has registered for
// something else, instead moving on to the next candidate in the pool.
func TestNamingPassSkipsAlreadyRegisteredCandidates(t *testing.T) {
	p := newFakeParser()
	p.RegisterExpression("a", tableau.IndividualConstant, 0) // already taken
	free := formula.Sym{Name: string(formula.FreeIndividualPrefix) + "1"}
	f := atom("F", free)
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: f, FromRule: tableau.RuleInitial, Parent: -1},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{f}, nil, nil, p)
	if got := st.Nodes[st.Root].Formula.String(); got != "Fb" {
		t.Errorf("got %s, want Fb (a already claimed)", got)
	}
}

// TestModalizeAndCounterModel drives the §8 ◇p scenario: the standard
// translation of ◇p is ∃v(Rwv∧pv); TranslateFromModal always produces
// this collapsed shape, so a single delta instantiation hits the S5
// bypass and opens the branch straight onto "p holds at v", with no
// separate Rwv node ever materialized. CounterModel must still recover
// the accessibility edge (S5: every world sees every world) to validate
// the witness, and Modalize must present the branch back as ◇p.
func TestModalizeAndCounterModel(t *testing.T) {
	p := newFakeParser()
	p.SetModal(true)
	p.RegisterExpression("w", tableau.WorldConstant, 0)
	p.RegisterExpression("v", tableau.WorldConstant, 0)

	diamond := formula.ModalF{Op: tableau.Diamond, Sub: atom("p")}
	translated := formula.Quant{
		Q:   tableau.Exists,
		Var: "v",
		Matrix: formula.Bin{
			Op:   tableau.And,
			Sub1: atom("R", sym("w"), sym("v")),
			Sub2: atom("p", sym("v")),
		},
	}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: translated, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			{Formula: atom("placeholder"), FromRule: tableau.RuleDelta, FromNodes: []int{0}, InstanceTerm: sym("v"), Parent: 0},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{diamond}, []formula.Formula{translated}, nil, p)

	bypassed := st.Nodes[st.Nodes[st.Root].Children[0]]
	if bypassed.FromRule != tableau.RuleModalDelta {
		t.Fatalf("delta instantiation of the collapsed shape should tag RuleModalDelta, got %s", bypassed.FromRule)
	}
	if got := bypassed.Formula.String(); got != "pv" {
		t.Fatalf("bypassed node should hold the bare matrix, got %s", got)
	}

	m, ok := st.CounterModel()
	if !ok {
		t.Fatalf("expected an open-branch countermodel")
	}
	if !m.Satisfies("R", "w", "v") {
		t.Errorf("S5 bypass should still let the countermodel assert the accessibility edge w->v")
	}
	if !m.Satisfies("p", "v") {
		t.Errorf("countermodel should assert p at world v")
	}

	st.Modalize(true)
	root := st.Nodes[st.Root]
	if root.Formula.Type() != formula.TDiamondy {
		t.Errorf("root should read back as diamond-typed, got %s", root.Formula.Type())
	}
	if root.Formula.String() != "◇p" {
		t.Errorf("root should read back as ◇p, got %s", root.Formula.String())
	}
}

// TestGetExpansionGroupsSameStepSiblings checks getExpansion returns every
// node sharing an expansion step, the bookkeeping a presenter uses to show
// a rule's whole output together.
func TestGetExpansionGroupsSameStepSiblings(t *testing.T) {
	p := newFakeParser()
	conj := formula.Bin{Op: tableau.And, Sub1: atom("p"), Sub2: atom("q")}
	fv := &FVTree{
		Nodes: []FVNode{
			{Formula: conj, FromRule: tableau.RuleInitial, Parent: -1, Children: []int{1}},
			{Formula: atom("p"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 0, Children: []int{2}},
			{Formula: atom("q"), FromRule: tableau.RuleAlpha, FromNodes: []int{0}, Parent: 1},
		},
		Root: 0,
	}
	st := Denormalize(fv, []formula.Formula{conj}, nil, nil, p)
	group := st.getExpansion(st.Root)
	if len(group) != 1 || group[0] != st.Root {
		t.Errorf("root's own expansion step should contain only itself, got %v", group)
	}
	c1 := st.Nodes[st.Root].Children[0]
	c2 := st.Nodes[c1].Children[0]
	pair := st.getExpansion(c1)
	if len(pair) != 2 || pair[0] != c1 || pair[1] != c2 {
		t.Errorf("the two alpha results should share one expansion step, got %v", pair)
	}
}
