package tree

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
	"github.com/lxthorne/tableau/proverapi"
)

// NodeID indexes into a SentenceTree's node arena, starting at 0 for the
// first node allocated; NoNode is used for "no parent"/"no link" fields.
type NodeID int

// NoNode is the nil NodeID.
const NoNode NodeID = -1

// Node is one step of a sentence tableau (§3): a formula, the rule that
// produced it, the node(s) it was produced from, and the bookkeeping the
// denormalizer and naming pass attach along the way. Each Node owns its
// own FromNodes slice — never aliased with a sibling's — so pruning and
// renaming can rewrite one node without disturbing another.
type Node struct {
	ID            NodeID
	Formula       formula.Formula
	FromNodes     []NodeID
	FromRule      tableau.RuleTag
	InstanceTerm  formula.Term // substituted-in term for gamma/delta/modalGamma/modalDelta, nil otherwise
	ExpansionStep int
	Used          bool
	ClosedEnd     bool
	Parent        NodeID
	Children      []NodeID
	IsSenNode     bool // true for an original (premise) sentence, false for a derived one

	// BiconditionalExpansion flags a ↔ beta-byproduct conjunction node
	// that has been split into two new child nodes holding its conjuncts;
	// the flagged node itself is the one pruning removes.
	BiconditionalExpansion bool
	// DNETo points at the node a double-negation-elimination step
	// resolves to, or NoNode.
	DNETo NodeID
	// SwappedWith records the node this node's position was exchanged
	// with during alpha/beta candidate matching (its beta sibling, or its
	// alpha partner in reverse), or NoNode.
	SwappedWith NodeID
	IsRemoved   bool
}

// FVNode is one node of the prover's free-variable tableau — the input
// shape the denormalizer consumes. The prover itself is an external
// collaborator (§1); this is the boundary its search result crosses at.
// Used is set by the prover to record whether the node participates in
// the closure of a branch; the assembler only ever refines it (§3, §4.E).
type FVNode struct {
	Formula      formula.Formula
	FromNodes    []int
	FromRule     tableau.RuleTag
	InstanceTerm formula.Term
	Parent       int
	Children     []int
	ClosedEnd    bool
	Used         bool
}

// FVTree is the prover's free-variable tableau result: a flat arena of
// FVNodes plus the index of its root.
type FVTree struct {
	Nodes []FVNode
	Root  int
}

// Branch is a path through an FVTree or SentenceTree, root to leaf,
// expressed as a sequence of node indices.
type Branch struct {
	NodeIDs []NodeID
}

// SentenceTree is the assembled, human-readable tableau (§3). Nodes is
// the arena, indexed by NodeID; Flat holds the pruned, presentation-order
// node list; Issued is the set of surface constants the naming pass has
// claimed.
type SentenceTree struct {
	Nodes  []*Node
	Root   NodeID
	Flat   *arraylist.List
	Issued *treeset.Set

	// InitialModal, InitialFirstOrder and InitialNormalized are the three
	// versions of the initial formula set tracked throughout assembly
	// (§3): as the user wrote it, after TranslateFromModal, and after
	// normalize.ClausalNormalForm.
	InitialModal      []formula.Formula
	InitialFirstOrder []formula.Formula
	InitialNormalized []formula.Formula

	Parser proverapi.Parser

	// fvToNodeID maps an in-progress FVTree index to the NodeID assemble
	// allocated for it; scratch state, only populated during Denormalize.
	fvToNodeID map[int]NodeID
}

func nodeIDComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(NodeID)), int(b.(NodeID)))
}

// NewSentenceTree creates an empty tree ready for assembly from an
// FVTree via Denormalize.
func NewSentenceTree(parser proverapi.Parser) *SentenceTree {
	return &SentenceTree{
		Nodes:  nil,
		Root:   NoNode,
		Flat:   arraylist.New(),
		Issued: treeset.NewWith(utils.StringComparator),
		Parser: parser,
	}
}

// makeNode allocates and appends a new node to the arena, returning its
// fresh ID (§4.E).
func (st *SentenceTree) makeNode(f formula.Formula, rule tableau.RuleTag, from []NodeID, parent NodeID) NodeID {
	id := NodeID(len(st.Nodes))
	n := &Node{
		ID:           id,
		Formula:      f,
		FromNodes:    append([]NodeID{}, from...),
		FromRule:     rule,
		InstanceTerm: nil,
		Parent:       parent,
		Children:     nil,
		DNETo:        NoNode,
		SwappedWith:  NoNode,
	}
	st.Nodes = append(st.Nodes, n)
	return id
}

// appendChild links child under parent (§4.E). Used is never touched
// here: it is set by the prover on each FVNode and only ever refined
// afterwards, by pruneUnused's expansion-group propagation.
func (st *SentenceTree) appendChild(parent, child NodeID) {
	p := st.Nodes[parent]
	p.Children = append(p.Children, child)
}

// reverseIDs returns ids reversed, the order branchPath needs when it
// has collected a branch's nodes leaf-to-root and must return them
// root-to-leaf.
func reverseIDs(ids []NodeID) []NodeID {
	out := make([]NodeID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

// reverse implements the assembler's order-correction primitive (§4.E):
// where b is a's only child, it swaps their tree positions so b becomes
// a's parent and a becomes b's only child. Each node keeps its own
// identity — and with it its own closedEnd, fromNodes and InstanceTerm —
// only the Parent/Children links move, and both ends record the
// exchange via SwappedWith.
func (st *SentenceTree) reverse(a, b NodeID) {
	na, nb := st.Nodes[a], st.Nodes[b]
	grandparent := na.Parent
	bChildren := nb.Children

	nb.Parent = grandparent
	if grandparent == NoNode {
		st.Root = b
	} else {
		gp := st.Nodes[grandparent]
		for i, c := range gp.Children {
			if c == a {
				gp.Children[i] = b
			}
		}
	}
	nb.Children = []NodeID{a}

	na.Parent = b
	na.Children = append([]NodeID{}, bChildren...)
	for _, c := range bChildren {
		st.Nodes[c].Parent = a
	}

	na.SwappedWith = b
	nb.SwappedWith = a
}

// remove splices id out of the tree (§4.E): its own children — however
// many it has — are promoted to occupy its old slot under its parent,
// inheriting its InstanceTerm if it carried one. This breaks the
// at-most-two-children invariant only when id's parent is itself a
// two-child branch point and id carries two children of its own —
// removing id there would leave the parent with three children, so that
// shape is refused and id simply survives, used or not. The root is
// never removed.
func (st *SentenceTree) remove(id NodeID) bool {
	n := st.Nodes[id]
	if n.Parent == NoNode {
		return false
	}
	p := st.Nodes[n.Parent]
	if len(p.Children) == 2 && len(n.Children) == 2 {
		tracer().Errorf("refusing to remove node %d: a branch point under another branch point", id)
		return false
	}
	replacement := append([]NodeID{}, n.Children...)
	kept := make([]NodeID, 0, len(p.Children)-1+len(replacement))
	for _, c := range p.Children {
		if c == id {
			kept = append(kept, replacement...)
		} else {
			kept = append(kept, c)
		}
	}
	p.Children = kept
	for _, c := range replacement {
		st.Nodes[c].Parent = n.Parent
		if n.InstanceTerm != nil {
			st.Nodes[c].InstanceTerm = n.InstanceTerm
		}
	}
	n.IsRemoved = true
	n.Used = false
	n.Children = nil
	return true
}

// getExpansion returns every node sharing n's ExpansionStep — the group
// of sibling nodes a single rule application produced together (§4.E).
func (st *SentenceTree) getExpansion(n NodeID) []NodeID {
	step := st.Nodes[n].ExpansionStep
	var out []NodeID
	for _, node := range st.Nodes {
		if node.ExpansionStep == step {
			out = append(out, node.ID)
		}
	}
	return out
}
