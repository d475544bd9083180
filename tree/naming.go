package tree

import (
	"fmt"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
)

// namingPass walks the flat (pruned, presentation-order) node list,
// finds every free variable (ξ/ζ prefix) and Skolem term (φ/ω prefix),
// and replaces each distinct symbol — wherever it occurs, under
// whatever argument list — with a fresh surface name: "a".."o" then
// "a2", "a3", … for individuals, "v","u","t","s","r","q","p" then "w2",
// "w3", … for worlds (the plain "w" is reserved for the initial world),
// skipping any candidate the parser already has registered (§4.F).
func (st *SentenceTree) namingPass() {
	order, sorts := st.collectNamingCandidates()
	translation := map[string]string{}
	for _, old := range order {
		isWorld := sorts[old]
		neu := st.claimSurfaceName(isWorld)
		translation[old] = neu
		arity, _ := st.Parser.Arity(old)
		kind := st.Parser.ExpressionType(old)
		if kind == tableau.Unclassified {
			arity = 0
			if isWorld {
				kind = tableau.WorldConstant
			} else {
				kind = tableau.IndividualConstant
			}
		}
		st.Parser.RegisterExpression(neu, kind, arity)
	}
	for i := 0; i < st.Flat.Size(); i++ {
		v, _ := st.Flat.Get(i)
		id := v.(NodeID)
		n := st.Nodes[id]
		for old, neu := range translation {
			n.Formula = formula.RenameSymbol(n.Formula, old, neu)
		}
	}
	tracer().Debugf("naming pass: %d symbols renamed", len(translation))
}

// collectNamingCandidates returns every free-variable/Skolem-term name
// found in the flat node list, in first-discovery order, plus whether
// each is world- or individual-sorted.
func (st *SentenceTree) collectNamingCandidates() ([]string, map[string]bool) {
	var order []string
	sorts := map[string]bool{}
	record := func(t formula.Term) {
		var name string
		switch v := t.(type) {
		case formula.Sym:
			if !formula.IsFreeVariable(t) && !formula.IsSkolemTerm(t) {
				return
			}
			name = v.Name
		case formula.Compound:
			if !formula.IsSkolemTerm(t) {
				return
			}
			name = v.Functor
		default:
			return
		}
		if _, seen := sorts[name]; seen {
			return
		}
		sorts[name] = isWorldSorted(name)
		order = append(order, name)
	}
	for i := 0; i < st.Flat.Size(); i++ {
		v, _ := st.Flat.Get(i)
		id := v.(NodeID)
		collectFormulaSymbols(st.Nodes[id].Formula, record)
	}
	return order, sorts
}

func isWorldSorted(name string) bool {
	r := []rune(name)[0]
	return r == formula.FreeWorldPrefix || r == formula.SkolemWorldPrefix
}

func collectFormulaSymbols(f formula.Formula, visit func(formula.Term)) {
	switch t := f.(type) {
	case formula.Atomic:
		for _, term := range t.Terms {
			collectTermSymbols(term, visit)
		}
	case formula.Neg:
		collectFormulaSymbols(t.Sub, visit)
	case formula.Bin:
		collectFormulaSymbols(t.Sub1, visit)
		collectFormulaSymbols(t.Sub2, visit)
	case formula.Quant:
		collectFormulaSymbols(t.Matrix, visit)
	case formula.ModalF:
		collectFormulaSymbols(t.Sub, visit)
	}
}

func collectTermSymbols(t formula.Term, visit func(formula.Term)) {
	visit(t)
	if c, ok := t.(formula.Compound); ok {
		for _, a := range c.Args {
			collectTermSymbols(a, visit)
		}
	}
}

// claimSurfaceName returns the next unclaimed surface name for the given
// sort, consulting both names this pass has already issued and names
// already registered for something else.
func (st *SentenceTree) claimSurfaceName(isWorld bool) string {
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o"}
	overflowBase := "a"
	if isWorld {
		pool = []string{"v", "u", "t", "s", "r", "q", "p"}
		overflowBase = "w"
	}
	for _, cand := range pool {
		if st.canClaim(cand) {
			st.Issued.Add(cand)
			return cand
		}
	}
	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s%d", overflowBase, n)
		if st.canClaim(cand) {
			st.Issued.Add(cand)
			return cand
		}
	}
}

func (st *SentenceTree) canClaim(cand string) bool {
	if st.Issued.Contains(cand) {
		return false
	}
	return st.Parser.ExpressionType(cand) == tableau.Unclassified
}
