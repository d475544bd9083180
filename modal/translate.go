package modal

import (
	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
	"github.com/lxthorne/tableau/proverapi"
)

// InitialWorld is the distinguished initial world constant the standard
// translation is anchored to (§4.B).
const InitialWorld = "w"

// TranslateFromModal introduces the initial world constant w and gives
// every predicate an extra, trailing world argument. □A becomes
// ∀v(Rwv→A[w:=v]); ◇A becomes ∃v(Rwv∧A[w:=v]); Boolean connectives
// thread the current world through their children. As a side effect it
// registers w, R and each newly-arity'd predicate with parser, and
// records IsModal/IsPropositional (§4.B).
func TranslateFromModal(f formula.Formula, parser proverapi.Parser) formula.Formula {
	parser.RegisterExpression(InitialWorld, tableau.WorldConstant, 0)
	parser.RegisterExpression(parser.AccessibilityPredicate(), tableau.Predicate, 2)
	parser.SetModal(containsModal(f))
	parser.SetPropositional(isPropositionalInput(f))
	w := formula.Sym{Name: InitialWorld}
	out := translateFromModal(f, w, parser)
	tracer().Debugf("translateFromModal(%s) = %s", f, out)
	return out
}

func translateFromModal(f formula.Formula, world formula.Term, parser proverapi.Parser) formula.Formula {
	switch t := f.(type) {
	case formula.Atomic:
		terms := append(append([]formula.Term{}, t.Terms...), world)
		parser.RegisterExpression(t.Pred, tableau.Predicate, len(terms))
		return formula.Atomic{Pred: t.Pred, Terms: terms}
	case formula.Neg:
		return formula.Neg{Sub: translateFromModal(t.Sub, world, parser)}
	case formula.Bin:
		return formula.Bin{
			Op:   t.Op,
			Sub1: translateFromModal(t.Sub1, world, parser),
			Sub2: translateFromModal(t.Sub2, world, parser),
		}
	case formula.Quant:
		return formula.Quant{Q: t.Q, Var: t.Var, Matrix: translateFromModal(t.Matrix, world, parser)}
	case formula.ModalF:
		v := parser.NewWorldName(false)
		// Registered as a world constant rather than a plain variable:
		// Skolemize and the naming pass both need to tell world-sorted
		// symbols from individual-sorted ones, and expressionType is the
		// only sort tag the Parser boundary exposes (§6).
		parser.RegisterExpression(v, tableau.WorldConstant, 0)
		vSym := formula.Sym{Name: v}
		r := formula.Atomic{Pred: parser.AccessibilityPredicate(), Terms: []formula.Term{world, vSym}}
		inner := translateFromModal(t.Sub, vSym, parser)
		if t.Op == tableau.Box {
			return formula.Quant{Q: tableau.Forall, Var: v, Matrix: formula.Bin{Op: tableau.Implies, Sub1: r, Sub2: inner}}
		}
		return formula.Quant{Q: tableau.Exists, Var: v, Matrix: formula.Bin{Op: tableau.And, Sub1: r, Sub2: inner}}
	}
	return f
}

func containsModal(f formula.Formula) bool {
	switch t := f.(type) {
	case formula.Neg:
		return containsModal(t.Sub)
	case formula.Bin:
		return containsModal(t.Sub1) || containsModal(t.Sub2)
	case formula.Quant:
		return containsModal(t.Matrix)
	case formula.ModalF:
		return true
	}
	return false
}

func isPropositionalInput(f formula.Formula) bool {
	switch t := f.(type) {
	case formula.Atomic:
		return len(t.Terms) == 0
	case formula.Neg:
		return isPropositionalInput(t.Sub)
	case formula.Bin:
		return isPropositionalInput(t.Sub1) && isPropositionalInput(t.Sub2)
	case formula.Quant:
		return isPropositionalInput(t.Matrix)
	case formula.ModalF:
		return isPropositionalInput(t.Sub)
	}
	return true
}

// SplitAccessibility recognizes the collapsed-accessibility shape
// ∀v(Rwv→A) / ∃v(Rwv∧A) that TranslateFromModal produces for □/◇ and
// returns the remaining matrix A with the Rwv conjunct/antecedent
// stripped off. It is shared with the tableau-node denormalizer's
// modalGamma/modalDelta handling and the S5 bypass (§4.D), so both sides
// of the pipeline agree on what "the collapsed shape" means.
func SplitAccessibility(q formula.Quant, accessibility string) (formula.Formula, bool) {
	b, ok := q.Matrix.(formula.Bin)
	if !ok {
		return nil, false
	}
	switch q.Q {
	case tableau.Forall:
		if b.Op != tableau.Implies || !isAccessibilityAtom(b.Sub1, accessibility, q.Var) {
			return nil, false
		}
		return b.Sub2, true
	case tableau.Exists:
		if b.Op != tableau.And || !isAccessibilityAtom(b.Sub1, accessibility, q.Var) {
			return nil, false
		}
		return b.Sub2, true
	}
	return nil, false
}

func isAccessibilityAtom(f formula.Formula, accessibility, boundVar string) bool {
	a, ok := f.(formula.Atomic)
	if !ok || a.Pred != accessibility || len(a.Terms) != 2 {
		return false
	}
	sym, ok := a.Terms[1].(formula.Sym)
	return ok && sym.Name == boundVar
}

// TranslateToModal is the inverse of TranslateFromModal on the syntactic
// shapes it produces, plus formulas derivable from them by tableau
// expansion (§4.B). It strips world arguments from predicates, recovers
// □ from ∀v(Rwv→…) and ◇ from ∃v(Rwv∧…) (and their negated forms), and
// attaches `world` labels to the remaining atoms for display.
func TranslateToModal(f formula.Formula, parser proverapi.Parser) formula.Formula {
	out := translateToModal(f, parser)
	tracer().Debugf("translateToModal(%s) = %s", f, out)
	return out
}

func translateToModal(f formula.Formula, parser proverapi.Parser) formula.Formula {
	r := parser.AccessibilityPredicate()
	switch t := f.(type) {
	case formula.Atomic:
		if t.Pred == r || len(t.Terms) == 0 {
			return t
		}
		world := t.Terms[len(t.Terms)-1]
		stripped := formula.Atomic{Pred: t.Pred, Terms: t.Terms[:len(t.Terms)-1]}
		return formula.WithWorld(stripped, world.String())
	case formula.Neg:
		if q, ok := t.Sub.(formula.Quant); ok {
			if m, ok := recoverModal(q, true, r); ok {
				return translateToModal(m, parser)
			}
		}
		return formula.Neg{Sub: translateToModal(t.Sub, parser)}
	case formula.Bin:
		return formula.Bin{
			Op:   t.Op,
			Sub1: translateToModal(t.Sub1, parser),
			Sub2: translateToModal(t.Sub2, parser),
		}
	case formula.Quant:
		if m, ok := recoverModal(t, false, r); ok {
			return translateToModal(m, parser)
		}
		return formula.Quant{Q: t.Q, Var: t.Var, Matrix: translateToModal(t.Matrix, parser)}
	case formula.ModalF:
		return formula.ModalF{Op: t.Op, Sub: translateToModal(t.Sub, parser)}
	}
	return f
}

// recoverModal matches q against the collapsed-accessibility shape and
// returns the equivalent ModalF, negated according to whether q was
// found under a negation.
func recoverModal(q formula.Quant, negated bool, accessibility string) (formula.Formula, bool) {
	matrix, ok := SplitAccessibility(q, accessibility)
	if !ok {
		return nil, false
	}
	switch {
	case q.Q == tableau.Forall && !negated:
		return formula.ModalF{Op: tableau.Box, Sub: matrix}, true
	case q.Q == tableau.Forall && negated:
		return formula.ModalF{Op: tableau.Diamond, Sub: formula.Negate(matrix)}, true
	case q.Q == tableau.Exists && !negated:
		return formula.ModalF{Op: tableau.Diamond, Sub: matrix}, true
	default: // Exists && negated
		return formula.ModalF{Op: tableau.Box, Sub: formula.Negate(matrix)}, true
	}
}
