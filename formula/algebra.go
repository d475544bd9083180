package formula

import (
	"github.com/cnf/structhash"

	"github.com/lxthorne/tableau"
)

// Negate returns ¬f without simplification (§4.A).
func Negate(f Formula) Formula {
	return Neg{Sub: f}
}

// Substitute returns a fresh formula in which every occurrence of
// oldTerm (compared structurally) is replaced by newTerm. When
// shallow is false, composite function terms that structurally
// contain oldTerm are descended into as well; when shallow is true,
// only exact whole-term matches are replaced (§4.A). Well-typed input
// from the prover introduces only globally fresh variables, so
// capture cannot arise.
func Substitute(f Formula, old, new Term, shallow bool) Formula {
	switch t := f.(type) {
	case Atomic:
		terms := make([]Term, len(t.Terms))
		changed := false
		for i, term := range t.Terms {
			st := substituteTerm(term, old, new, shallow)
			if !st.Equals(term) {
				changed = true
			}
			terms[i] = st
		}
		if !changed {
			return f
		}
		return Atomic{Pred: t.Pred, Terms: terms, world: t.world}
	case Neg:
		return Neg{Sub: Substitute(t.Sub, old, new, shallow), world: t.world}
	case Bin:
		return Bin{
			Op:    t.Op,
			Sub1:  Substitute(t.Sub1, old, new, shallow),
			Sub2:  Substitute(t.Sub2, old, new, shallow),
			world: t.world,
		}
	case Quant:
		return Quant{
			Q:      t.Q,
			Var:    t.Var,
			Matrix: Substitute(t.Matrix, old, new, shallow),
			world:  t.world,
		}
	case ModalF:
		return ModalF{Op: t.Op, Sub: Substitute(t.Sub, old, new, shallow), world: t.world}
	}
	return f
}

// Alpha returns the i-th (i∈{1,2}) conjunct of an alpha (conjunctive)
// formula, applying the standard classical signs (§4.A). Callers must
// only call this for formulas whose Type() is TAlpha.
func Alpha(f Formula, i int) Formula {
	switch t := f.(type) {
	case Bin:
		if t.Op == tableau.And {
			if i == 1 {
				return t.Sub1
			}
			return t.Sub2
		}
	case Neg:
		if b, ok := t.Sub.(Bin); ok {
			switch b.Op {
			case tableau.Or:
				if i == 1 {
					return Negate(b.Sub1)
				}
				return Negate(b.Sub2)
			case tableau.Implies:
				if i == 1 {
					return b.Sub1
				}
				return Negate(b.Sub2)
			}
		}
	}
	tracer().Errorf("Alpha(%d) called on non-alpha formula %s", i, f)
	return f
}

// Beta returns the i-th (i∈{1,2}) disjunct of a beta (disjunctive)
// formula, applying the standard classical signs; for ↔ and its negation
// each of the two disjuncts is a conjunction (§4.A). Callers must only
// call this for formulas whose Type() is TBeta.
func Beta(f Formula, i int) Formula {
	switch t := f.(type) {
	case Bin:
		switch t.Op {
		case tableau.Or:
			if i == 1 {
				return t.Sub1
			}
			return t.Sub2
		case tableau.Implies:
			if i == 1 {
				return Negate(t.Sub1)
			}
			return t.Sub2
		case tableau.Iff:
			if i == 1 {
				return Bin{Op: tableau.And, Sub1: t.Sub1, Sub2: t.Sub2}
			}
			return Bin{Op: tableau.And, Sub1: Negate(t.Sub1), Sub2: Negate(t.Sub2)}
		}
	case Neg:
		if b, ok := t.Sub.(Bin); ok {
			switch b.Op {
			case tableau.And:
				if i == 1 {
					return Negate(b.Sub1)
				}
				return Negate(b.Sub2)
			case tableau.Iff:
				if i == 1 {
					return Bin{Op: tableau.And, Sub1: b.Sub1, Sub2: Negate(b.Sub2)}
				}
				return Bin{Op: tableau.And, Sub1: Negate(b.Sub1), Sub2: b.Sub2}
			}
		}
	}
	tracer().Errorf("Beta(%d) called on non-beta formula %s", i, f)
	return f
}

func flipQuantifier(q tableau.Quantifier) tableau.Quantifier {
	if q == tableau.Forall {
		return tableau.Exists
	}
	return tableau.Forall
}

func flipModal(op tableau.ModalOp) tableau.ModalOp {
	if op == tableau.Box {
		return tableau.Diamond
	}
	return tableau.Box
}

// Normalize returns an NNF equivalent in which ¬ is pushed to atoms, →
// and ↔ are eliminated (↔ as a disjunction of conjunctions), and
// double negations are removed (§4.A). Normalize is idempotent and
// preserves logical equivalence.
func Normalize(f Formula) Formula {
	switch t := f.(type) {
	case Atomic:
		return Atomic{Pred: t.Pred, Terms: t.Terms}
	case Neg:
		return normalizeNeg(t.Sub)
	case Bin:
		switch t.Op {
		case tableau.And, tableau.Or:
			return Bin{Op: t.Op, Sub1: Normalize(t.Sub1), Sub2: Normalize(t.Sub2)}
		case tableau.Implies:
			return Bin{Op: tableau.Or, Sub1: normalizeNeg(t.Sub1), Sub2: Normalize(t.Sub2)}
		case tableau.Iff:
			return Bin{
				Op: tableau.Or,
				Sub1: Bin{Op: tableau.And, Sub1: Normalize(t.Sub1), Sub2: Normalize(t.Sub2)},
				Sub2: Bin{Op: tableau.And, Sub1: normalizeNeg(t.Sub1), Sub2: normalizeNeg(t.Sub2)},
			}
		}
	case Quant:
		return Quant{Q: t.Q, Var: t.Var, Matrix: Normalize(t.Matrix)}
	case ModalF:
		return ModalF{Op: t.Op, Sub: Normalize(t.Sub)}
	}
	return f
}

// normalizeNeg computes Normalize(Negate(f)) without first materializing
// the un-pushed negation.
func normalizeNeg(f Formula) Formula {
	switch t := f.(type) {
	case Atomic:
		return Neg{Sub: Atomic{Pred: t.Pred, Terms: t.Terms}}
	case Neg:
		return Normalize(t.Sub)
	case Bin:
		switch t.Op {
		case tableau.And:
			return Bin{Op: tableau.Or, Sub1: normalizeNeg(t.Sub1), Sub2: normalizeNeg(t.Sub2)}
		case tableau.Or:
			return Bin{Op: tableau.And, Sub1: normalizeNeg(t.Sub1), Sub2: normalizeNeg(t.Sub2)}
		case tableau.Implies:
			return Bin{Op: tableau.And, Sub1: Normalize(t.Sub1), Sub2: normalizeNeg(t.Sub2)}
		case tableau.Iff:
			return Bin{
				Op: tableau.Or,
				Sub1: Bin{Op: tableau.And, Sub1: Normalize(t.Sub1), Sub2: normalizeNeg(t.Sub2)},
				Sub2: Bin{Op: tableau.And, Sub1: normalizeNeg(t.Sub1), Sub2: Normalize(t.Sub2)},
			}
		}
	case Quant:
		return Quant{Q: flipQuantifier(t.Q), Var: t.Var, Matrix: normalizeNeg(t.Matrix)}
	case ModalF:
		return ModalF{Op: flipModal(t.Op), Sub: normalizeNeg(t.Sub)}
	}
	return Neg{Sub: f}
}

// RenameSymbol returns a fresh formula in which every term headed by
// oldName — a bare symbol or a compound's functor, at any arity — is
// renamed to newName, applied recursively through every subformula. Used
// by the naming pass to replace a free variable or Skolem term with its
// assigned surface name wherever it occurs, including under different
// argument lists in different branches (§4.F).
func RenameSymbol(f Formula, oldName, newName string) Formula {
	switch t := f.(type) {
	case Atomic:
		terms := make([]Term, len(t.Terms))
		for i, term := range t.Terms {
			terms[i] = renameTerm(term, oldName, newName)
		}
		return Atomic{Pred: t.Pred, Terms: terms, world: t.world}
	case Neg:
		return Neg{Sub: RenameSymbol(t.Sub, oldName, newName), world: t.world}
	case Bin:
		return Bin{
			Op:    t.Op,
			Sub1:  RenameSymbol(t.Sub1, oldName, newName),
			Sub2:  RenameSymbol(t.Sub2, oldName, newName),
			world: t.world,
		}
	case Quant:
		return Quant{Q: t.Q, Var: t.Var, Matrix: RenameSymbol(t.Matrix, oldName, newName), world: t.world}
	case ModalF:
		return ModalF{Op: t.Op, Sub: RenameSymbol(t.Sub, oldName, newName), world: t.world}
	}
	return f
}

func renameTerm(t Term, oldName, newName string) Term {
	switch v := t.(type) {
	case Sym:
		if v.Name == oldName {
			return Sym{Name: newName}
		}
		return v
	case Compound:
		functor := v.Functor
		if functor == oldName {
			functor = newName
		}
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, oldName, newName)
		}
		return Compound{Functor: functor, Args: args}
	}
	return t
}

// HashKey returns a stable structural key for f, used by the CNF
// clause-builder to deduplicate literals and clauses
// without repeated O(n) Equals comparisons — the same tool the teacher
// reaches for to key parser item-sets during chart construction.
func HashKey(f Formula) string {
	h, err := structhash.Hash(struct{ S string }{S: f.String()}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return h
}
