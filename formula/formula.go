package formula

import (
	"github.com/lxthorne/tableau"
)

// Type groups a formula's expansion behavior into one of Smullyan's
// classes, plus the two bookkeeping classes the denormalizer needs
// (literal and doublenegation) — §3.
type Type int8

const (
	TLiteral Type = iota
	TAlpha
	TBeta
	TGamma
	TDelta
	TBoxy
	TDiamondy
	TDoubleNegation
)

func (t Type) String() string {
	switch t {
	case TAlpha:
		return "alpha"
	case TBeta:
		return "beta"
	case TGamma:
		return "gamma"
	case TDelta:
		return "delta"
	case TBoxy:
		return "boxy"
	case TDiamondy:
		return "diamondy"
	case TDoubleNegation:
		return "doublenegation"
	default:
		return "literal"
	}
}

// Formula is the common interface of all syntactic-tree variants (§3).
type Formula interface {
	String() string
	Equals(Formula) bool
	Type() Type
	// World returns the display-only world label attached by the
	// modalizer, if any (§4.G). It is never part of structural equality.
	World() (string, bool)
	isFormula()
}

// Atomic is a predicate symbol applied to an ordered term list.
// Propositional letters are atoms of arity 0.
type Atomic struct {
	Pred  string
	Terms []Term
	world string
}

// Neg holds one subformula.
type Neg struct {
	Sub   Formula
	world string
}

// Bin is a binary connective over two subformulas.
type Bin struct {
	Op         tableau.BinOp
	Sub1, Sub2 Formula
	world      string
}

// Quant is a quantified formula.
type Quant struct {
	Q      tableau.Quantifier
	Var    string
	Matrix Formula
	world  string
}

// ModalF is a modal formula. Absent after translation to first order.
type ModalF struct {
	Op    tableau.ModalOp
	Sub   Formula
	world string
}

func (Atomic) isFormula() {}
func (Neg) isFormula()    {}
func (Bin) isFormula()    {}
func (Quant) isFormula()  {}
func (ModalF) isFormula() {}

func (a Atomic) World() (string, bool) { return a.world, a.world != "" }
func (n Neg) World() (string, bool)    { return n.world, n.world != "" }
func (b Bin) World() (string, bool)    { return b.world, b.world != "" }
func (q Quant) World() (string, bool)  { return q.world, q.world != "" }
func (m ModalF) World() (string, bool) { return m.world, m.world != "" }

// WithWorld returns a copy of f carrying the given display-only world
// label (§3). It never changes logical content.
func WithWorld(f Formula, w string) Formula {
	switch t := f.(type) {
	case Atomic:
		t.world = w
		return t
	case Neg:
		t.world = w
		return t
	case Bin:
		t.world = w
		return t
	case Quant:
		t.world = w
		return t
	case ModalF:
		t.world = w
		return t
	}
	return f
}

// --- String rendering -------------------------------------------------

func (a Atomic) String() string {
	s := a.Pred
	for _, t := range a.Terms {
		s += t.String()
	}
	return s
}

func (n Neg) String() string { return "¬" + n.Sub.String() }

func (b Bin) String() string {
	return "(" + b.Sub1.String() + b.Op.String() + b.Sub2.String() + ")"
}

func (q Quant) String() string {
	return q.Q.String() + q.Var + q.Matrix.String()
}

func (m ModalF) String() string { return m.Op.String() + m.Sub.String() }

// --- Structural equality (not logical equivalence; §4.A) --------------

func (a Atomic) Equals(g Formula) bool {
	o, ok := g.(Atomic)
	if !ok || o.Pred != a.Pred || len(o.Terms) != len(a.Terms) {
		return false
	}
	for i, t := range a.Terms {
		if !t.Equals(o.Terms[i]) {
			return false
		}
	}
	return true
}

func (n Neg) Equals(g Formula) bool {
	o, ok := g.(Neg)
	return ok && n.Sub.Equals(o.Sub)
}

func (b Bin) Equals(g Formula) bool {
	o, ok := g.(Bin)
	return ok && b.Op == o.Op && b.Sub1.Equals(o.Sub1) && b.Sub2.Equals(o.Sub2)
}

func (q Quant) Equals(g Formula) bool {
	o, ok := g.(Quant)
	return ok && q.Q == o.Q && q.Var == o.Var && q.Matrix.Equals(o.Matrix)
}

func (m ModalF) Equals(g Formula) bool {
	o, ok := g.(ModalF)
	return ok && m.Op == o.Op && m.Sub.Equals(o.Sub)
}

// --- Type classification -----------------------------------------------

func (Atomic) Type() Type { return TLiteral }

func (n Neg) Type() Type {
	switch s := n.Sub.(type) {
	case Atomic:
		return TLiteral
	case Neg:
		return TDoubleNegation
	case Bin:
		switch s.Op {
		case tableau.And:
			return TBeta
		case tableau.Or, tableau.Implies:
			return TAlpha
		case tableau.Iff:
			return TBeta
		}
	case Quant:
		if s.Q == tableau.Forall {
			return TDelta
		}
		return TGamma
	case ModalF:
		if s.Op == tableau.Box {
			return TDiamondy
		}
		return TBoxy
	}
	return TLiteral
}

func (b Bin) Type() Type {
	switch b.Op {
	case tableau.And:
		return TAlpha
	case tableau.Or, tableau.Implies, tableau.Iff:
		return TBeta
	}
	return TLiteral
}

func (q Quant) Type() Type {
	if q.Q == tableau.Forall {
		return TGamma
	}
	return TDelta
}

func (m ModalF) Type() Type {
	if m.Op == tableau.Box {
		return TBoxy
	}
	return TDiamondy
}
