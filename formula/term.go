package formula

import "strings"

// Term is either an atomic symbol (constant, variable, world name) or a
// function application over a sequence of further terms (§3).
type Term interface {
	String() string
	Equals(Term) bool
	isTerm()
}

// Sym is an atomic term: an individual constant, a free variable, a world
// name, or a Skolem constant (arity-0 Skolem function).
type Sym struct {
	Name string
}

func (s Sym) String() string { return s.Name }

func (s Sym) Equals(t Term) bool {
	o, ok := t.(Sym)
	return ok && o.Name == s.Name
}

func (Sym) isTerm() {}

// Compound is a function-application term `functor(arg1...argn)`.
type Compound struct {
	Functor string
	Args    []Term
}

func (c Compound) String() string {
	var b strings.Builder
	b.WriteString(c.Functor)
	b.WriteString("(")
	for _, a := range c.Args {
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

func (c Compound) Equals(t Term) bool {
	o, ok := t.(Compound)
	if !ok || o.Functor != c.Functor || len(o.Args) != len(c.Args) {
		return false
	}
	for i, a := range c.Args {
		if !a.Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

func (Compound) isTerm() {}

// Symbol-prefix conventions (§3): free variables and Skolem terms are
// recognized syntactically by their leading rune, not by a side table.
const (
	FreeIndividualPrefix   = 'ξ'
	FreeWorldPrefix        = 'ζ'
	SkolemIndividualPrefix = 'φ'
	SkolemWorldPrefix      = 'ω'
)

func startsWith(name string, runes ...rune) bool {
	if name == "" {
		return false
	}
	first := []rune(name)[0]
	for _, r := range runes {
		if first == r {
			return true
		}
	}
	return false
}

// IsFreeVariable reports whether t is a ξ- or ζ-prefixed symbol, i.e. a
// free variable introduced by the prover.
func IsFreeVariable(t Term) bool {
	s, ok := t.(Sym)
	return ok && startsWith(s.Name, FreeIndividualPrefix, FreeWorldPrefix)
}

// IsSkolemTerm reports whether t is rooted at a φ- or ω-prefixed symbol,
// with or without an argument list.
func IsSkolemTerm(t Term) bool {
	switch v := t.(type) {
	case Sym:
		return startsWith(v.Name, SkolemIndividualPrefix, SkolemWorldPrefix)
	case Compound:
		return startsWith(v.Functor, SkolemIndividualPrefix, SkolemWorldPrefix)
	}
	return false
}

// substituteTerm implements the term half of Substitute (§4.A).
func substituteTerm(t, old, new Term, shallow bool) Term {
	if t.Equals(old) {
		return new
	}
	c, ok := t.(Compound)
	if !ok || shallow {
		return t
	}
	changed := false
	args := make([]Term, len(c.Args))
	for i, a := range c.Args {
		na := substituteTerm(a, old, new, shallow)
		if !na.Equals(a) {
			changed = true
		}
		args[i] = na
	}
	if !changed {
		return t
	}
	return Compound{Functor: c.Functor, Args: args}
}
