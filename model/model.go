package model

import (
	"strings"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
)

// Model is a finite interpretation: a domain of individuals, a (possibly
// empty, for non-modal input) set of worlds, and a table of which ground
// atoms — at which world, for modal input — hold (§4.G, §6).
type Model struct {
	domain       []string
	worlds       []string
	modal        bool
	initialWorld string
	accessib     string
	denote       map[string]map[string]bool
}

// New builds an empty model over domain and worlds. An empty domain is
// promoted to the singleton {"0"}: a closed formula with no individual
// constants still needs one element to quantify over (§4.G). modal
// selects whether atoms are evaluated relative to a world; accessib names
// the accessibility predicate read during evaluation of □/◇.
func New(domain, worlds []string, modal bool, initialWorld, accessib string) *Model {
	if len(domain) == 0 {
		domain = []string{"0"}
	}
	return &Model{
		domain:       domain,
		worlds:       worlds,
		modal:        modal,
		initialWorld: initialWorld,
		accessib:     accessib,
		denote:       map[string]map[string]bool{},
	}
}

// Domain returns the model's individuals.
func (m *Model) Domain() []string { return append([]string{}, m.domain...) }

// Worlds returns the model's worlds.
func (m *Model) Worlds() []string { return append([]string{}, m.worlds...) }

func tupleKey(terms []string) string { return strings.Join(terms, ",") }

// Assert records pred(terms...) as true. Called once per ground literal
// read off an open branch while building the countermodel (§4.G).
func (m *Model) Assert(pred string, terms ...string) {
	set := m.denote[pred]
	if set == nil {
		set = map[string]bool{}
		m.denote[pred] = set
	}
	set[tupleKey(terms)] = true
}

// Satisfies reports whether pred(terms...) was asserted. Unasserted atoms
// are false under the closed-world reading a saturated open branch
// licenses.
func (m *Model) Satisfies(pred string, terms ...string) bool {
	set, ok := m.denote[pred]
	return ok && set[tupleKey(terms)]
}

// ExtendToSatisfy evaluates f against the model, starting at the
// distinguished initial world for modal atoms, and reports whether it
// holds (§6). Quantifiers range over Domain; □/◇ range over Worlds via
// the accessibility relation.
func (m *Model) ExtendToSatisfy(f formula.Formula) bool {
	ok := m.eval(f, m.initialWorld)
	tracer().Debugf("extendToSatisfy(%s) = %v", f, ok)
	return ok
}

// SatisfiesInitFormulas reports whether every formula in forms holds,
// i.e. whether the countermodel is actually a model of the branch's
// original (pre-normalization) formulas — the sanity check run before a
// countermodel is reported to the caller (§4.G).
func (m *Model) SatisfiesInitFormulas(forms []formula.Formula) bool {
	for _, f := range forms {
		if !m.ExtendToSatisfy(f) {
			return false
		}
	}
	return true
}

func (m *Model) eval(f formula.Formula, world string) bool {
	switch t := f.(type) {
	case formula.Atomic:
		terms := termStrings(t.Terms)
		if m.modal {
			terms = append(terms, world)
		}
		return m.Satisfies(t.Pred, terms...)
	case formula.Neg:
		return !m.eval(t.Sub, world)
	case formula.Bin:
		switch t.Op {
		case tableau.And:
			return m.eval(t.Sub1, world) && m.eval(t.Sub2, world)
		case tableau.Or:
			return m.eval(t.Sub1, world) || m.eval(t.Sub2, world)
		case tableau.Implies:
			return !m.eval(t.Sub1, world) || m.eval(t.Sub2, world)
		case tableau.Iff:
			return m.eval(t.Sub1, world) == m.eval(t.Sub2, world)
		}
	case formula.Quant:
		for _, d := range m.domain {
			sub := formula.Substitute(t.Matrix, formula.Sym{Name: t.Var}, formula.Sym{Name: d}, false)
			r := m.eval(sub, world)
			if t.Q == tableau.Forall && !r {
				return false
			}
			if t.Q == tableau.Exists && r {
				return true
			}
		}
		return t.Q == tableau.Forall
	case formula.ModalF:
		for _, w2 := range m.worlds {
			if !m.Satisfies(m.accessib, world, w2) {
				continue
			}
			r := m.eval(t.Sub, w2)
			if t.Op == tableau.Box && !r {
				return false
			}
			if t.Op == tableau.Diamond && r {
				return true
			}
		}
		return t.Op == tableau.Box
	}
	return false
}

func termStrings(terms []formula.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String()
	}
	return out
}
