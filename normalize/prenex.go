package normalize

import (
	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
)

// quantStep is one quantifier peeled off a subformula during prenexing.
type quantStep struct {
	q   tableau.Quantifier
	v   string
}

// Prenex pulls every quantifier in f to the front, preserving left-to-right
// order of first appearance, and leaving a quantifier-free matrix behind
// (§4.C). f must already be in negation normal form: Prenex does not push
// negations, so a stray Neg{Quant{...}} is left untouched rather than
// silently mishandled.
func Prenex(f formula.Formula) formula.Formula {
	steps, matrix := prenex(f)
	out := matrix
	for i := len(steps) - 1; i >= 0; i-- {
		out = formula.Quant{Q: steps[i].q, Var: steps[i].v, Matrix: out}
	}
	return out
}

func prenex(f formula.Formula) ([]quantStep, formula.Formula) {
	switch t := f.(type) {
	case formula.Quant:
		steps, matrix := prenex(t.Matrix)
		return append([]quantStep{{t.Q, t.Var}}, steps...), matrix
	case formula.Bin:
		steps1, m1 := prenex(t.Sub1)
		steps2, m2 := prenex(t.Sub2)
		steps := append(append([]quantStep{}, steps1...), steps2...)
		return steps, formula.Bin{Op: t.Op, Sub1: m1, Sub2: m2}
	default:
		return nil, f
	}
}
