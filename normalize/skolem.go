package normalize

import (
	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
	"github.com/lxthorne/tableau/proverapi"
)

// boundVar records one enclosing universal quantifier's variable name and
// sort, gathered on the way down to an existential so its Skolem term can
// be built over the right argument list.
type boundVar struct {
	name    string
	isWorld bool
}

// Skolemize eliminates every existential quantifier in f (a negation
// normal form formula, not necessarily prenexed — an existential's
// enclosing universals are its syntactic ancestors, regardless of what
// else sits alongside it) in favor of a fresh Skolem term over the
// ancestor universals' variables: a bare constant when there are none, a
// function term otherwise. World- vs individual-sortedness is read off
// parser's expressionType table, which TranslateFromModal populates for
// every world-bound variable it mints (§4.B, §4.C).
func Skolemize(f formula.Formula, parser proverapi.Parser) formula.Formula {
	out := skolemize(f, nil, parser)
	tracer().Debugf("skolemize(%s) = %s", f, out)
	return out
}

func skolemize(f formula.Formula, universals []boundVar, parser proverapi.Parser) formula.Formula {
	switch t := f.(type) {
	case formula.Quant:
		isWorld := parser.ExpressionType(t.Var) == tableau.WorldConstant
		if t.Q == tableau.Forall {
			sub := skolemize(t.Matrix, append(universals, boundVar{t.Var, isWorld}), parser)
			return formula.Quant{Q: tableau.Forall, Var: t.Var, Matrix: sub}
		}
		term := skolemTerm(universals, isWorld, parser)
		replaced := formula.Substitute(t.Matrix, formula.Sym{Name: t.Var}, term, false)
		return skolemize(replaced, universals, parser)
	case formula.Bin:
		return formula.Bin{
			Op:   t.Op,
			Sub1: skolemize(t.Sub1, universals, parser),
			Sub2: skolemize(t.Sub2, universals, parser),
		}
	default:
		return f
	}
}

// skolemTerm mints a fresh symbol from parser — NewConstant for individual
// sort, NewWorldName(true) for world sort, since §6's Parser boundary
// exposes no separate function-symbol generator — and wraps it over
// universals' variables when there are any, registering its resulting
// arity and sort.
func skolemTerm(universals []boundVar, isWorld bool, parser proverapi.Parser) formula.Term {
	var name string
	if isWorld {
		name = parser.NewWorldName(true)
	} else {
		name = parser.NewConstant()
	}
	if len(universals) == 0 {
		kind := tableau.IndividualConstant
		if isWorld {
			kind = tableau.WorldConstant
		}
		parser.RegisterExpression(name, kind, 0)
		return formula.Sym{Name: name}
	}
	args := make([]formula.Term, len(universals))
	for i, u := range universals {
		args[i] = formula.Sym{Name: u.name}
	}
	parser.RegisterExpression(name, tableau.FunctionSymbol, len(universals))
	return formula.Compound{Functor: name, Args: args}
}
