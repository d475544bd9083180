package normalize

import (
	"strings"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
	"github.com/lxthorne/tableau/proverapi"
)

// CNF distributes ∧ and ∨ over a quantifier-free negation normal form
// formula into a list of clauses, each a list of literals, both
// deduplicated by formula.HashKey (§4.C). Clause and literal order is the
// deterministic left-to-right order the distribution naturally produces,
// so the same input formula always yields the same clause list.
func CNF(f formula.Formula) [][]formula.Formula {
	clauses := distribute(f)
	return dedupClauses(clauses)
}

func distribute(f formula.Formula) [][]formula.Formula {
	b, ok := f.(formula.Bin)
	if !ok {
		return [][]formula.Formula{{f}}
	}
	switch b.Op {
	case tableau.And:
		return append(distribute(b.Sub1), distribute(b.Sub2)...)
	case tableau.Or:
		left := distribute(b.Sub1)
		right := distribute(b.Sub2)
		out := make([][]formula.Formula, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, mergeClause(l, r))
			}
		}
		return out
	default:
		return [][]formula.Formula{{f}}
	}
}

// mergeClause concatenates two clauses, dropping duplicate literals while
// keeping the first occurrence's position.
func mergeClause(a, b []formula.Formula) []formula.Formula {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]formula.Formula, 0, len(a)+len(b))
	for _, lit := range a {
		k := formula.HashKey(lit)
		if !seen[k] {
			seen[k] = true
			out = append(out, lit)
		}
	}
	for _, lit := range b {
		k := formula.HashKey(lit)
		if !seen[k] {
			seen[k] = true
			out = append(out, lit)
		}
	}
	return out
}

func clauseKey(clause []formula.Formula) string {
	var b strings.Builder
	for _, lit := range clause {
		b.WriteString(formula.HashKey(lit))
		b.WriteByte('|')
	}
	return b.String()
}

func dedupClauses(clauses [][]formula.Formula) [][]formula.Formula {
	seen := make(map[string]bool, len(clauses))
	out := make([][]formula.Formula, 0, len(clauses))
	for _, c := range clauses {
		k := clauseKey(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}

// stripUniversals peels off a prenexed formula's leading ∀ prefix,
// returning the quantifier-free matrix underneath. Skolemize has already
// removed every existential, so nothing else can remain in the prefix.
func stripUniversals(f formula.Formula) formula.Formula {
	for {
		q, ok := f.(formula.Quant)
		if !ok || q.Q != tableau.Forall {
			return f
		}
		f = q.Matrix
	}
}

// ClausalNormalForm takes f through formula.Normalize, Skolemize and
// Prenex, then strips the (implicitly universally-closed) quantifier
// prefix and distributes the matrix into CNF clauses — the form the
// prover's free-variable tableau consumes as its initial clause set
// (§4.C).
func ClausalNormalForm(f formula.Formula, parser proverapi.Parser) [][]formula.Formula {
	nnf := formula.Normalize(f)
	sk := Skolemize(nnf, parser)
	pr := Prenex(sk)
	matrix := stripUniversals(pr)
	clauses := CNF(matrix)
	tracer().Debugf("clausalNormalForm(%s) = %v", f, clauses)
	return clauses
}
