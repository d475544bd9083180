/*
Package normalize takes a formula already in negation normal form (as
produced by formula.Normalize, possibly after modal.TranslateFromModal)
the rest of the way to a quantifier-free clausal form: Prenex pulls
quantifiers to the front, Skolemize eliminates existentials in favor of
fresh function/constant symbols drawn from the enclosing universals,
and CNF distributes ∧/∨ into a list of clauses. ClausalNormalForm chains
all three and drops the (now vacuous, since every quantifier left is a
universal) quantifier prefix, yielding the clause list the prover's
free-variable tableau consumes (§4.C).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package normalize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tableau.normalize'.
func tracer() tracing.Trace {
	return tracing.Select("tableau.normalize")
}
