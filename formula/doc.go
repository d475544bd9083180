/*
Package formula implements the formula algebra (§4.A of the
specification): immutable syntactic trees for terms and formulas, a
canonical string rendering, structural equality, the rule-classifying
`Type` tag, and the operations the rest of the pipeline builds on —
`Normalize`, `Substitute`, `Negate`, `Alpha`, `Beta`.

Formulas and terms are value-like: every transformation returns a fresh
tree: constituent subtrees are shared freely (Go interfaces holding
struct values), never mutated in place.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package formula

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tableau.formula'.
func tracer() tracing.Trace {
	return tracing.Select("tableau.formula")
}
