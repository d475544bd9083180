/*
Package tree assembles a human-readable sentence tableau from the free-
variable tableau the (external) prover actually searches with (§3, §4.D,
§4.E). The free-variable tableau is unification-based and its formulas
carry prover-internal ξ/ζ free variables and φ/ω Skolem terms; this
package denormalizes it back into the original vocabulary: correcting
alpha/beta child order and recovering gamma/delta/modal instantiations
against the unnormalized formula, reinserting double-negation steps the
prover's NNF pass elided, pruning branches the final proof doesn't use,
naming every free variable and Skolem term with a fresh surface symbol,
translating first-order formulas back to modal form, and reading off a
countermodel from an open branch (§4.F, §4.G).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tableau.tree'.
func tracer() tracing.Trace {
	return tracing.Select("tableau.tree")
}
