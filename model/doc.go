/*
Package model provides a finite countermodel representation: a domain of
individuals, a set of worlds, and an accessibility/predicate denotation
table, built directly from a closed-world reading of an open tableau
branch's ground literals rather than searched for (§4.G, §6). It is
deliberately minimal — the real model-finding search (over infinite or
very large domains) is an external collaborator's concern; this package
only represents and evaluates the witness model the branch already
determines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package model

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tableau.model'.
func tracer() tracing.Trace {
	return tracing.Select("tableau.model")
}
