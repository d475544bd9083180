/*
Package proverapi declares the interfaces this module consumes from its
external collaborators — the Parser and the Prover (§1, §6 of the
specification). Neither is implemented here; this package exists purely
so that `modal`, `normalize` and `tree` can depend on a stable boundary instead of
concrete upstream types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package proverapi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tableau.proverapi'.
func tracer() tracing.Trace {
	return tracing.Select("tableau.proverapi")
}
