/*
Package modal implements the bidirectional standard translation (§4.B)
between modal formulas and their first-order correlates with an explicit
world argument: TranslateFromModal embeds a modal formula into first-order
logic over a distinguished initial world constant `w`; TranslateToModal is
its inverse over the syntactic shapes TranslateFromModal (and tableau
expansion of its output) can produce.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package modal

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tableau.modal'.
func tracer() tracing.Trace {
	return tracing.Select("tableau.modal")
}
