package proverapi

import (
	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
)

// Parser is the subset of the external Parser (§1, §6) this module
// consumes: formula parsing, the arity/expressionType tables, fresh-symbol
// issuance, and the isModal/isPropositional flags the modal translator
// sets as a side effect of translation. The Parser itself — lexing,
// grammar, symbol-table bootstrap — is out of scope; only this boundary
// is.
type Parser interface {
	// ParseFormula parses a formula in the original (possibly modal)
	// vocabulary.
	ParseFormula(string) (formula.Formula, error)

	// Arity returns the registered arity of symbol, if any.
	Arity(symbol string) (int, bool)

	// ExpressionType returns the registered kind of symbol.
	ExpressionType(symbol string) tableau.ExpressionKind

	// RegisterExpression records symbol's kind and arity, e.g. when the
	// modal translator mints a world-argument predicate or the naming
	// pass claims a surface constant.
	RegisterExpression(symbol string, kind tableau.ExpressionKind, arity int)

	// NewConstant returns a fresh individual-constant symbol.
	NewConstant() string

	// NewWorldName returns a fresh world-name symbol. isSkolem is true
	// when the name stands for a Skolem term (normalize.Skolemize) and
	// false for a bound world variable (modal.TranslateFromModal).
	NewWorldName(isSkolem bool) string

	// IsModal/IsPropositional/SetModal/SetPropositional track flags set
	// by translateFromModal (§4.B): IsModal records whether any modal
	// operator was seen; IsPropositional records whether every predicate
	// started at arity 0.
	IsModal() bool
	SetModal(bool)
	IsPropositional() bool
	SetPropositional(bool)

	// AccessibilityPredicate returns the reserved accessibility
	// predicate symbol, R.
	AccessibilityPredicate() string
}
