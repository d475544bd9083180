/*
Package tableau implements the core of an automated theorem prover for
classical first-order and propositional modal logic: given the
free-variable tableau a prover discovered, it rebuilds and renders the
sentence tableau a textbook would show, in the original (possibly modal)
vocabulary, and — on an open branch — extracts a countermodel.

Package structure mirrors the pipeline described in the specification:

■ formula: immutable syntactic trees (Term, Formula), normal forms,
substitution, negation and alpha/beta decomposition.

■ modal: the bidirectional standard translation between modal formulas
and their first-order correlates.

■ normalize: NNF, Skolemization and CNF/clausal-form conversion.

■ tree: the sentence-tree assembler, tableau-node denormalizer, naming
pass and modalizer/countermodel reader. These are kept in one package
because they all mutate one shared, non-reentrant node arena (see
Concurrency, below).

■ model: the minimal relational structure handed back by countermodel
extraction, a concrete type the tree package uses directly.

■ proverapi: the interfaces this module consumes from the Parser and
Prover — both external collaborators, referenced only by interface.

The base package contains data types shared by all of the above.

Concurrency

Execution is single-threaded and cooperative. Constructing a SentenceTree
mutates nodes it did not allocate (flags set by the caller's Prover), so
only one SentenceTree may be under construction at a time for a given
free-variable tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tableau
