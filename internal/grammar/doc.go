// Package grammar renders and inspects the GBNF constraint grammars that
// bound what the generation engine may emit.
//
// Render serializes a vocabulary mapping into grammar text (one rule per
// line, `name ::= definition`). Extractor recovers the rule → allowed-values
// table back out of grammar text, caching parses by grammar source so a hot
// validation path never re-parses. Validate checks raw engine output against
// a parsed grammar; Combinations enumerates the location/device pairs a
// grammar can express.
//
// An empty or literal-free grammar means "no constraints": validation
// trivially passes. Grammar text is untrusted input and never causes an
// error, only an empty parse.
package grammar
