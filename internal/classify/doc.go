// Package classify infers the programming language of a block of source
// text.
//
// Classification is pure and deterministic: the same content and filename
// always produce the same verdict, and no external state is consulted or
// mutated. Signals are combined in priority order:
//
//  1. A recognized filename extension (.ts, .tsx, .jsx, .js, ...) is a
//     high-confidence signal and decides the language outright.
//  2. Lexical heuristics over the content (type-annotation syntax, JSX-like
//     tag syntax) are medium-confidence signals used when no extension is
//     available.
//  3. For content outside the JS family entirely (markup, stylesheets),
//     go-enry provides an auxiliary content signal.
//  4. JavaScript is the zero-evidence fallback.
//
// The verdict also carries the content feature flags regardless of which
// signal decided the language, so callers can distinguish "typed file"
// from "typed syntax inside an untyped file".
package classify
