package classify

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/dshills/langsync/internal/language"
)

// Verdict is the result of one classification call.
// Verdicts are values: produced fresh per call and never mutated.
type Verdict struct {
	// Language is the inferred editor language id.
	Language language.ID

	// ExtensionHint is the lowercased extension taken from the filename,
	// empty when no filename was supplied.
	ExtensionHint string

	// HasJSXSyntax reports whether the content contains JSX-like tag syntax.
	HasJSXSyntax bool

	// HasTypeAnnotations reports whether the content contains
	// type-annotation syntax.
	HasTypeAnnotations bool

	// Confidence is the strength of the verdict in [0, 1].
	Confidence float64
}

// Confidence levels by signal strength.
const (
	confidenceExtensionAgreeing = 0.95
	confidenceExtension         = 0.9
	confidenceTypedAndJSX       = 0.7
	confidenceTyped             = 0.65
	confidenceJSX               = 0.6
	confidenceContentFallback   = 0.5
	confidenceDefault           = 0.1
)

var (
	// Type-annotation syntax: a colon followed by a primitive or
	// capitalized type name in declaration position.
	typeAnnotationRe = regexp.MustCompile(`:\s*(?:string|number|boolean|void|any|unknown|never|object|[A-Z][A-Za-z0-9_]*)(?:\[\])?(?:\s*[=,;)\]}>]|\s*$|\s)`)

	typeKeywordRe = regexp.MustCompile(`(?m)(?:^|\s)(?:interface\s+[A-Za-z_]|type\s+[A-Za-z_]\w*\s*=|enum\s+[A-Za-z_]|implements\s+[A-Za-z_]|abstract\s+class\s|declare\s+(?:const|let|var|function|module)\b|as\s+(?:const\b|[A-Z]\w*))`)

	genericParamRe = regexp.MustCompile(`\b[A-Za-z_]\w*<[A-Z][A-Za-z0-9_]*(?:,\s*[A-Z][A-Za-z0-9_]*)*>`)

	// JSX-like tag syntax: a tag in expression position, a self-closing
	// tag, or a closing tag.
	jsxReturnRe  = regexp.MustCompile(`(?:return|=>)\s*\(?\s*<[A-Za-z]`)
	jsxClosingRe = regexp.MustCompile(`</[A-Za-z][A-Za-z0-9.]*>`)
	jsxSelfRe    = regexp.MustCompile(`<[A-Z][A-Za-z0-9.]*(?:\s[^<>]*)?/>`)

	// Plain markup also has closing tags; a closing tag only counts as JSX
	// when JS code appears alongside it.
	jsCodeRe = regexp.MustCompile(`\b(?:const|let|var|function|import|export|return)\b|=>`)
)

// Classify infers the language of content, optionally biased by filename.
// It is pure, deterministic, and total: every input produces a verdict,
// with empty or unrecognizable input defaulting to JavaScript at low
// confidence.
func Classify(content, filename string) Verdict {
	v := Verdict{
		ExtensionHint:      strings.ToLower(filepath.Ext(filename)),
		HasTypeAnnotations: hasTypeAnnotations(content),
		HasJSXSyntax:       hasJSXSyntax(content),
	}

	// A recognized extension decides the language outright, regardless of
	// content ambiguity.
	if id, ok := language.ForExtension(v.ExtensionHint); ok {
		v.Language = id
		v.Confidence = confidenceExtension
		if (id.Typed() && v.HasTypeAnnotations) || (id.JSX() && v.HasJSXSyntax) {
			v.Confidence = confidenceExtensionAgreeing
		}
		return v
	}

	switch {
	case v.HasTypeAnnotations && v.HasJSXSyntax:
		v.Language = language.TypeScriptJSX
		v.Confidence = confidenceTypedAndJSX
	case v.HasTypeAnnotations:
		v.Language = language.TypeScript
		v.Confidence = confidenceTyped
	case v.HasJSXSyntax:
		v.Language = language.JavaScriptJSX
		v.Confidence = confidenceJSX
	default:
		v.Language, v.Confidence = contentFallback(content)
	}
	return v
}

// contentFallback handles content with no JS-family signals at all.
// go-enry catches markup and stylesheets that ended up in a nominally
// JS buffer; anything else defaults to JavaScript.
func contentFallback(content string) (language.ID, float64) {
	if strings.TrimSpace(content) == "" {
		return language.JavaScript, confidenceDefault
	}
	switch enry.GetLanguage("", []byte(content)) {
	case "HTML":
		return language.HTML, confidenceContentFallback
	case "CSS":
		return language.CSS, confidenceContentFallback
	}
	return language.JavaScript, confidenceDefault
}

func hasTypeAnnotations(content string) bool {
	if content == "" {
		return false
	}
	return typeAnnotationRe.MatchString(content) ||
		typeKeywordRe.MatchString(content) ||
		genericParamRe.MatchString(content)
}

func hasJSXSyntax(content string) bool {
	if content == "" {
		return false
	}
	if jsxReturnRe.MatchString(content) || jsxSelfRe.MatchString(content) {
		return true
	}
	return jsxClosingRe.MatchString(content) && jsCodeRe.MatchString(content)
}
