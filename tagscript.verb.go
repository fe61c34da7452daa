package tagscript

import "strings"

// Verb is the fully resolved view of one tag, as a block sees it. Nested tags
// inside the declaration, parameter and payload have already been interpreted
// and substituted before the verb is built, so a block never observes
// unresolved tag syntax.
type Verb struct {
	// Declaration is the resolved text between '{' and the first '(' / ':' / '}'.
	Declaration string

	// Parameter is the resolved text between '(' and ')'.
	Parameter string
	// HasParameter distinguishes an absent parameter from an empty one.
	HasParameter bool

	// Payload is the resolved text after ':'.
	Payload string
	// HasPayload distinguishes an absent payload from an empty one.
	HasPayload bool

	// Source is the verbatim source slice of the tag, braces included.
	Source string
}

// Dec returns the lower-cased declaration, the form block acceptance checks
// usually match on.
func (v *Verb) Dec() string {
	return strings.ToLower(v.Declaration)
}

// String returns the tag's original source text.
func (v *Verb) String() string {
	return v.Source
}
