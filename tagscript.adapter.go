package tagscript

import "strconv"

// Adapter supplies the value behind a variable declaration. The host seeds
// the interpreter with adapters keyed by declaration; the variable block
// resolves `{name}` (and `{name(attr)}`) through them. Adapters receive the
// full evaluation context so attribute-style lookups can inspect the verb.
type Adapter interface {
	GetValue(ctx *Context) string
}

// StringAdapter returns a fixed string.
type StringAdapter struct {
	Value string
}

// NewStringAdapter creates an adapter for a fixed string value.
func NewStringAdapter(value string) *StringAdapter {
	return &StringAdapter{Value: value}
}

// GetValue implements Adapter.
func (a *StringAdapter) GetValue(_ *Context) string {
	return a.Value
}

// IntAdapter returns a fixed integer, formatted in base 10.
type IntAdapter struct {
	Value int
}

// NewIntAdapter creates an adapter for a fixed integer value.
func NewIntAdapter(value int) *IntAdapter {
	return &IntAdapter{Value: value}
}

// GetValue implements Adapter.
func (a *IntAdapter) GetValue(_ *Context) string {
	return strconv.Itoa(a.Value)
}

// FuncAdapter defers the value to a function, evaluated per tag.
type FuncAdapter struct {
	Func func(ctx *Context) string
}

// NewFuncAdapter creates an adapter backed by a function.
func NewFuncAdapter(fn func(ctx *Context) string) *FuncAdapter {
	return &FuncAdapter{Func: fn}
}

// GetValue implements Adapter.
func (a *FuncAdapter) GetValue(ctx *Context) string {
	if a.Func == nil {
		return ""
	}
	return a.Func(ctx)
}

// ObjectAdapter exposes a set of named attributes. A bare `{name}` resolves
// to the base value; `{name(attr)}` resolves to the attribute.
type ObjectAdapter struct {
	Base       string
	Attributes map[string]string
}

// NewObjectAdapter creates an adapter with a base value and attributes.
func NewObjectAdapter(base string, attributes map[string]string) *ObjectAdapter {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &ObjectAdapter{Base: base, Attributes: attributes}
}

// GetValue implements Adapter. Unknown attributes fall back to the base value.
func (a *ObjectAdapter) GetValue(ctx *Context) string {
	if ctx != nil && ctx.Verb.HasParameter {
		if value, ok := a.Attributes[ctx.Verb.Parameter]; ok {
			return value
		}
	}
	return a.Base
}
