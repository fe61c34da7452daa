package tagscript

import (
	"github.com/mitchellh/mapstructure"
)

// Response is the accumulator for one interpretation: the rendered body,
// side-channel actions the host applies after interpretation, and a free-form
// extension bag blocks use to pass state to later blocks in the same call.
//
// A fresh Response is created per Process call and never reused, so nothing
// leaks across interpretations. Within one call every block sees the same
// instance; sibling tags are evaluated strictly left to right, so a later
// block observes everything earlier blocks recorded.
type Response struct {
	// Body is the rendered output. Populated when the walk completes.
	Body string

	// Actions maps action names to payloads the host must apply itself
	// (delete the triggering message, attach an embed, ...). The core only
	// records them. Last write for a name wins.
	Actions map[string]any

	// Extra is scratch space for cross-block communication.
	Extra map[string]any

	// Variables holds the runtime data tags resolve against, keyed by
	// declaration. Seeded by the caller, extendable by blocks mid-script.
	Variables map[string]Adapter
}

// NewResponse creates an empty response seeded with the given variables.
// A nil seed map is allowed.
func NewResponse(seed map[string]Adapter) *Response {
	variables := seed
	if variables == nil {
		variables = make(map[string]Adapter)
	}
	return &Response{
		Actions:   make(map[string]any),
		Extra:     make(map[string]any),
		Variables: variables,
	}
}

// SetAction records a side-channel action. Last write wins.
func (r *Response) SetAction(name string, payload any) {
	r.Actions[name] = payload
}

// Action returns a recorded action payload.
func (r *Response) Action(name string) (any, bool) {
	payload, ok := r.Actions[name]
	return payload, ok
}

// HasAction checks whether an action was recorded.
func (r *Response) HasAction(name string) bool {
	_, ok := r.Actions[name]
	return ok
}

// DecodeAction decodes a recorded action payload into a host-side struct
// using mapstructure field mapping.
func (r *Response) DecodeAction(name string, out any) error {
	if name == "" {
		return NewActionNameEmptyError()
	}
	payload, ok := r.Actions[name]
	if !ok {
		return NewActionNotFoundError(name)
	}
	if err := mapstructure.Decode(payload, out); err != nil {
		return NewActionDecodeError(name, err)
	}
	return nil
}
