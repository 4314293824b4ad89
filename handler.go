package tokenmart

import (
	"context"
	"encoding/json"
)

// Context carries request-scoped values, most importantly the conditions the
// environment authenticated for the current call.
type Context = context.Context

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in decorators.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures any non-error response from the Check phase.
type CheckResult struct {
	// GasAllocated is an estimation of the cost of this transaction.
	GasAllocated int64
}

// DeliverResult captures any non-error response from the Deliver phase.
type DeliverResult struct {
	// Data is an extension-specific payload, eg. the key of a created
	// entity.
	Data []byte

	// Log is a human readable note on the execution.
	Log string

	// Events are the notifications emitted by this state transition, in
	// emission order.
	Events []Event
}

// Event is a single notification emitted by a state transition. It is
// decoupled from any transport; the surrounding environment decides how to
// publish it.
type Event struct {
	Type       string
	Attributes map[string]string
}

// WithEvent appends a notification to the result and returns it for chaining.
func (r *DeliverResult) WithEvent(typ string, attributes map[string]string) *DeliverResult {
	r.Events = append(r.Events, Event{Type: typ, Attributes: attributes})
	return r
}

// Options are the initialization options. Each extension can look up its key
// and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from genesis
// file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
