package tokenmart

import (
	"reflect"

	"github.com/tokenmart/tokenmart/errors"
)

// Persistent is implemented by entities that can be serialized into a binary
// representation and restored from one.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Msg is a business-level state transition request. Each message type is
// routed by its unique path and must be able to validate its own content
// before any state is touched.
type Msg interface {
	Persistent

	// Path returns the routing path for this message, in the form
	// "extension/action".
	Path() string

	// Validate performs static checks on the message content. It must not
	// access any state.
	Validate() error
}

// Tx represents a signed transaction carrying exactly one message. The
// surrounding environment is responsible for authenticating the principals;
// handlers learn about them through an x.Authenticator.
type Tx interface {
	Persistent

	// GetMsg returns the message carried by this transaction.
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction into destination, making
// sure it validates. Destination must be a pointer to a Msg implementation of
// the expected concrete type.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dval := reflect.ValueOf(destination)
	if dval.Kind() != reflect.Ptr || dval.IsNil() {
		return errors.Wrapf(errors.ErrType, "unsupported message destination: %T", destination)
	}
	mval := reflect.ValueOf(msg)
	if mval.Type() != dval.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dval.Elem().Set(mval.Elem())
	return nil
}
