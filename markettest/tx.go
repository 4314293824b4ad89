package markettest

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

// Tx is a mock implementing the tokenmart.Tx interface, carrying a single
// message without any signatures.
type Tx struct {
	// Msg is the message held by this transaction.
	Msg tokenmart.Msg
}

var _ tokenmart.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tokenmart.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "no message")
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if tx.Msg == nil {
		return errors.Wrap(errors.ErrState, "no message to unmarshal into")
	}
	return tx.Msg.Unmarshal(raw)
}
