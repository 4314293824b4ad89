package nft

import (
	"encoding/json"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/orm"
)

// maxURISize bounds the metadata pointer length.
const maxURISize = 1024

// Token is a single unique asset. URI points at the immutable metadata and
// is fixed at minting time.
type Token struct {
	ID    int64             `json:"id"`
	Owner tokenmart.Address `json:"owner"`
	URI   string            `json:"uri"`
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Token) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, t)
}

// Validate ensures the token is owned and within limits.
func (t *Token) Validate() error {
	if t.ID <= 0 {
		return errors.Wrapf(errors.ErrInput, "token id: %d", t.ID)
	}
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(t.URI) > maxURISize {
		return errors.Wrapf(errors.ErrInput, "uri longer than %d characters", maxURISize)
	}
	return nil
}

// NewTokenBucket returns a bucket of tokens keyed by the 8 byte big endian
// representation of their id.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token", &Token{})
}

// TokenKey converts a token id into its bucket key.
func TokenKey(id int64) []byte {
	return orm.EncodeSequence(id)
}
