package nft

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/orm"
)

// Controller is the registry interface consumed by other extensions.
type Controller interface {
	// Mint creates a new token owned by the given address and returns
	// its freshly assigned id.
	Mint(db tokenmart.KVStore, owner tokenmart.Address, uri string) (int64, error)

	// Transfer moves the token from src to dest. It fails if src is not
	// the current owner.
	Transfer(db tokenmart.KVStore, tokenID int64, src, dest tokenmart.Address) error

	// OwnerOf returns the current owner of a token.
	OwnerOf(db tokenmart.ReadOnlyKVStore, tokenID int64) (tokenmart.Address, error)

	// Get loads the full token record.
	Get(db tokenmart.ReadOnlyKVStore, tokenID int64) (*Token, error)

	// TotalSupply returns the number of tokens minted so far.
	TotalSupply(db tokenmart.ReadOnlyKVStore) (int64, error)
}

// TokenController implements Controller over the token bucket.
type TokenController struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

var _ Controller = TokenController{}

// NewController returns a controller using the standard token bucket and id
// sequence.
func NewController() TokenController {
	return TokenController{
		bucket: NewTokenBucket(),
		seq:    orm.NewSequence("token", "id"),
	}
}

func (c TokenController) Mint(db tokenmart.KVStore, owner tokenmart.Address, uri string) (int64, error) {
	id, err := c.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "token id sequence")
	}
	token := Token{
		ID:    id,
		Owner: owner,
		URI:   uri,
	}
	if err := c.bucket.Put(db, TokenKey(id), &token); err != nil {
		return 0, errors.Wrap(err, "save token")
	}
	return id, nil
}

func (c TokenController) Transfer(db tokenmart.KVStore, tokenID int64, src, dest tokenmart.Address) error {
	token, err := c.Get(db, tokenID)
	if err != nil {
		return err
	}
	if !token.Owner.Equals(src) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own token %d", src, tokenID)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	token.Owner = dest
	return errors.Wrap(c.bucket.Put(db, TokenKey(tokenID), token), "save token")
}

func (c TokenController) OwnerOf(db tokenmart.ReadOnlyKVStore, tokenID int64) (tokenmart.Address, error) {
	token, err := c.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	return token.Owner, nil
}

func (c TokenController) Get(db tokenmart.ReadOnlyKVStore, tokenID int64) (*Token, error) {
	var token Token
	if err := c.bucket.One(db, TokenKey(tokenID), &token); err != nil {
		return nil, errors.Wrapf(err, "token %d", tokenID)
	}
	return &token, nil
}

func (c TokenController) TotalSupply(db tokenmart.ReadOnlyKVStore) (int64, error) {
	total, _, err := c.seq.Latest(db)
	return total, err
}
