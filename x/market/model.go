package market

import (
	"encoding/json"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/orm"
	"github.com/tokenmart/tokenmart/x/nft"
)

// Listing is a standing fixed price sale offer for one token. While Listed
// is true the marketplace escrow holds custody of the token and Owner is the
// seller. After a sale Owner is updated to the buyer and the record stays
// around, inactive, until the token is listed again.
type Listing struct {
	TokenID int64             `json:"token_id"`
	Owner   tokenmart.Address `json:"owner"`
	Price   coin.Coin         `json:"price"`
	Listed  bool              `json:"listed"`
}

var _ orm.Model = (*Listing)(nil)

func (l *Listing) Marshal() ([]byte, error) {
	return json.Marshal(l)
}

func (l *Listing) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, l)
}

// Validate requires an active listing to have a strictly positive price.
func (l *Listing) Validate() error {
	if l.TokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "token id: %d", l.TokenID)
	}
	if err := l.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if l.Listed {
		if err := l.Price.Validate(); err != nil {
			return errors.Wrap(err, "price")
		}
		if !l.Price.IsPositive() {
			return errors.Wrapf(ErrInvalidPrice, "%s", l.Price)
		}
	}
	return nil
}

// SwapOffer is a standing token-for-token exchange proposal. It is keyed by
// the requested token, so any token can be the target of at most one open
// offer. The offered token stays with the offerer until acceptance.
type SwapOffer struct {
	OfferedTokenID   int64             `json:"offered_token_id"`
	RequestedTokenID int64             `json:"requested_token_id"`
	Offerer          tokenmart.Address `json:"offerer"`
}

var _ orm.Model = (*SwapOffer)(nil)

func (o *SwapOffer) Marshal() ([]byte, error) {
	return json.Marshal(o)
}

func (o *SwapOffer) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, o)
}

func (o *SwapOffer) Validate() error {
	if o.OfferedTokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "offered token id: %d", o.OfferedTokenID)
	}
	if o.RequestedTokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "requested token id: %d", o.RequestedTokenID)
	}
	return errors.Wrap(o.Offerer.Validate(), "offerer")
}

// NewListingBucket returns a bucket of listings keyed by token id.
func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket("listing", &Listing{})
}

// NewSwapOfferBucket returns a bucket of swap offers keyed by the requested
// token id.
func NewSwapOfferBucket() orm.ModelBucket {
	return orm.NewModelBucket("offer", &SwapOffer{})
}

// tokenKey converts a token id into the bucket key shared with the registry.
func tokenKey(id int64) []byte {
	return nft.TokenKey(id)
}
