package market

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/orm"
)

// GetListing returns the listing record for a token. A token that was never
// listed yields a zero value record, not an error.
func GetListing(db tokenmart.ReadOnlyKVStore, tokenID int64) (Listing, error) {
	var listing Listing
	switch err := NewListingBucket().One(db, tokenKey(tokenID), &listing); {
	case err == nil:
		return listing, nil
	case errors.ErrNotFound.Is(err):
		return Listing{}, nil
	default:
		return Listing{}, errors.Wrapf(err, "listing %d", tokenID)
	}
}

// GetSwapOffer returns the open offer targeting a token. If there is none a
// zero value offer is returned, not an error.
func GetSwapOffer(db tokenmart.ReadOnlyKVStore, requestedTokenID int64) (SwapOffer, error) {
	var offer SwapOffer
	switch err := NewSwapOfferBucket().One(db, tokenKey(requestedTokenID), &offer); {
	case err == nil:
		return offer, nil
	case errors.ErrNotFound.Is(err):
		return SwapOffer{}, nil
	default:
		return SwapOffer{}, errors.Wrapf(err, "offer %d", requestedTokenID)
	}
}

// GetConfiguration returns the current market configuration.
func GetConfiguration(db tokenmart.ReadOnlyKVStore) (Configuration, error) {
	return loadConf(db)
}

// CurrentFee returns the listing fee charged right now.
func CurrentFee(db tokenmart.ReadOnlyKVStore) (coin.Coin, error) {
	conf, err := loadConf(db)
	if err != nil {
		return coin.Coin{}, err
	}
	return conf.ListingFee, nil
}

// ActiveListings returns every listing currently on the market, in token id
// order. Cleared records are skipped.
func ActiveListings(db tokenmart.ReadOnlyKVStore) ([]Listing, error) {
	var active []Listing
	err := NewListingBucket().Iterate(db, func(_ []byte, m orm.Model) error {
		listing := m.(*Listing)
		if listing.Listed {
			active = append(active, *listing)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate listings")
	}
	return active, nil
}

// OpenSwapOffers returns every standing swap offer, ordered by the requested
// token id.
func OpenSwapOffers(db tokenmart.ReadOnlyKVStore) ([]SwapOffer, error) {
	var open []SwapOffer
	err := NewSwapOfferBucket().Iterate(db, func(_ []byte, m orm.Model) error {
		open = append(open, *m.(*SwapOffer))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate offers")
	}
	return open, nil
}
