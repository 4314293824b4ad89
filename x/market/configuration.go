package market

import (
	"encoding/json"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/gconf"
)

// Configuration is the singleton market configuration, created during
// genesis and patched through UpdateConfigurationMsg.
type Configuration struct {
	// Owner is the administrative account authorized to change this
	// configuration.
	Owner tokenmart.Address `json:"owner"`

	// Collector receives the listing fees.
	Collector tokenmart.Address `json:"collector"`

	// ListingFee is charged for every listing creation. A zero value
	// means listing is free. Changing the fee never affects already
	// created listings.
	ListingFee coin.Coin `json:"listing_fee"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// ConfigurationPatch updates selected configuration fields. Address fields
// keep the stored value when empty. The fee is a pointer so that it can be
// explicitly set back to zero (free listing); a nil fee keeps the stored
// value.
type ConfigurationPatch struct {
	Owner      tokenmart.Address `json:"owner,omitempty"`
	Collector  tokenmart.Address `json:"collector,omitempty"`
	ListingFee *coin.Coin        `json:"listing_fee,omitempty"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *Configuration) GetOwner() tokenmart.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner address")
	}
	if err := c.Collector.Validate(); err != nil {
		return errors.Wrap(err, "collector address")
	}
	if !c.ListingFee.IsZero() {
		if err := c.ListingFee.Validate(); err != nil {
			return errors.Wrap(err, "listing fee")
		}
		if !c.ListingFee.IsNonNegative() {
			return errors.Wrap(errors.ErrState, "listing fee cannot be negative")
		}
	}
	return nil
}

func loadConf(db tokenmart.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "market", &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
