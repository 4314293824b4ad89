package cash

import (
	"encoding/json"

	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/orm"
)

// Wallet is the set of funds held by a single address. The owning address is
// the bucket key, not part of the model.
type Wallet struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return json.Marshal(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, w)
}

// Validate requires a normalized, all-positive coin set.
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Coins.Validate(), "coins")
}

// Add adjusts the wallet by the given amount, which may be negative.
func (w *Wallet) Add(c coin.Coin) error {
	updated, err := w.Coins.Add(c)
	if err != nil {
		return err
	}
	w.Coins = updated
	return nil
}

// NewWalletBucket returns a bucket of wallets keyed by owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallet", &Wallet{})
}
