package cash

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
)

// Initializer fulfils the tokenmart.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ tokenmart.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account balances from the genesis and
// persist them.
func (Initializer) FromGenesis(opts tokenmart.Options, db tokenmart.KVStore) error {
	accounts := []struct {
		Address tokenmart.Address `json:"address"`
		Coins   coin.Coins        `json:"coins"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "read cash")
	}

	ctrl := NewController()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d address", i)
		}
		for _, c := range acc.Coins {
			if err := ctrl.IssueCoins(db, acc.Address, *c); err != nil {
				return errors.Wrapf(err, "issue to account #%d", i)
			}
		}
	}
	return nil
}
