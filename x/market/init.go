package market

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/gconf"
)

// Initializer fulfils the tokenmart.Initializer interface to load the market
// configuration from the genesis file.
type Initializer struct{}

var _ tokenmart.Initializer = (*Initializer)(nil)

// FromGenesis reads the market configuration singleton. The market cannot
// operate without one, so a genesis without it is an error.
func (Initializer) FromGenesis(opts tokenmart.Options, db tokenmart.KVStore) error {
	var conf Configuration
	return errors.Wrap(gconf.InitConfig(db, opts, "market", &conf), "market configuration")
}
