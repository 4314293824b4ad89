package app

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/x"
	"github.com/tokenmart/tokenmart/x/cash"
	"github.com/tokenmart/tokenmart/x/market"
	"github.com/tokenmart/tokenmart/x/nft"
)

// NewMarketplace wires all extensions into a ready to use state machine. The
// authenticator decides which conditions a transaction context carries.
func NewMarketplace(db tokenmart.CacheableKVStore, auth x.Authenticator) *StateMachine {
	r := NewRouter()
	nft.RegisterRoutes(r, auth, nft.NewController())
	market.RegisterRoutes(r, auth, nft.NewController(), cash.NewController())
	return NewStateMachine(db, r)
}

// Initializers returns the genesis initializers of all extensions, in the
// order they must run.
func Initializers() []tokenmart.Initializer {
	return []tokenmart.Initializer{
		cash.Initializer{},
		market.Initializer{},
	}
}
