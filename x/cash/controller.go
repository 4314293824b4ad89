package cash

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/orm"
)

// CoinMover is the settlement primitive consumed by other extensions. The
// transfer either fully succeeds or fails without any effect.
type CoinMover interface {
	MoveCoins(db tokenmart.KVStore, src, dest tokenmart.Address, amount coin.Coin) error
}

// Controller is the full interface of the settlement service.
type Controller interface {
	CoinMover

	// IssueCoins grows the holdings of an address out of thin air. Used
	// by genesis initialization and by tests.
	IssueCoins(db tokenmart.KVStore, dest tokenmart.Address, amount coin.Coin) error

	// Balance returns the current holdings of an address. An address
	// without a wallet has an empty balance, not an error.
	Balance(db tokenmart.ReadOnlyKVStore, addr tokenmart.Address) (coin.Coins, error)
}

// CashController implements Controller over the wallet bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a controller using the standard wallet bucket.
func NewController() CashController {
	return CashController{bucket: NewWalletBucket()}
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient funds, it fails.
func (c CashController) MoveCoins(db tokenmart.KVStore, src, dest tokenmart.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}

	var sender Wallet
	switch err := c.bucket.One(db, src, &sender); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrEmpty, "no account %s", src)
	case err != nil:
		return errors.Wrap(err, "load sender")
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: have %s, need %s", sender.Coins, amount)
	}

	// Moving from an account to itself changes nothing.
	if src.Equals(dest) {
		return nil
	}

	if err := sender.Add(amount.Negative()); err != nil {
		return err
	}
	if err := c.bucket.Put(db, src, &sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	return c.credit(db, dest, amount)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c CashController) IssueCoins(db tokenmart.KVStore, dest tokenmart.Address, amount coin.Coin) error {
	return c.credit(db, dest, amount)
}

// Balance returns the holdings of an address.
func (c CashController) Balance(db tokenmart.ReadOnlyKVStore, addr tokenmart.Address) (coin.Coins, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "load wallet")
	}
	return w.Coins, nil
}

func (c CashController) credit(db tokenmart.KVStore, dest tokenmart.Address, amount coin.Coin) error {
	var recipient Wallet
	switch err := c.bucket.One(db, dest, &recipient); {
	case errors.ErrNotFound.Is(err):
		// fresh wallet
	case err != nil:
		return errors.Wrap(err, "load recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return errors.Wrap(c.bucket.Put(db, dest, &recipient), "save recipient")
}
