package coin

import (
	"sort"
	"strings"

	"github.com/tokenmart/tokenmart/errors"
)

// Coins represents a wallet's holdings, at most one coin per ticker. The set
// is kept normalized: sorted by ticker, no zero values.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins. It will sort them
// and combine duplicates to produce a normalized form regardless of input.
func CombineCoins(cs ...Coin) (Coins, error) {
	var err error
	coins := make(Coins, 0, len(cs))
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set with the holdings increased by c. The original set is
// not modified. Fails if the addition would overflow or leave a negative
// balance for the ticker.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	has, i := cs.findCoin(c.ID())
	if has == nil {
		if !c.IsNonNegative() {
			return nil, errors.Wrapf(errors.ErrAmount, "negative balance: %s", c.String())
		}
		res := make(Coins, 0, len(cs)+1)
		res = append(res, cs[:i]...)
		res = append(res, c.Clone())
		res = append(res, cs[i:]...)
		return res, nil
	}

	sum, err := has.Add(c)
	if err != nil {
		return nil, err
	}
	if !sum.IsNonNegative() {
		return nil, errors.Wrapf(errors.ErrAmount, "negative balance: %s", sum.String())
	}
	res := cs.Clone()
	if sum.IsZero() {
		res = append(res[:i], res[i+1:]...)
	} else {
		res[i] = &sum
	}
	return res, nil
}

// Subtract returns a new set with the holdings decreased by c. Fails if the
// result would be negative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if there are enough funds to cover c.
func (cs Coins) Contains(c Coin) bool {
	if c.IsZero() {
		return true
	}
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return false
	}
	return has.IsGTE(c)
}

// Amount returns the amount held of the given ticker, a zero coin if none.
func (cs Coins) Amount(ticker string) Coin {
	has, _ := cs.findCoin(ticker)
	if has == nil {
		return Coin{Ticker: ticker}
	}
	return *has.Clone()
}

// Equals returns true if both sets hold exactly the same amounts.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// IsEmpty returns true if the set holds no value.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Validate requires a normalized set with all coins valid and positive.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive: %s", c.String())
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "not sorted: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set.
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// findCoin returns the coin with the given ticker along with its position,
// or nil and the position where it would be inserted.
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(n int) bool {
		return cs[n].Ticker >= ticker
	})
	if i == len(cs) || cs[i].Ticker != ticker {
		return nil, i
	}
	return cs[i], i
}
