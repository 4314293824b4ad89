package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
)

func TestCreateListingMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     CreateListingMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: CreateListingMsg{TokenID: 1, Price: coin.NewCoin(1, 0, "MART")},
		},
		"valid with payment": {
			msg: CreateListingMsg{TokenID: 1, Price: coin.NewCoin(1, 0, "MART"), Payment: coin.NewCoin(0, 500, "MART")},
		},
		"missing token id": {
			msg:     CreateListingMsg{Price: coin.NewCoin(1, 0, "MART")},
			wantErr: errors.ErrInput,
		},
		"zero price": {
			msg:     CreateListingMsg{TokenID: 1, Price: coin.NewCoin(0, 0, "MART")},
			wantErr: ErrInvalidPrice,
		},
		"negative price": {
			msg:     CreateListingMsg{TokenID: 1, Price: coin.NewCoin(-1, 0, "MART")},
			wantErr: ErrInvalidPrice,
		},
		"negative payment": {
			msg:     CreateListingMsg{TokenID: 1, Price: coin.NewCoin(1, 0, "MART"), Payment: coin.NewCoin(-1, 0, "MART")},
			wantErr: errors.ErrAmount,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}

func TestBuyTokenMsgValidate(t *testing.T) {
	assert.NoError(t, (&BuyTokenMsg{TokenID: 1, Payment: coin.NewCoin(1, 0, "MART")}).Validate())
	// a zero payment is well formed, matching the price is the handler's job
	assert.NoError(t, (&BuyTokenMsg{TokenID: 1}).Validate())
	assert.True(t, errors.ErrInput.Is((&BuyTokenMsg{}).Validate()))
}

func TestProposeSwapMsgValidate(t *testing.T) {
	assert.NoError(t, (&ProposeSwapMsg{OfferedTokenID: 1, RequestedTokenID: 2}).Validate())
	assert.True(t, errors.ErrInput.Is((&ProposeSwapMsg{RequestedTokenID: 2}).Validate()))
	assert.True(t, errors.ErrInput.Is((&ProposeSwapMsg{OfferedTokenID: 1}).Validate()))
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	fee := coin.NewCoin(1, 0, "MART")
	assert.NoError(t, (&UpdateConfigurationMsg{Patch: &ConfigurationPatch{ListingFee: &fee}}).Validate())
	assert.True(t, errors.ErrEmpty.Is((&UpdateConfigurationMsg{}).Validate()))

	// a nil fee keeps the stored value, a zero fee is an explicit update
	assert.NoError(t, (&UpdateConfigurationMsg{Patch: &ConfigurationPatch{}}).Validate())
	free := coin.Coin{}
	assert.NoError(t, (&UpdateConfigurationMsg{Patch: &ConfigurationPatch{ListingFee: &free}}).Validate())

	negative := coin.NewCoin(-1, 0, "MART")
	assert.Error(t, (&UpdateConfigurationMsg{Patch: &ConfigurationPatch{ListingFee: &negative}}).Validate())
}

func TestPaymentMatches(t *testing.T) {
	fee := coin.NewCoin(0, 500, "MART")
	assert.True(t, paymentMatches(fee, fee))
	assert.False(t, paymentMatches(coin.NewCoin(0, 501, "MART"), fee))
	assert.False(t, paymentMatches(coin.Coin{}, fee))

	// zero requirement accepts any zero payment, ticker does not matter
	assert.True(t, paymentMatches(coin.Coin{}, coin.Coin{}))
	assert.True(t, paymentMatches(coin.NewCoin(0, 0, "MART"), coin.Coin{}))
	assert.False(t, paymentMatches(fee, coin.Coin{}))
}
