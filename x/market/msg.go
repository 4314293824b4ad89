package market

import (
	"encoding/json"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
)

const (
	pathCreateListing       = "market/create_listing"
	pathBuyToken            = "market/buy"
	pathDelistToken         = "market/delist"
	pathProposeSwap         = "market/propose_swap"
	pathAcceptSwap          = "market/accept_swap"
	pathUpdateConfiguration = "market/update_configuration"
)

var _ tokenmart.Msg = (*CreateListingMsg)(nil)
var _ tokenmart.Msg = (*BuyTokenMsg)(nil)
var _ tokenmart.Msg = (*DelistTokenMsg)(nil)
var _ tokenmart.Msg = (*ProposeSwapMsg)(nil)
var _ tokenmart.Msg = (*AcceptSwapMsg)(nil)
var _ tokenmart.Msg = (*UpdateConfigurationMsg)(nil)

// CreateListingMsg puts a token owned by the signer up for sale. Payment
// must equal the current listing fee.
type CreateListingMsg struct {
	TokenID int64     `json:"token_id"`
	Price   coin.Coin `json:"price"`
	Payment coin.Coin `json:"payment"`
}

func (CreateListingMsg) Path() string {
	return pathCreateListing
}

func (m *CreateListingMsg) Validate() error {
	if m.TokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "token id: %d", m.TokenID)
	}
	if err := m.Price.Validate(); err != nil {
		return errors.Wrap(err, "price")
	}
	if !m.Price.IsPositive() {
		return errors.Wrapf(ErrInvalidPrice, "%s", m.Price)
	}
	return validatePayment(m.Payment)
}

// BuyTokenMsg purchases an actively listed token. Payment must equal the
// listing price exactly.
type BuyTokenMsg struct {
	TokenID int64     `json:"token_id"`
	Payment coin.Coin `json:"payment"`
}

func (BuyTokenMsg) Path() string {
	return pathBuyToken
}

func (m *BuyTokenMsg) Validate() error {
	if m.TokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "token id: %d", m.TokenID)
	}
	return validatePayment(m.Payment)
}

// DelistTokenMsg takes the signer's own listing off the market and returns
// the token from escrow.
type DelistTokenMsg struct {
	TokenID int64 `json:"token_id"`
}

func (DelistTokenMsg) Path() string {
	return pathDelistToken
}

func (m *DelistTokenMsg) Validate() error {
	if m.TokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "token id: %d", m.TokenID)
	}
	return nil
}

// ProposeSwapMsg offers one of the signer's tokens in exchange for another
// token. The requested token does not have to exist yet and its owner is
// free to ignore the offer.
type ProposeSwapMsg struct {
	OfferedTokenID   int64 `json:"offered_token_id"`
	RequestedTokenID int64 `json:"requested_token_id"`
}

func (ProposeSwapMsg) Path() string {
	return pathProposeSwap
}

func (m *ProposeSwapMsg) Validate() error {
	if m.OfferedTokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "offered token id: %d", m.OfferedTokenID)
	}
	if m.RequestedTokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "requested token id: %d", m.RequestedTokenID)
	}
	return nil
}

// AcceptSwapMsg accepts the open offer targeting the given token, which the
// signer must own.
type AcceptSwapMsg struct {
	RequestedTokenID int64 `json:"requested_token_id"`
}

func (AcceptSwapMsg) Path() string {
	return pathAcceptSwap
}

func (m *AcceptSwapMsg) Validate() error {
	if m.RequestedTokenID <= 0 {
		return errors.Wrapf(errors.ErrInput, "requested token id: %d", m.RequestedTokenID)
	}
	return nil
}

// UpdateConfigurationMsg patches the market configuration, most notably the
// listing fee. Only the configuration owner is authorized. A fee of zero is
// a valid update and makes listing free again.
type UpdateConfigurationMsg struct {
	Patch *ConfigurationPatch `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if fee := m.Patch.ListingFee; fee != nil && !fee.IsZero() {
		if err := fee.Validate(); err != nil {
			return errors.Wrap(err, "listing fee")
		}
		if !fee.IsNonNegative() {
			return errors.Wrap(errors.ErrAmount, "listing fee cannot be negative")
		}
	}
	return nil
}

// validatePayment allows either no payment at all or a valid non-negative
// coin. Whether the amount is the required one is decided by the handler
// against the current state.
func validatePayment(p coin.Coin) error {
	if p.IsZero() {
		return nil
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "payment")
	}
	if !p.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative payment")
	}
	return nil
}

func (m *CreateListingMsg) Marshal() ([]byte, error)        { return json.Marshal(m) }
func (m *CreateListingMsg) Unmarshal(raw []byte) error      { return json.Unmarshal(raw, m) }
func (m *BuyTokenMsg) Marshal() ([]byte, error)             { return json.Marshal(m) }
func (m *BuyTokenMsg) Unmarshal(raw []byte) error           { return json.Unmarshal(raw, m) }
func (m *DelistTokenMsg) Marshal() ([]byte, error)          { return json.Marshal(m) }
func (m *DelistTokenMsg) Unmarshal(raw []byte) error        { return json.Unmarshal(raw, m) }
func (m *ProposeSwapMsg) Marshal() ([]byte, error)          { return json.Marshal(m) }
func (m *ProposeSwapMsg) Unmarshal(raw []byte) error        { return json.Unmarshal(raw, m) }
func (m *AcceptSwapMsg) Marshal() ([]byte, error)           { return json.Marshal(m) }
func (m *AcceptSwapMsg) Unmarshal(raw []byte) error         { return json.Unmarshal(raw, m) }
func (m *UpdateConfigurationMsg) Marshal() ([]byte, error)  { return json.Marshal(m) }
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }
