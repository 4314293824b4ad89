package market

import (
	"strconv"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/gconf"
	"github.com/tokenmart/tokenmart/orm"
	"github.com/tokenmart/tokenmart/x"
	"github.com/tokenmart/tokenmart/x/cash"
	"github.com/tokenmart/tokenmart/x/nft"
)

const (
	createListingCost int64 = 300
	buyTokenCost      int64 = 200
	delistTokenCost   int64 = 100
	proposeSwapCost   int64 = 200
	acceptSwapCost    int64 = 200
)

// EscrowAddress is the account holding custody of every listed token. No key
// can sign for it; tokens only leave through a buy or delist transition.
func EscrowAddress() tokenmart.Address {
	return tokenmart.NewCondition("market", "escrow", []byte("listings")).Address()
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r tokenmart.Registry, auth x.Authenticator, tokens nft.Controller, bank cash.Controller) {
	listings := NewListingBucket()
	offers := NewSwapOfferBucket()

	r.Handle(pathCreateListing, CreateListingHandler{auth: auth, listings: listings, tokens: tokens, bank: bank})
	r.Handle(pathBuyToken, BuyTokenHandler{auth: auth, listings: listings, tokens: tokens, bank: bank})
	r.Handle(pathDelistToken, DelistTokenHandler{auth: auth, listings: listings, tokens: tokens})
	r.Handle(pathProposeSwap, ProposeSwapHandler{auth: auth, offers: offers, tokens: tokens})
	r.Handle(pathAcceptSwap, AcceptSwapHandler{auth: auth, offers: offers, tokens: tokens})
	r.Handle(pathUpdateConfiguration, gconf.NewUpdateConfigurationHandler("market", &Configuration{}, auth))
}

//---- create listing

// CreateListingHandler puts a token up for sale, moving it into escrow.
type CreateListingHandler struct {
	auth     x.Authenticator
	listings orm.ModelBucket
	tokens   nft.Controller
	bank     cash.Controller
}

var _ tokenmart.Handler = CreateListingHandler{}

func (h CreateListingHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{GasAllocated: createListingCost}, nil
}

func (h CreateListingHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	msg, signer, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if !conf.ListingFee.IsZero() {
		if err := h.bank.MoveCoins(db, signer, conf.Collector, conf.ListingFee); err != nil {
			return nil, errors.Wrap(err, "collect listing fee")
		}
	}

	listing := Listing{
		TokenID: msg.TokenID,
		Owner:   signer,
		Price:   msg.Price,
		Listed:  true,
	}
	if err := h.listings.Put(db, tokenKey(msg.TokenID), &listing); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}
	if err := h.tokens.Transfer(db, msg.TokenID, signer, EscrowAddress()); err != nil {
		return nil, errors.Wrap(err, "escrow token")
	}

	res := &tokenmart.DeliverResult{Data: tokenKey(msg.TokenID)}
	return res.WithEvent("create_listing", map[string]string{
		"token_id": strconv.FormatInt(msg.TokenID, 10),
		"owner":    signer.String(),
		"price":    msg.Price.String(),
	}), nil
}

// validate performs every check before any mutation: message content, live
// ownership and the exact fee payment.
func (h CreateListingHandler) validate(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*CreateListingMsg, tokenmart.Address, *Configuration, error) {
	var msg CreateListingMsg
	if err := tokenmart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}

	owner, err := h.tokens.OwnerOf(db, msg.TokenID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !owner.Equals(signer) {
		return nil, nil, nil, errors.Wrapf(errors.ErrUnauthorized, "only the owner can list token %d", msg.TokenID)
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if !paymentMatches(msg.Payment, conf.ListingFee) {
		return nil, nil, nil, errors.Wrapf(ErrFeeMismatch, "fee is %s, got %s", conf.ListingFee, msg.Payment)
	}
	return &msg, signer, &conf, nil
}

//---- buy

// BuyTokenHandler executes a purchase: the custody transfer to the buyer and
// the payment to the seller succeed or fail together.
type BuyTokenHandler struct {
	auth     x.Authenticator
	listings orm.ModelBucket
	tokens   nft.Controller
	bank     cash.Controller
}

var _ tokenmart.Handler = BuyTokenHandler{}

func (h BuyTokenHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{GasAllocated: buyTokenCost}, nil
}

func (h BuyTokenHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	msg, buyer, listing, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	seller := listing.Owner
	price := listing.Price

	listing.Listed = false
	listing.Owner = buyer
	if err := h.listings.Put(db, tokenKey(msg.TokenID), listing); err != nil {
		return nil, errors.Wrap(err, "update listing")
	}
	if err := h.tokens.Transfer(db, msg.TokenID, EscrowAddress(), buyer); err != nil {
		return nil, errors.Wrap(err, "release token")
	}
	// Settlement failure aborts the whole transition, the custody change
	// above is rolled back with it.
	if err := h.bank.MoveCoins(db, buyer, seller, price); err != nil {
		return nil, errors.Wrap(err, "pay seller")
	}

	res := &tokenmart.DeliverResult{}
	return res.WithEvent("buy_token", map[string]string{
		"token_id": strconv.FormatInt(msg.TokenID, 10),
		"buyer":    buyer.String(),
		"seller":   seller.String(),
		"price":    price.String(),
	}), nil
}

func (h BuyTokenHandler) validate(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*BuyTokenMsg, tokenmart.Address, *Listing, error) {
	var msg BuyTokenMsg
	if err := tokenmart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	buyer, err := x.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}

	var listing Listing
	switch err := h.listings.One(db, tokenKey(msg.TokenID), &listing); {
	case errors.ErrNotFound.Is(err):
		return nil, nil, nil, errors.Wrapf(ErrNotListed, "token %d", msg.TokenID)
	case err != nil:
		return nil, nil, nil, errors.Wrap(err, "load listing")
	}
	if !listing.Listed {
		return nil, nil, nil, errors.Wrapf(ErrNotListed, "token %d", msg.TokenID)
	}
	if !paymentMatches(msg.Payment, listing.Price) {
		return nil, nil, nil, errors.Wrapf(ErrPaymentMismatch, "price is %s, got %s", listing.Price, msg.Payment)
	}
	return &msg, buyer, &listing, nil
}

//---- delist

// DelistTokenHandler takes a listing off the market and returns the token
// from escrow to its owner.
type DelistTokenHandler struct {
	auth     x.Authenticator
	listings orm.ModelBucket
	tokens   nft.Controller
}

var _ tokenmart.Handler = DelistTokenHandler{}

func (h DelistTokenHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{GasAllocated: delistTokenCost}, nil
}

func (h DelistTokenHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	msg, signer, listing, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	listing.Listed = false
	if err := h.listings.Put(db, tokenKey(msg.TokenID), listing); err != nil {
		return nil, errors.Wrap(err, "update listing")
	}
	if err := h.tokens.Transfer(db, msg.TokenID, EscrowAddress(), signer); err != nil {
		return nil, errors.Wrap(err, "return token")
	}

	res := &tokenmart.DeliverResult{}
	return res.WithEvent("delist_token", map[string]string{
		"token_id": strconv.FormatInt(msg.TokenID, 10),
		"owner":    signer.String(),
	}), nil
}

func (h DelistTokenHandler) validate(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*DelistTokenMsg, tokenmart.Address, *Listing, error) {
	var msg DelistTokenMsg
	if err := tokenmart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}

	var listing Listing
	switch err := h.listings.One(db, tokenKey(msg.TokenID), &listing); {
	case errors.ErrNotFound.Is(err):
		return nil, nil, nil, errors.Wrapf(ErrNotListed, "token %d", msg.TokenID)
	case err != nil:
		return nil, nil, nil, errors.Wrap(err, "load listing")
	}
	if !listing.Listed {
		return nil, nil, nil, errors.Wrapf(ErrNotListed, "token %d", msg.TokenID)
	}
	if !listing.Owner.Equals(signer) {
		return nil, nil, nil, errors.Wrapf(errors.ErrUnauthorized, "listing belongs to %s", listing.Owner)
	}
	return &msg, signer, &listing, nil
}

//---- propose swap

// ProposeSwapHandler stores a swap offer. A previous offer targeting the
// same requested token is silently replaced.
type ProposeSwapHandler struct {
	auth   x.Authenticator
	offers orm.ModelBucket
	tokens nft.Controller
}

var _ tokenmart.Handler = ProposeSwapHandler{}

func (h ProposeSwapHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{GasAllocated: proposeSwapCost}, nil
}

func (h ProposeSwapHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	offer := SwapOffer{
		OfferedTokenID:   msg.OfferedTokenID,
		RequestedTokenID: msg.RequestedTokenID,
		Offerer:          signer,
	}
	if err := h.offers.Put(db, tokenKey(msg.RequestedTokenID), &offer); err != nil {
		return nil, errors.Wrap(err, "save offer")
	}

	res := &tokenmart.DeliverResult{Data: tokenKey(msg.RequestedTokenID)}
	return res.WithEvent("propose_swap", map[string]string{
		"offered_token_id":   strconv.FormatInt(msg.OfferedTokenID, 10),
		"requested_token_id": strconv.FormatInt(msg.RequestedTokenID, 10),
		"offerer":            signer.String(),
	}), nil
}

func (h ProposeSwapHandler) validate(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*ProposeSwapMsg, tokenmart.Address, error) {
	var msg ProposeSwapMsg
	if err := tokenmart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}

	// Only the offered side is checked here. The requested token may not
	// even exist yet; its ownership is verified at acceptance time.
	owner, err := h.tokens.OwnerOf(db, msg.OfferedTokenID)
	if err != nil {
		return nil, nil, err
	}
	if !owner.Equals(signer) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "only the owner can offer token %d", msg.OfferedTokenID)
	}
	return &msg, signer, nil
}

//---- accept swap

// AcceptSwapHandler performs the two-way transfer. Ownership of the offered
// token was not re-verified since the proposal, so the transfer from the
// offerer may fail; both transfers stand or fall together.
type AcceptSwapHandler struct {
	auth   x.Authenticator
	offers orm.ModelBucket
	tokens nft.Controller
}

var _ tokenmart.Handler = AcceptSwapHandler{}

func (h AcceptSwapHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{GasAllocated: acceptSwapCost}, nil
}

func (h AcceptSwapHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	msg, signer, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.offers.Delete(db, tokenKey(msg.RequestedTokenID)); err != nil {
		return nil, errors.Wrap(err, "delete offer")
	}
	if err := h.tokens.Transfer(db, msg.RequestedTokenID, signer, offer.Offerer); err != nil {
		return nil, errors.Wrap(err, "transfer requested token")
	}
	if err := h.tokens.Transfer(db, offer.OfferedTokenID, offer.Offerer, signer); err != nil {
		return nil, errors.Wrap(err, "transfer offered token")
	}

	res := &tokenmart.DeliverResult{}
	return res.WithEvent("accept_swap", map[string]string{
		"offered_token_id":   strconv.FormatInt(offer.OfferedTokenID, 10),
		"requested_token_id": strconv.FormatInt(msg.RequestedTokenID, 10),
		"accepter":           signer.String(),
	}), nil
}

func (h AcceptSwapHandler) validate(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*AcceptSwapMsg, tokenmart.Address, *SwapOffer, error) {
	var msg AcceptSwapMsg
	if err := tokenmart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}

	var offer SwapOffer
	switch err := h.offers.One(db, tokenKey(msg.RequestedTokenID), &offer); {
	case errors.ErrNotFound.Is(err):
		return nil, nil, nil, errors.Wrapf(ErrNoSuchOffer, "token %d", msg.RequestedTokenID)
	case err != nil:
		return nil, nil, nil, errors.Wrap(err, "load offer")
	}

	owner, err := h.tokens.OwnerOf(db, msg.RequestedTokenID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !owner.Equals(signer) {
		return nil, nil, nil, errors.Wrapf(errors.ErrUnauthorized, "only the owner of token %d can accept", msg.RequestedTokenID)
	}
	return &msg, signer, &offer, nil
}

// paymentMatches requires strict equality between the attached payment and
// the required amount. Overpaying is as wrong as underpaying. A zero
// requirement accepts any zero payment regardless of ticker.
func paymentMatches(payment, required coin.Coin) bool {
	if required.IsZero() {
		return payment.IsZero()
	}
	return payment.Equals(required)
}
