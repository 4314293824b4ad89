package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/markettest"
	"github.com/tokenmart/tokenmart/orm"
	"github.com/tokenmart/tokenmart/store"
	"github.com/tokenmart/tokenmart/x/market"
	"github.com/tokenmart/tokenmart/x/nft"
)

var (
	alice     = markettest.CondFromSeed("alice")
	bob       = markettest.CondFromSeed("bob")
	admin     = markettest.CondFromSeed("admin")
	collector = markettest.CondFromSeed("collector")
)

var ctxAuth = &markettest.CtxAuth{Key: "auth"}

// newMarketplace starts a state machine with a funded genesis: the market
// configuration plus starting balances for alice and bob.
func newMarketplace(t *testing.T, fee coin.Coin) *StateMachine {
	t.Helper()

	sm := NewMarketplace(store.MemStore(), ctxAuth)

	conf := market.Configuration{
		Owner:      admin.Address(),
		Collector:  collector.Address(),
		ListingFee: fee,
	}
	rawConf, err := json.Marshal(map[string]market.Configuration{"market": conf})
	require.NoError(t, err)

	type account struct {
		Address tokenmart.Address `json:"address"`
		Coins   coin.Coins        `json:"coins"`
	}
	rawCash, err := json.Marshal([]account{
		{Address: alice.Address(), Coins: coin.Coins{coin.NewCoinp(10, 0, "MART")}},
		{Address: bob.Address(), Coins: coin.Coins{coin.NewCoinp(10, 0, "MART")}},
	})
	require.NoError(t, err)

	opts := tokenmart.Options{"conf": rawConf, "cash": rawCash}
	require.NoError(t, sm.InitGenesis(opts, Initializers()...))
	return sm
}

// deliver submits a message signed by the given condition and requires it to
// succeed.
func deliver(t *testing.T, sm *StateMachine, signer tokenmart.Condition, msg tokenmart.Msg) *tokenmart.DeliverResult {
	t.Helper()
	ctx := ctxAuth.SetConditions(context.Background(), signer)
	res, err := sm.DeliverTx(ctx, &markettest.Tx{Msg: msg})
	require.NoError(t, err)
	return res
}

func deliverErr(t *testing.T, sm *StateMachine, signer tokenmart.Condition, msg tokenmart.Msg) error {
	t.Helper()
	ctx := ctxAuth.SetConditions(context.Background(), signer)
	_, err := sm.DeliverTx(ctx, &markettest.Tx{Msg: msg})
	require.Error(t, err)
	return err
}

func ownerOf(t *testing.T, sm *StateMachine, tokenID int64) tokenmart.Address {
	t.Helper()
	var owner tokenmart.Address
	require.NoError(t, sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		token, err := nft.NewController().Get(db, tokenID)
		if err != nil {
			return err
		}
		owner = token.Owner
		return nil
	}))
	return owner
}

func TestMarketplaceScenario(t *testing.T) {
	fee := coin.NewCoin(0, 500000000, "MART")
	sm := newMarketplace(t, fee)

	// alice mints two tokens
	res := deliver(t, sm, alice, &nft.IssueTokenMsg{URI: "ipfs://meta/1"})
	assert.Equal(t, orm.EncodeSequence(1), res.Data)
	deliver(t, sm, alice, &nft.IssueTokenMsg{URI: "ipfs://meta/2"})

	// alice lists token 1 for 1 MART, paying the fee
	price := coin.NewCoin(1, 0, "MART")
	deliver(t, sm, alice, &market.CreateListingMsg{TokenID: 1, Price: price, Payment: fee})
	assert.True(t, market.EscrowAddress().Equals(ownerOf(t, sm, 1)))

	// bob buys token 1 with the exact price
	deliver(t, sm, bob, &market.BuyTokenMsg{TokenID: 1, Payment: price})
	assert.True(t, bob.Address().Equals(ownerOf(t, sm, 1)))

	// alice offers token 2 in exchange for token 1, bob accepts
	deliver(t, sm, alice, &market.ProposeSwapMsg{OfferedTokenID: 2, RequestedTokenID: 1})
	deliver(t, sm, bob, &market.AcceptSwapMsg{RequestedTokenID: 1})
	assert.True(t, alice.Address().Equals(ownerOf(t, sm, 1)))
	assert.True(t, bob.Address().Equals(ownerOf(t, sm, 2)))

	// final balances: alice paid the fee and earned the price, bob paid it
	require.NoError(t, sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		conf, err := market.GetConfiguration(db)
		require.NoError(t, err)
		assert.True(t, collector.Address().Equals(conf.Collector))
		return nil
	}))
}

func TestDeliverTxIsAtomic(t *testing.T) {
	sm := newMarketplace(t, coin.Coin{})

	deliver(t, sm, alice, &nft.IssueTokenMsg{URI: "ipfs://meta/1"})

	// the price exceeds bob's genesis balance, settlement must fail
	price := coin.NewCoin(100, 0, "MART")
	deliver(t, sm, alice, &market.CreateListingMsg{TokenID: 1, Price: price})
	deliverErr(t, sm, bob, &market.BuyTokenMsg{TokenID: 1, Payment: price})

	// nothing moved: the token is still escrowed and the listing active
	assert.True(t, market.EscrowAddress().Equals(ownerOf(t, sm, 1)))
	require.NoError(t, sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		listing, err := market.GetListing(db, 1)
		require.NoError(t, err)
		assert.True(t, listing.Listed)
		assert.True(t, alice.Address().Equals(listing.Owner))
		return nil
	}))

	// delisting gives the token back untouched
	deliver(t, sm, alice, &market.DelistTokenMsg{TokenID: 1})
	assert.True(t, alice.Address().Equals(ownerOf(t, sm, 1)))
}

func TestCheckTxDoesNotPersist(t *testing.T) {
	sm := newMarketplace(t, coin.Coin{})

	ctx := ctxAuth.SetConditions(context.Background(), alice)
	res, err := sm.CheckTx(ctx, &markettest.Tx{Msg: &nft.IssueTokenMsg{URI: "ipfs://meta/1"}})
	require.NoError(t, err)
	assert.True(t, res.GasAllocated > 0)

	// the mint was only simulated
	require.NoError(t, sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		total, err := nft.NewController().TotalSupply(db)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		return nil
	}))
}

func TestUnknownMessagePath(t *testing.T) {
	sm := newMarketplace(t, coin.Coin{})

	err := deliverErr(t, sm, alice, &unroutedMsg{})
	assert.True(t, errors.ErrNotFound.Is(err))
}

type unroutedMsg struct{}

func (unroutedMsg) Path() string             { return "nosuch/action" }
func (unroutedMsg) Validate() error          { return nil }
func (unroutedMsg) Marshal() ([]byte, error) { return json.Marshal(struct{}{}) }
func (*unroutedMsg) Unmarshal([]byte) error  { return nil }
