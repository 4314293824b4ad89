package cash

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/store"
)

var (
	alice = tokenmart.NewCondition("test", "sig", []byte("alice")).Address()
	bob   = tokenmart.NewCondition("test", "sig", []byte("bob")).Address()
)

func TestIssueAndBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	balance, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, balance.IsEmpty())

	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(10, 0, "MART")))
	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(1, 0, "MART")))

	balance, err = ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(11, 0, "MART").Equals(balance.Amount("MART")))
}

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, 0, "MART")))

	require.NoError(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(2, 0, "MART")))

	aliceCoins, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(3, 0, "MART").Equals(aliceCoins.Amount("MART")))
	bobCoins, err := ctrl.Balance(db, bob)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(2, 0, "MART").Equals(bobCoins.Amount("MART")))
}

func TestMoveCoinsFailures(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, 0, "MART")))

	cases := map[string]struct {
		src, dest tokenmart.Address
		amount    coin.Coin
		wantErr   *errors.Error
	}{
		"insufficient funds": {
			src: alice, dest: bob,
			amount:  coin.NewCoin(50, 0, "MART"),
			wantErr: errors.ErrAmount,
		},
		"unknown currency": {
			src: alice, dest: bob,
			amount:  coin.NewCoin(1, 0, "DOGE"),
			wantErr: errors.ErrAmount,
		},
		"no source account": {
			src: bob, dest: alice,
			amount:  coin.NewCoin(1, 0, "MART"),
			wantErr: errors.ErrEmpty,
		},
		"non-positive amount": {
			src: alice, dest: bob,
			amount:  coin.NewCoin(0, 0, "MART"),
			wantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.amount)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)

			// failures must not touch the source balance
			balance, err := ctrl.Balance(db, alice)
			require.NoError(t, err)
			assert.True(t, coin.NewCoin(5, 0, "MART").Equals(balance.Amount("MART")))
		})
	}
}

func TestMoveCoinsToSelf(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, 0, "MART")))

	require.NoError(t, ctrl.MoveCoins(db, alice, alice, coin.NewCoin(3, 0, "MART")))

	balance, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(5, 0, "MART").Equals(balance.Amount("MART")))
}

func TestGenesisInitializer(t *testing.T) {
	db := store.MemStore()
	opts := tokenmart.Options{
		"cash": json.RawMessage(`[
			{"address": "` + alice.String() + `", "coins": ["7 MART", "2 DOGE"]}
		]`),
	}
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	balance, err := NewController().Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(7, 0, "MART").Equals(balance.Amount("MART")))
	assert.True(t, coin.NewCoin(2, 0, "DOGE").Equals(balance.Amount("DOGE")))
}
