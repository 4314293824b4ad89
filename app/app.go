// Package app assembles the marketplace extensions into a single state
// machine processing one transaction at a time.
package app

import (
	"sync"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

// StateMachine executes transactions against a shared key value store.
//
// Every transaction is applied in a single total order, guarded by a mutex.
// A transaction runs on a cache wrap of the store; the wrap is written back
// only when the handler succeeds, so a failing transaction leaves no trace.
type StateMachine struct {
	mu     sync.Mutex
	db     tokenmart.CacheableKVStore
	router *Router
}

// NewStateMachine combines a store and a router into a state machine. The
// router must be fully populated before the first transaction comes in.
func NewStateMachine(db tokenmart.CacheableKVStore, router *Router) *StateMachine {
	return &StateMachine{
		db:     db,
		router: router,
	}
}

// InitGenesis applies all initializers on the given genesis options. Like a
// transaction, genesis is all or nothing.
func (s *StateMachine) InitGenesis(opts tokenmart.Options, inits ...tokenmart.Initializer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.db.CacheWrap()
	for _, init := range inits {
		if err := init.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "init genesis")
		}
	}
	return errors.Wrap(cache.Write(), "commit genesis")
}

// CheckTx validates the transaction against the current state without
// persisting anything.
func (s *StateMachine) CheckTx(ctx tokenmart.Context, tx tokenmart.Tx) (res *tokenmart.CheckResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer errors.Recover(&err)

	cache := s.db.CacheWrap()
	defer cache.Discard()

	h, err := s.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, cache, tx)
}

// DeliverTx executes the transaction. On success all state changes are
// committed together, on any error none of them are.
func (s *StateMachine) DeliverTx(ctx tokenmart.Context, tx tokenmart.Tx) (res *tokenmart.DeliverResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.route(tx)
	if err != nil {
		return nil, err
	}

	cache := s.db.CacheWrap()
	res, err = s.deliverSafe(ctx, cache, tx, h)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}

// deliverSafe runs the handler with panic recovery, so a panicking handler
// aborts only its own transaction.
func (s *StateMachine) deliverSafe(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx, h tokenmart.Handler) (res *tokenmart.DeliverResult, err error) {
	defer errors.Recover(&err)
	return h.Deliver(ctx, db, tx)
}

func (s *StateMachine) route(tx tokenmart.Tx) (tokenmart.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	return s.router.Handler(msg.Path()), nil
}

// View gives read access to the committed state. The callback runs under the
// same lock as transaction execution and must not retain the store.
func (s *StateMachine) View(fn func(tokenmart.ReadOnlyKVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.db)
}
