package x

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// one implementation for all extensions.
//
// The surrounding environment is responsible for verifying identities; by
// the time a handler runs, the context carries the already-authenticated
// conditions of the caller.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled, you may want the
	// GetAddresses helper.
	GetConditions(tokenmart.Context) []tokenmart.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(tokenmart.Context, tokenmart.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions from all authenticators.
func (m MultiAuth) GetConditions(ctx tokenmart.Context) []tokenmart.Condition {
	var res []tokenmart.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any authenticator supports this address.
func (m MultiAuth) HasAddress(ctx tokenmart.Context, addr tokenmart.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx tokenmart.Context, auth Authenticator) []tokenmart.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]tokenmart.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first authenticated address, the one considered the
// acting principal of the transaction. Returns an error when the call is not
// authenticated at all.
func MainSigner(ctx tokenmart.Context, auth Authenticator) (tokenmart.Address, error) {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signers[0].Address(), nil
}
