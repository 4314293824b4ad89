package markettest

import (
	"context"
	"fmt"

	"github.com/tokenmart/tokenmart"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can use
// either Signer or Signers (or both) attributes to reference conditions.
// Each time all signers (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when creating an authentication method for a
	// single signer.
	Signer tokenmart.Condition

	// Signers represents an authentication of multiple signers.
	Signers []tokenmart.Condition
}

func (a *Auth) GetConditions(tokenmart.Context) []tokenmart.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx tokenmart.Context, addr tokenmart.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve the
// authenticated conditions, the way the real environment does.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx tokenmart.Context, conds ...tokenmart.Condition) tokenmart.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx tokenmart.Context) []tokenmart.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]tokenmart.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []tokenmart.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx tokenmart.Context, addr tokenmart.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
