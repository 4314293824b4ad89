// Package markettest provides test doubles for the marketplace: in-memory
// transactions, deterministic conditions and authenticators that bypass
// signature verification.
package markettest
