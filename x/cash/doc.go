/*
Package cash is the settlement collaborator of the marketplace. It keeps
wallets of fungible funds per address and moves value between them with
all-or-nothing semantics: a transfer either fully succeeds or leaves no
trace. The marketplace handlers decide amounts and recipients, this package
executes them.
*/
package cash
