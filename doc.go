/*
Package tokenmart defines the interfaces shared by the marketplace state
machine and its extensions.

The root package contains no business logic. It declares the key-value store
contracts (including cache wrapping, which gives every transaction its
all-or-nothing semantics), addresses and conditions, the message and
transaction interfaces, and the handler contract that every extension
implements. Concrete functionality lives below:

	errors/     registered error codes and wrapping
	store/      btree cache-wrap and in-memory backend
	orm/        buckets and sequences on top of the kv store
	coin/       amounts with checked arithmetic
	x/          extension helpers and the extensions themselves
	gconf/      on-ledger singleton configuration
	app/        router and transaction processor
*/
package tokenmart
