/*
Package store provides the key-value store implementations used by the
marketplace.

The central piece is the btree-backed cache wrap. It buffers all writes of a
transaction in memory so they are visible to every read through the wrap, and
either flushes them to the underlying store with Write or drops them with
Discard. The transaction processor in app/ relies on this to make every state
transition all-or-nothing.

MemStore returns a pure in-memory store, used by tests and by the development
daemon.
*/
package store
