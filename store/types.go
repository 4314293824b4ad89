package store

import "github.com/tokenmart/tokenmart"

// Reference all storage types in this package for shorter names everywhere.

type ReadOnlyKVStore = tokenmart.ReadOnlyKVStore
type KVStore = tokenmart.KVStore
type Iterator = tokenmart.Iterator
type CacheableKVStore = tokenmart.CacheableKVStore
type KVCacheWrap = tokenmart.KVCacheWrap
type Batch = tokenmart.Batch
