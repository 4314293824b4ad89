package orm

import (
	"reflect"
	"regexp"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

// isBucketName ensures bucket names are short and without special characters,
// as they become key prefixes in the shared store.
var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket is implemented by buckets that operate on Models.
type ModelBucket interface {
	// One queries the store for a single model instance. Lookup is done
	// by the primary key. The result is loaded into the destination
	// model. This method returns ErrNotFound if the entity does not
	// exist in the store.
	One(db tokenmart.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the store under the given key. The model
	// is validated before it is written.
	Put(db tokenmart.KVStore, key []byte, m Model) error

	// Delete removes an entity with the given primary key from the
	// store. It returns ErrNotFound if an entity with the given key does
	// not exist.
	Delete(db tokenmart.KVStore, key []byte) error

	// Has returns nil if an entity with the given primary key exists,
	// ErrNotFound otherwise.
	Has(db tokenmart.ReadOnlyKVStore, key []byte) error

	// Iterate visits every entity of the bucket in ascending key order.
	// The model passed to the callback is a fresh instance on every
	// call. Returning an error from the callback stops the iteration and
	// is passed through.
	Iterate(db tokenmart.ReadOnlyKVStore, fn func(key []byte, m Model) error) error
}

// NewModelBucket returns a ModelBucket instance storing entities of the same
// type as the given model under keys prefixed with the bucket name.
func NewModelBucket(name string, model Model) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(model).Elem(),
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db tokenmart.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest).Elem() != mb.model {
		return errors.Wrapf(errors.ErrType, "%v cannot hold %v", reflect.TypeOf(dest), mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Put(db tokenmart.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m).Elem() != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in bucket of %v", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	return db.Set(mb.dbKey(key), raw)
}

func (mb *modelBucket) Delete(db tokenmart.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) Has(db tokenmart.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Iterate(db tokenmart.ReadOnlyKVStore, fn func(key []byte, m Model) error) error {
	// The prefix ends with ':', so incrementing the last byte gives the
	// exclusive upper bound of all bucket keys.
	end := append(append([]byte{}, mb.prefix[:len(mb.prefix)-1]...), ';')
	iter, err := db.Iterator(mb.prefix, end)
	if err != nil {
		return err
	}
	defer iter.Release()

	for {
		key, value, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return err
		}
		m := reflect.New(mb.model).Interface().(Model)
		if err := m.Unmarshal(value); err != nil {
			return errors.Wrapf(err, "cannot unmarshal %v", mb.model)
		}
		if err := fn(key[len(mb.prefix):], m); err != nil {
			return err
		}
	}
}
