package gconf

import (
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

// ValidMarshaler is implemented by objects that can serialize themselves to
// a binary representation and tell if their state is valid.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is implemented by objects that can load their state from a
// given binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration combines the serialization needs of a stored configuration.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the object, before writing it to the configuration
// singleton of that package name.
func Save(db tokenmart.KVStore, pkg string, src ValidMarshaler) error {
	key := confKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration singleton of the package into dst. It returns
// ErrNotFound if the configuration was never created.
func Load(db tokenmart.ReadOnlyKVStore, pkg string, dst Unmarshaler) error {
	key := confKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given
// Configuration object, validate it, and store it under the proper key in
// the database. Returns an error if anything goes wrong.
func InitConfig(db tokenmart.KVStore, opts tokenmart.Options, pkg string, conf Configuration) error {
	var confOptions tokenmart.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
