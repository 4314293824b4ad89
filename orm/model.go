package orm

import (
	"github.com/tokenmart/tokenmart"
)

// Model is implemented by any entity that can be stored using a ModelBucket.
type Model interface {
	tokenmart.Persistent

	// Validate returns an error if the model is in an invalid state and
	// must not be persisted.
	Validate() error
}
