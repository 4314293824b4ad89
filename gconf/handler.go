package gconf

import (
	"reflect"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/x"
)

// OwnedConfig must expose the owner address. A configuration update message
// must be authenticated as the owner in order to be authorized to apply the
// change.
type OwnedConfig interface {
	Configuration
	GetOwner() tokenmart.Address
}

// UpdateConfigurationHandler processes configuration patch messages. The
// stored configuration must exist (it is created during genesis); updating
// requires the current owner's authorization.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config OwnedConfig
	auth   x.Authenticator
}

var _ tokenmart.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that processes
// configuration patch messages for the given package.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenmart.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) error {
	if err := Load(db, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	// The configuration owner must authorize the change.
	owner := h.config.GetOwner()
	if len(owner) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "not the configuration owner")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}

	return errors.Wrap(Save(db, h.pkg, h.config), "cannot save updated config")
}

// patch applies the payload fields onto the configuration, matching fields
// by name. A payload field of the same type as the configuration field keeps
// the stored value when zero. A payload field that is a pointer to the
// configuration field's type keeps the stored value only when nil; a non-nil
// pointer always overwrites, including with a zero value.
func patch(config OwnedConfig, payload interface{}) error {
	pval := reflect.ValueOf(payload)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrMsg, "invalid patch container: %T", payload)
	}

	cval := reflect.ValueOf(config).Elem()
	pstr := pval.Elem()
	ptype := pstr.Type()

	for i := 0; i < pstr.NumField(); i++ {
		name := ptype.Field(i).Name
		dst := cval.FieldByName(name)
		if !dst.IsValid() {
			return errors.Wrapf(errors.ErrMsg, "unknown configuration field %q", name)
		}
		got := pstr.Field(i)
		switch {
		case got.Type() == dst.Type():
			if isZero(got) {
				continue
			}
			dst.Set(got)
		case got.Kind() == reflect.Ptr && got.Type().Elem() == dst.Type():
			if got.IsNil() {
				continue
			}
			dst.Set(got.Elem())
		default:
			return errors.Wrapf(errors.ErrMsg, "configuration field %q type mismatch", name)
		}
	}

	return nil
}

// isZero returns true if given value represents a zero value of its type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with a "Patch"
// field, a pointer to a struct whose fields name the configuration fields to
// update. Content of this field is extracted and returned.
func patchPayload(tx tokenmart.Tx) (interface{}, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	val := pval.Elem()

	field := val.FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	return field.Interface(), nil
}
