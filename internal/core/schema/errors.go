package schema

import "errors"

// Schema errors
var (
	// Registry errors

	ErrTypeAlreadyRegistered    = errors.New("type already registered")
	ErrTypeNotRegistered        = errors.New("type not registered")
	ErrVersionAlreadyRegistered = errors.New("version already registered")
	ErrVersionNotRegistered     = errors.New("version not registered")
	ErrRegistryClosed           = errors.New("schema registry is closed")

	// Descriptor errors

	ErrInvalidSchema   = errors.New("invalid schema")
	ErrDuplicateField  = errors.New("duplicate field")
	ErrUnknownField    = errors.New("unknown field")
	ErrMissingField    = errors.New("missing required field")
	ErrFieldConstraint = errors.New("field constraint violated")
	ErrFieldKind       = errors.New("field kind mismatch")

	// Wire errors

	ErrTypeMismatch    = errors.New("payload type mismatch")
	ErrVersionMismatch = errors.New("payload version mismatch")
)
