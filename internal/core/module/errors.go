package module

import "errors"

// Core module errors
var (
	// Registration errors

	ErrAlreadyRegistered = errors.New("module already registered")
	ErrNotRegistered     = errors.New("module not registered")
	ErrNilModule         = errors.New("module is nil")
	ErrEmptyName         = errors.New("module name is empty")

	// Lifecycle errors

	ErrAlreadyInitialized = errors.New("module already initialized")
	ErrNotInitialized     = errors.New("module not initialized")
	ErrManagerClosed      = errors.New("module manager is closed")

	// Library errors

	ErrNilFactory = errors.New("module factory is nil")
)
