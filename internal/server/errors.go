package server

import "errors"

var (
	ErrServerClosed         = errors.New("debug server is closed")
	ErrServerAlreadyRunning = errors.New("debug server already running")
)
