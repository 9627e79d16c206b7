package domain

import "errors"

var (
	// ErrPreampOutOfRange indicates that a preamp level is outside [-127, 0].
	ErrPreampOutOfRange = errors.New("preamp level must be between -127 and 0")

	// ErrMalformedLevel indicates that a preamp level token is not an integer.
	ErrMalformedLevel = errors.New("preamp level must be an integer")

	// ErrInvalidPhantomToken indicates a phantom power token outside on/off/1/0.
	ErrInvalidPhantomToken = errors.New("phantom power must be one of on, off, 1, 0")

	// ErrEmptyModelName indicates that a device was configured without a model name.
	ErrEmptyModelName = errors.New("model name is required")
)
