package domain

import "errors"

var (
	// ErrLanguageNotLoaded is returned when an operation references a
	// language code that has never been loaded into the registry.
	ErrLanguageNotLoaded = errors.New("language not loaded")

	// ErrModelNotFound is returned when no model artifact exists for a
	// language code, either on disk or at the remote source.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidArgument is returned for caller mistakes such as a
	// non-positive k or a k larger than the target vocabulary.
	ErrInvalidArgument = errors.New("invalid argument")
)
