package imaging

import "errors"

// Sentinel errors returned (wrapped) by this package. Use errors.Is to classify.
var (
	// ErrNotFound is returned when a source image or font path does not
	// resolve to a regular file.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedFormat is returned when input bytes are not GIF, PNG or
	// JPEG, or when an encode is requested in a load-only format.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrInvalidArgument is returned for non-positive target dimensions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownFilter is returned by Filter for names it does not know.
	ErrUnknownFilter = errors.New("unknown filter")
)
