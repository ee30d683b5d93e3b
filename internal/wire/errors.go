package wire

import "errors"

var (
	// ErrSignatureMismatch indicates a region's magic did not match either
	// recognised value.
	ErrSignatureMismatch = errors.New("wire: unrecognized region magic")
	// ErrTruncated indicates the buffer lacked the bytes required for a
	// structure at the offset requested.
	ErrTruncated = errors.New("wire: truncated buffer")
)
