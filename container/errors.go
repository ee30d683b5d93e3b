package container

import "errors"

// ErrCorrupt is returned when a string or vector cell's recorded length
// does not fit within the region.
var ErrCorrupt = errors.New("container: cell length exceeds region bounds")

// ErrIndexOutOfRange is returned by Vector.Get/Set for an out-of-range index.
var ErrIndexOutOfRange = errors.New("container: index out of range")
