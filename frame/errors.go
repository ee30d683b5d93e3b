package frame

import "errors"

// ErrCorrupt is returned when a header-referenced cell's recorded length
// does not fit within the region.
var ErrCorrupt = errors.New("frame: cell length exceeds region bounds")
