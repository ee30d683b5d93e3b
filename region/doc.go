// Package region owns the raw byte slice that backs a payload buffer and
// the two operations every higher layer is built on: translating between
// offsets and short-lived address views, and growing the slice in place
// when a moveable region runs out of room.
//
// A Region never hands out a pointer or slice that outlives the call that
// produced it. Growth can relocate the backing array, so every offset
// dereference goes back through ToAddress rather than caching a []byte
// across an allocation.
package region
