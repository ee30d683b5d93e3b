// Package frame implements the top-level framing a region's header
// exposes directly: the main message cell, an optional metadata cell, and
// per-field presence bitmaps. It also provides Dump, a debugging aid that
// prints a region's header and free list in tabular form.
package frame
