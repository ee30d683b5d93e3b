// Package container implements the two payload structures built directly
// on the allocator: length-prefixed strings and doubling-capacity vectors
// of fixed-size elements. Both are just conventions layered over
// alloc.Allocator cells; neither introduces a new wire primitive.
package container
