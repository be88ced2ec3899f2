// Package pool
// Author: momentics <momentics@gmail.com>
//
// Free lists of equal-capacity fixed buffers.
//
// List wraps a caller-supplied set of buffers and never allocates: borrowing
// from an empty List fails. Backed draws from an api.Allocator whenever its
// free list is empty, so it never runs dry. Both recycle LIFO and clear every
// returned buffer, and both remember which buffers they lent, so a buffer
// from another pool or a second return is rejected.
//
// Router is an api.Allocator that keeps one pool per requested capacity.
//
// Pools are not safe for concurrent use. Router guards its pool map, but
// the pools it hands out still need a single owner.
package pool
