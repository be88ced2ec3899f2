// Package autobuf provides a growable buffer on top of fixed buffers.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Buffer owns one fixed buffer at a time. When a relative put would run
// past capacity and growth is enabled, it asks its Policy for a larger
// capacity, allocates a replacement from the same allocator, copies the
// written prefix across and releases the old buffer. Growth is enabled after
// construction and Clear, and disabled by SetLimit and Flip.
package autobuf
