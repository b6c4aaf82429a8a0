// Package binary provides low-level byte handling for Vista data files.
//
// The Vista binary segment is always stored most-significant-byte first.
// Values held in memory use a host byte order, which defaults to the
// machine's native order but can be set explicitly so that big-endian and
// little-endian hosts can be simulated on a single machine.
//
// # Byte Swapping
//
// [Swap] reverses every element of a buffer in place for a given element
// size. [NeedsSwap] reports whether a host order differs from the file
// order. Together they implement the read rule of the format: unpack the
// bytes exactly as stored, then swap them in place when the host is
// little-endian.
//
// # Positioned Reads
//
// [Reader] wraps an io.ReaderAt and tracks an independent position, so a
// caller holding an open file can read arbitrary regions of one object's
// data without consuming the rest of the stream.
//
// # Sequential Writes
//
// [Writer] wraps an io.Writer, counts the bytes written and keeps the
// first error, so that a file writer can emit header and payload pieces
// without checking every call.
package binary
