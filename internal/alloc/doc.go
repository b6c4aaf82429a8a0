// Package alloc assigns offsets inside the binary data segment of a Vista
// file being written.
//
// Every object with a binary payload records a "data" offset relative to
// the start of the segment and a "length". The writer must know these
// offsets while it emits the textual header, before any payload byte
// exists, so each object reserves its block in a [Segment] as its header
// is produced.
//
// Blocks are placed back to back in reservation order. Empty payloads
// take no block. [Segment.Validate] checks that the blocks tile the
// segment with no gap or overlap; the writer runs it before emitting
// payloads.
//
// A Segment is not safe for concurrent use.
package alloc
