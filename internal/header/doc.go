// Package header reads and writes the textual header of a Vista data file.
//
// A header looks like:
//
//	V-data 2 {
//		patient: "Jane Doe"
//		image: image {
//			data: 0
//			length: 65536
//			nbands: 1
//			nrows: 256
//			ncolumns: 256
//			repn: ubyte
//		}
//	}
//	^L
//
// and is followed by the two-byte delimiter "\f\n" that marks the start of
// the binary data segment.
//
// [Scanner] splits header text into tokens (words, quoted strings, colons
// and braces) while counting the bytes it consumes, so the caller learns
// the exact file offset at which binary data begins. [Encoder] produces
// the same text with tab indentation and quoting.
//
// Words are runs of characters other than whitespace, quotes, colons and
// braces. Quoted strings use double quotes with backslash escapes for
// '"' and '\'.
package header
