// Package layout provides the planar storage arithmetic of Vista image
// data and reads regions of it from an open file.
//
// Image pixels are stored band-outermost, then row-major: all rows of
// band 0, then all rows of band 1, and so on. Each band is therefore one
// contiguous block and each row of a band is a contiguous run inside it.
//
// # Regions
//
// [Planar] computes the byte [Extent] (offset and length relative to the
// start of an object's data) of:
//
//   - a range of rows, which yields one extent per band
//   - a range of bands, which yields a single extent
//
// [Contiguous] binds an object's data segment, located at an absolute
// file offset, to a positioned reader, and reads whole objects or lists
// of extents from it.
package layout
