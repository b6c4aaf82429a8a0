// Package dtype describes the numeric representations used for Vista
// pixel and field data and converts between their in-memory and packed
// forms.
//
// A [Type] is a class (bit, unsigned, signed or floating point) and a
// precision in bits. The seven Vista numeric representations map to:
//
//	Name   | Type              | In memory | Packed
//	-------|-------------------|-----------|-------------------
//	bit    | ClassBit, 1       | 1 byte    | 1 bit, MSB first
//	ubyte  | ClassUnsigned, 8  | 1 byte    | 1 byte
//	sbyte  | ClassSigned, 8    | 1 byte    | 1 byte
//	short  | ClassSigned, 16   | 2 bytes   | 2 bytes, big-endian
//	long   | ClassSigned, 32   | 4 bytes   | 4 bytes, big-endian
//	float  | ClassFloat, 32    | 4 bytes   | 4 bytes, big-endian
//	double | ClassFloat, 64    | 8 bytes   | 8 bytes, big-endian
//
// # Packing
//
// [Pack] and [Unpack] move whole element arrays between a host-order
// memory buffer and the packed file layout. Bit arrays are packed eight
// elements per byte with no padding between rows or bands; all other
// types are copied and then byte-swapped in place when the host order is
// little-endian.
//
// [PackValues] and [UnpackValues] do the same for float64 value slices,
// which is how graph and edge-set records carry their per-node fields.
//
// # Scalar Conversion
//
// Header attributes are stored as text. [Parse], [Format] and [Convert]
// move scalar values between text, float64 and a target type with range
// and integrality checks; [FromGo] and [ToGo] map to and from the Go
// types that hold attribute values.
package dtype
