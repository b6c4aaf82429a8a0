package binary

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// FileOrder is the byte order of every multi-byte value in the binary
// segment of a Vista file.
var FileOrder binary.ByteOrder = binary.BigEndian

// IsBigEndian reports whether order stores the most significant byte first.
func IsBigEndian(order binary.ByteOrder) bool {
	var buf [2]byte
	order.PutUint16(buf[:], 0x0102)
	return buf[0] == 0x01
}

// NeedsSwap reports whether data in FileOrder must be swapped to be read
// in the given host order.
func NeedsSwap(host binary.ByteOrder) bool {
	return !IsBigEndian(host)
}

// Swap reverses the bytes of each size-byte element of buf in place.
// Sizes of 0 and 1 leave buf unchanged.
func Swap(buf []byte, size int) error {
	if size <= 1 {
		return nil
	}
	if len(buf)%size != 0 {
		return errors.Newf("swap: buffer length %d is not a multiple of element size %d", len(buf), size)
	}
	for off := 0; off < len(buf); off += size {
		elem := buf[off : off+size]
		for i, j := 0, size-1; i < j; i, j = i+1, j-1 {
			elem[i], elem[j] = elem[j], elem[i]
		}
	}
	return nil
}

// Normalize converts buf from FileOrder to host order in place.
func Normalize(buf []byte, size int, host binary.ByteOrder) error {
	if !NeedsSwap(host) {
		return nil
	}
	return Swap(buf, size)
}
