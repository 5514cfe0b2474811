// Package zipfmt encodes the fixed on-the-wire structures of the ZIP
// container format: local file headers, central directory file headers,
// and the end-of-central-directory record. All multi-byte fields are
// little-endian per the format specification.
//
// The package is pure encoding; it never performs I/O.
package zipfmt

import (
	"encoding/binary"
	"time"
)

// Record signatures ("PK.." magic values).
const (
	SigLocalHeader   = 0x04034b50
	SigCentralHeader = 0x02014b50
	SigEndOfCentral  = 0x06054b50
)

// Compression method codes.
const (
	MethodStore   uint16 = 0
	MethodDeflate uint16 = 8
)

// Fixed-field lengths of each record kind, excluding variable-length
// name bytes.
const (
	LocalHeaderLen   = 30
	CentralHeaderLen = 46
	EndOfCentralLen  = 22
)

const (
	// Version 2.0: the minimum that understands deflate.
	versionNeeded = 20
	versionMadeBy = 20

	// General purpose bit 11: name is UTF-8.
	flagUTF8 = 0x0800
)

// Record carries the per-entry metadata stamped into both header kinds.
// Sizes and the offset are 32-bit because that is the width of the wire
// fields; callers enforce the limits before constructing a Record.
type Record struct {
	Name             string
	Method           uint16
	ModTime          uint32 // DOS date/time, see DOSTime
	CRC32            uint32 // checksum of the uncompressed bytes
	CompressedSize   uint32
	UncompressedSize uint32
	Offset           uint32 // where the local header begins
}

// LocalLen returns the encoded length of r's local file header.
func (r *Record) LocalLen() int { return LocalHeaderLen + len(r.Name) }

// CentralLen returns the encoded length of r's central directory header.
func (r *Record) CentralLen() int { return CentralHeaderLen + len(r.Name) }

// AppendLocalHeader appends the local file header for r to b.
// The entry payload follows this header immediately in the archive.
func AppendLocalHeader(b []byte, r *Record) []byte {
	b = binary.LittleEndian.AppendUint32(b, SigLocalHeader)
	b = binary.LittleEndian.AppendUint16(b, versionNeeded)
	b = binary.LittleEndian.AppendUint16(b, flagUTF8)
	b = binary.LittleEndian.AppendUint16(b, r.Method)
	b = binary.LittleEndian.AppendUint32(b, r.ModTime)
	b = binary.LittleEndian.AppendUint32(b, r.CRC32)
	b = binary.LittleEndian.AppendUint32(b, r.CompressedSize)
	b = binary.LittleEndian.AppendUint32(b, r.UncompressedSize)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(r.Name)))
	b = binary.LittleEndian.AppendUint16(b, 0) // extra field length
	return append(b, r.Name...)
}

// AppendCentralHeader appends the central directory file header for r
// to b. It mirrors the local header with the addition of the comment,
// disk, attribute, and local-header-offset fields, all of which are
// zero here except the offset.
func AppendCentralHeader(b []byte, r *Record) []byte {
	b = binary.LittleEndian.AppendUint32(b, SigCentralHeader)
	b = binary.LittleEndian.AppendUint16(b, versionMadeBy)
	b = binary.LittleEndian.AppendUint16(b, versionNeeded)
	b = binary.LittleEndian.AppendUint16(b, flagUTF8)
	b = binary.LittleEndian.AppendUint16(b, r.Method)
	b = binary.LittleEndian.AppendUint32(b, r.ModTime)
	b = binary.LittleEndian.AppendUint32(b, r.CRC32)
	b = binary.LittleEndian.AppendUint32(b, r.CompressedSize)
	b = binary.LittleEndian.AppendUint32(b, r.UncompressedSize)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(r.Name)))
	b = binary.LittleEndian.AppendUint16(b, 0) // extra field length
	b = binary.LittleEndian.AppendUint16(b, 0) // comment length
	b = binary.LittleEndian.AppendUint16(b, 0) // disk number start
	b = binary.LittleEndian.AppendUint16(b, 0) // internal attributes
	b = binary.LittleEndian.AppendUint32(b, 0) // external attributes
	b = binary.LittleEndian.AppendUint32(b, r.Offset)
	return append(b, r.Name...)
}

// AppendEndOfCentral appends the end-of-central-directory record to b.
// entries is the archive's entry count, size the total byte length of
// the central directory, and offset the position where the central
// directory begins. No archive comment is written.
func AppendEndOfCentral(b []byte, entries uint16, size, offset uint32) []byte {
	b = binary.LittleEndian.AppendUint32(b, SigEndOfCentral)
	b = binary.LittleEndian.AppendUint16(b, 0) // this disk number
	b = binary.LittleEndian.AppendUint16(b, 0) // disk with central directory
	b = binary.LittleEndian.AppendUint16(b, entries)
	b = binary.LittleEndian.AppendUint16(b, entries)
	b = binary.LittleEndian.AppendUint32(b, size)
	b = binary.LittleEndian.AppendUint32(b, offset)
	b = binary.LittleEndian.AppendUint16(b, 0) // comment length
	return b
}

// DOSTime encodes t in the legacy MS-DOS date/time format used by ZIP
// headers: date in the high 16 bits, time in the low 16, with seconds
// stored at two-second granularity. The format cannot represent years
// before 1980; such times encode as 0.
func DOSTime(t time.Time) uint32 {
	if t.Year() < 1980 {
		return 0
	}
	return uint32(t.Year()-1980)<<25 |
		uint32(t.Month())<<21 |
		uint32(t.Day())<<16 |
		uint32(t.Hour())<<11 |
		uint32(t.Minute())<<5 |
		uint32(t.Second())>>1
}
