package zipfmt

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOSTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want uint32
	}{
		{"before epoch floor", time.Date(1970, 10, 14, 21, 2, 30, 0, time.UTC), 0},
		{"epoch floor", time.Date(1980, 1, 7, 18, 5, 10, 0, time.UTC), 2592933},
		{"nineties", time.Date(1998, 2, 1, 19, 5, 2, 0, time.UTC), 608278689},
		{"leap year", time.Date(2000, 3, 12, 5, 4, 1, 0, time.UTC), 678176896},
		{"recent", time.Date(2020, 12, 25, 14, 5, 23, 0, time.UTC), 1369010347},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DOSTime(tt.in))
		})
	}
}

func TestDOSTimeTwoSecondGranularity(t *testing.T) {
	t.Parallel()

	even := time.Date(2020, 12, 25, 14, 5, 22, 0, time.UTC)
	odd := time.Date(2020, 12, 25, 14, 5, 23, 0, time.UTC)
	assert.Equal(t, DOSTime(even), DOSTime(odd))
}

func TestAppendLocalHeader(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Name:             "dir/file.txt",
		Method:           MethodDeflate,
		ModTime:          1369010347,
		CRC32:            0xdeadbeef,
		CompressedSize:   42,
		UncompressedSize: 100,
		Offset:           7, // not part of the local header
	}
	b := AppendLocalHeader(nil, rec)
	require.Len(t, b, rec.LocalLen())

	le := binary.LittleEndian
	assert.Equal(t, uint32(SigLocalHeader), le.Uint32(b[0:]))
	assert.Equal(t, uint16(20), le.Uint16(b[4:]), "version needed")
	assert.Equal(t, uint16(0x0800), le.Uint16(b[6:]), "utf-8 flag")
	assert.Equal(t, MethodDeflate, le.Uint16(b[8:]))
	assert.Equal(t, uint32(1369010347), le.Uint32(b[10:]))
	assert.Equal(t, uint32(0xdeadbeef), le.Uint32(b[14:]))
	assert.Equal(t, uint32(42), le.Uint32(b[18:]))
	assert.Equal(t, uint32(100), le.Uint32(b[22:]))
	assert.Equal(t, uint16(len(rec.Name)), le.Uint16(b[26:]))
	assert.Equal(t, uint16(0), le.Uint16(b[28:]), "extra length")
	assert.Equal(t, rec.Name, string(b[30:]))
}

func TestAppendCentralHeader(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Name:             "a.txt",
		Method:           MethodStore,
		ModTime:          2592933,
		CRC32:            0x01020304,
		CompressedSize:   7,
		UncompressedSize: 7,
		Offset:           0x00beef00,
	}
	b := AppendCentralHeader(nil, rec)
	require.Len(t, b, rec.CentralLen())

	le := binary.LittleEndian
	assert.Equal(t, uint32(SigCentralHeader), le.Uint32(b[0:]))
	assert.Equal(t, uint16(20), le.Uint16(b[4:]), "version made by")
	assert.Equal(t, uint16(20), le.Uint16(b[6:]), "version needed")
	assert.Equal(t, uint16(0x0800), le.Uint16(b[8:]), "utf-8 flag")
	assert.Equal(t, MethodStore, le.Uint16(b[10:]))
	assert.Equal(t, uint32(2592933), le.Uint32(b[12:]))
	assert.Equal(t, uint32(0x01020304), le.Uint32(b[16:]))
	assert.Equal(t, uint32(7), le.Uint32(b[20:]))
	assert.Equal(t, uint32(7), le.Uint32(b[24:]))
	assert.Equal(t, uint16(len(rec.Name)), le.Uint16(b[28:]))
	assert.Equal(t, uint16(0), le.Uint16(b[30:]), "extra length")
	assert.Equal(t, uint16(0), le.Uint16(b[32:]), "comment length")
	assert.Equal(t, uint16(0), le.Uint16(b[34:]), "disk number")
	assert.Equal(t, uint16(0), le.Uint16(b[36:]), "internal attrs")
	assert.Equal(t, uint32(0), le.Uint32(b[38:]), "external attrs")
	assert.Equal(t, uint32(0x00beef00), le.Uint32(b[42:]))
	assert.Equal(t, rec.Name, string(b[46:]))
}

func TestAppendEndOfCentral(t *testing.T) {
	t.Parallel()

	b := AppendEndOfCentral(nil, 3, 153, 4096)
	require.Len(t, b, EndOfCentralLen)

	le := binary.LittleEndian
	assert.Equal(t, uint32(SigEndOfCentral), le.Uint32(b[0:]))
	assert.Equal(t, uint16(0), le.Uint16(b[4:]), "this disk")
	assert.Equal(t, uint16(0), le.Uint16(b[6:]), "directory disk")
	assert.Equal(t, uint16(3), le.Uint16(b[8:]), "entries on disk")
	assert.Equal(t, uint16(3), le.Uint16(b[10:]), "entries total")
	assert.Equal(t, uint32(153), le.Uint32(b[12:]), "directory size")
	assert.Equal(t, uint32(4096), le.Uint32(b[16:]), "directory offset")
	assert.Equal(t, uint16(0), le.Uint16(b[20:]), "comment length")
}

func TestAppendReusesBuffer(t *testing.T) {
	t.Parallel()

	rec := &Record{Name: "x"}
	buf := make([]byte, 0, 128)
	b := AppendLocalHeader(buf, rec)
	assert.Len(t, b, rec.LocalLen())
	b = AppendCentralHeader(b[:0], rec)
	assert.Len(t, b, rec.CentralLen())
}
