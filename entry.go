package mkzip

import (
	"fmt"
	"hash/crc32"
	"math"

	"github.com/mkzip/mkzip/internal/zipfmt"
)

// encodeEntry produces the local file header bytes, the payload bytes,
// and the metadata record for one entry. offset is the position the
// caller will write the header at; it is stamped into the record. The
// checksum always covers the uncompressed bytes regardless of level.
//
// encodeEntry is pure: it never touches the sink, and a returned error
// means nothing should be written.
func encodeEntry(name string, content []byte, level Level, offset, modTime uint32, compress Compressor) (header, payload []byte, rec zipfmt.Record, err error) {
	if name == "" {
		return nil, nil, rec, ErrEmptyName
	}
	if len(name) > math.MaxUint16 {
		return nil, nil, rec, fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(name))
	}
	if uint64(len(content)) > math.MaxUint32 {
		return nil, nil, rec, fmt.Errorf("entry %q: %w", name, ErrSizeOverflow)
	}

	payload = content
	if level != LevelRaw {
		payload, err = compress(content, level.flateLevel())
		if err != nil {
			return nil, nil, rec, fmt.Errorf("compress entry %q: %w", name, err)
		}
		if uint64(len(payload)) > math.MaxUint32 {
			return nil, nil, rec, fmt.Errorf("entry %q: %w", name, ErrSizeOverflow)
		}
	}

	rec = zipfmt.Record{
		Name:             name,
		Method:           level.method(),
		ModTime:          modTime,
		CRC32:            crc32.ChecksumIEEE(content),
		CompressedSize:   uint32(len(payload)),
		UncompressedSize: uint32(len(content)),
		Offset:           offset,
	}
	header = zipfmt.AppendLocalHeader(make([]byte, 0, rec.LocalLen()), &rec)
	return header, payload, rec, nil
}
