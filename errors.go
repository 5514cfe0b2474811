package mkzip

import "errors"

var (
	// ErrEmptyName is returned when an entry name is empty.
	ErrEmptyName = errors.New("mkzip: empty entry name")

	// ErrNameTooLong is returned when an entry name exceeds the 65535-byte
	// limit of the header name-length field.
	ErrNameTooLong = errors.New("mkzip: entry name too long")

	// ErrSizeOverflow is returned when a size or offset exceeds the 32-bit
	// header fields. The archive format caps entry sizes, entry counts, and
	// the total archive size; exceeding a cap is reported rather than
	// wrapped, since a truncated size field would corrupt the archive
	// undetectably.
	ErrSizeOverflow = errors.New("mkzip: size overflows 32-bit header field")

	// ErrArchiveFinalized is returned when entries are added or Flush is
	// called after the central directory has been written.
	ErrArchiveFinalized = errors.New("mkzip: archive already finalized")
)
