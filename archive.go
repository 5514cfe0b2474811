package mkzip

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/mkzip/mkzip/internal/zipfmt"
)

type archiveState uint8

const (
	stateOpen archiveState = iota
	stateFinalized
	stateClosed
)

// Archive incrementally builds a ZIP archive over a sink.
//
// The sink is exclusively owned by the Archive for its lifetime; nothing
// else may write to it. Methods are not safe for concurrent use —
// entry offsets depend on every byte written before them, so insertion
// is strictly sequential.
type Archive struct {
	b       *builder
	cleanup runtime.Cleanup
}

// builder holds the mutable archive state. It is separate from Archive
// so the GC cleanup can reach it once the Archive handle itself is
// unreachable.
type builder struct {
	w       io.Writer
	cfg     config
	modDOS  uint32
	entries []zipfmt.Record
	offset  uint32
	state   archiveState
}

// New returns an Archive writing to w. The caller should defer Close;
// Close finalizes the archive if Flush was never called.
//
// An Archive abandoned without Close is finalized by a garbage-collection
// cleanup so the sink still holds a readable archive. A write failure on
// that path panics: no caller remains to receive the error, and silently
// leaving a corrupt archive behind is the worse outcome.
func New(w io.Writer, opts ...Option) *Archive {
	cfg := config{modTime: time.Now(), compress: deflateBytes}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &builder{w: w, cfg: cfg, modDOS: zipfmt.DOSTime(cfg.modTime)}
	a := &Archive{b: b}
	a.cleanup = runtime.AddCleanup(a, finalizeAbandoned, b)
	return a
}

// finalizeAbandoned is the cleanup for an Archive dropped without Close.
func finalizeAbandoned(b *builder) {
	if b.state != stateOpen {
		return
	}
	if err := b.flush(); err != nil {
		panic(fmt.Errorf("mkzip: finalizing abandoned archive: %w", err))
	}
}

// AddEntry appends one named entry and streams its local header and
// payload to the sink. The returned Archive is the receiver, enabling
// chained adds between error checks.
//
// name must be non-empty and at most 65535 bytes. Either the entry's
// bytes and metadata are fully committed or, on error, the archive
// state is untouched apart from whatever the sink partially accepted.
func (a *Archive) AddEntry(name string, content []byte, level Level) (*Archive, error) {
	return a, a.b.addEntry(name, content, level)
}

// Flush writes the central directory and end-of-central-directory
// record, finalizing the archive. After a successful Flush no entries
// may be added; a second Flush returns ErrArchiveFinalized. On a write
// failure the archive stays open so the caller may retry, though bytes
// already accepted by the sink are not rolled back.
func (a *Archive) Flush() error {
	return a.b.flush()
}

// Close finalizes the archive if it is still open and releases the
// abandonment cleanup. It is idempotent and safe to defer alongside an
// explicit Flush.
//
// A failed Close still ends the archive's life: the state becomes
// closed and the finalize cannot be retried. Callers that want the
// retry window Flush offers should call Flush explicitly and let a
// deferred Close pick up the no-op.
func (a *Archive) Close() error {
	if a.b.state == stateClosed {
		return nil
	}
	var err error
	if a.b.state == stateOpen {
		err = a.b.flush()
	}
	a.b.state = stateClosed
	a.cleanup.Stop()
	return err
}

func (b *builder) addEntry(name string, content []byte, level Level) error {
	if b.state != stateOpen {
		return ErrArchiveFinalized
	}

	header, payload, rec, err := encodeEntry(name, content, level, b.offset, b.modDOS, b.cfg.compress)
	if err != nil {
		return err
	}
	end := uint64(b.offset) + uint64(len(header)) + uint64(len(payload))
	if end > math.MaxUint32 {
		return fmt.Errorf("entry %q: archive size: %w", name, ErrSizeOverflow)
	}

	if _, err := b.w.Write(header); err != nil {
		return fmt.Errorf("write local header for %q: %w", name, err)
	}
	if _, err := b.w.Write(payload); err != nil {
		return fmt.Errorf("write payload for %q: %w", name, err)
	}

	// Commit only after both writes succeed.
	b.offset = uint32(end)
	b.entries = append(b.entries, rec)
	b.log().Debug("entry added",
		"name", name,
		"level", level.String(),
		"compressed_size", rec.CompressedSize,
		"uncompressed_size", rec.UncompressedSize,
		"offset", rec.Offset)
	return nil
}

func (b *builder) flush() error {
	if b.state != stateOpen {
		return ErrArchiveFinalized
	}
	if len(b.entries) > math.MaxUint16 {
		return fmt.Errorf("entry count %d: %w", len(b.entries), ErrSizeOverflow)
	}
	var dirSize uint64
	for i := range b.entries {
		dirSize += uint64(b.entries[i].CentralLen())
	}
	start := b.offset
	if uint64(start)+dirSize+zipfmt.EndOfCentralLen > math.MaxUint32 {
		return fmt.Errorf("central directory: %w", ErrSizeOverflow)
	}

	buf := make([]byte, 0, zipfmt.CentralHeaderLen+64)
	for i := range b.entries {
		rec := &b.entries[i]
		buf = zipfmt.AppendCentralHeader(buf[:0], rec)
		if _, err := b.w.Write(buf); err != nil {
			return fmt.Errorf("write central header for %q: %w", rec.Name, err)
		}
		b.offset += uint32(len(buf))
	}
	buf = zipfmt.AppendEndOfCentral(buf[:0], uint16(len(b.entries)), b.offset-start, start)
	if _, err := b.w.Write(buf); err != nil {
		return fmt.Errorf("write end of central directory: %w", err)
	}
	b.offset += zipfmt.EndOfCentralLen

	b.state = stateFinalized
	b.log().Info("archive finalized",
		"entries", len(b.entries),
		"directory_offset", start,
		"size", b.offset)
	return nil
}

// log returns the configured logger, falling back to a discard logger.
func (b *builder) log() *slog.Logger {
	if b.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.cfg.logger
}
