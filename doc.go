// Package mkzip builds ZIP archives incrementally over any io.Writer.
//
// Entries are streamed: each AddEntry call writes the entry's local file
// header and payload to the sink immediately, so memory use is bounded by
// the largest single entry, not the archive. Flush writes the central
// directory and end-of-central-directory record that conformant readers
// locate entries through.
//
// # Quick Start
//
//	f, err := os.Create("out.zip")
//	if err != nil {
//	    return err
//	}
//	a := mkzip.New(f)
//	defer a.Close()
//
//	if _, err := a.AddEntry("file1.txt", []byte("content"), mkzip.LevelDefault); err != nil {
//	    return err
//	}
//	if _, err := a.AddEntry("file2.txt", []byte("content"), mkzip.LevelRaw); err != nil {
//	    return err
//	}
//	if err := a.Flush(); err != nil {
//	    return err
//	}
//
// If Flush is never called, Close finalizes the archive before releasing
// it, so a forgotten Flush still yields a readable archive. A builder
// dropped without Close is finalized by a garbage-collection cleanup as a
// last resort; a write failure on that path panics, since no caller
// remains to receive the error and a silently corrupt archive is worse
// than crashing.
//
// The package is write-only. Archives larger than 4 GiB or holding more
// than 65535 entries need Zip64 extensions, which are not emitted;
// exceeding either limit is reported as [ErrSizeOverflow].
package mkzip
