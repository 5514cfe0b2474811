package mkzip

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"

	"github.com/mkzip/mkzip/internal/zipfmt"
)

// Level selects how an entry's bytes are stored. It is fixed per entry
// at AddEntry time.
type Level uint8

const (
	// LevelRaw stores the bytes verbatim, method code 0.
	LevelRaw Level = iota
	// LevelFastest deflates with the fastest setting, method code 8.
	LevelFastest
	// LevelDefault deflates with the default speed/ratio tradeoff.
	LevelDefault
	// LevelBest deflates for the smallest output, slowest.
	LevelBest
)

// method returns the ZIP compression method code for the level.
func (l Level) method() uint16 {
	if l == LevelRaw {
		return zipfmt.MethodStore
	}
	return zipfmt.MethodDeflate
}

// flateLevel maps the level onto the deflate compressor's level scale.
// Only meaningful for deflated levels.
func (l Level) flateLevel() int {
	switch l {
	case LevelFastest:
		return flate.BestSpeed
	case LevelBest:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelRaw:
		return "raw"
	case LevelFastest:
		return "fastest"
	case LevelDefault:
		return "default"
	case LevelBest:
		return "best"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// Compressor produces the deflate-compressed form of data at the given
// level. Implementations must satisfy the round-trip contract: inflating
// the returned bytes reproduces data exactly. The default implementation
// is backed by github.com/klauspost/compress/flate; substitute one with
// [WithCompressor].
type Compressor func(data []byte, level int) ([]byte, error)

// deflateBytes is the default Compressor.
func deflateBytes(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("new flate writer: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("close flate writer: %w", err)
	}
	return buf.Bytes(), nil
}
