package persistence

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies point-set files (ASCII "QMC1" in file order).
	MagicNumber uint32 = 0x31434D51
	// Version is the current file format version.
	Version uint32 = 1

	// HeaderSize is the encoded size of FileHeader.
	HeaderSize = 64

	// MaxPayloadSize bounds the decoded payload accepted by Read.
	MaxPayloadSize = 1 << 32
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidKind        = errors.New("invalid generator kind")
	ErrInvalidCompression = errors.New("invalid compression")
	ErrInvalidPointSet    = errors.New("invalid point set")
	ErrTruncated          = errors.New("truncated payload")
)

// Compression selects the payload encoding.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// String returns the flag form of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses the form produced by Compression.String. The empty
// string selects CompressionNone.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCompression, s)
	}
}

// Flags records the generator variant that produced a point set.
type Flags uint16

const (
	FlagUnitInitialization Flags = 1 << iota
	FlagRandomStart
	FlagRandomShift
)

// Has reports whether every bit of f2 is set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// FileHeader is the 64-byte little-endian header at the start of every
// point-set file.
type FileHeader struct {
	Magic         uint32   // "QMC1"
	Version       uint32   // File format version
	Kind          uint8    // sequence.Kind
	Compression   uint8    // Compression
	Flags         uint16   // Flags
	Dimension     uint32   // Coordinates per point
	Count         uint64   // Number of points
	Seed          uint64   // Generator seed
	PayloadLength uint64   // Stored payload bytes, after compression
	Checksum      uint32   // CRC32C of the uncompressed payload
	Reserved      [20]byte // Future use
}
