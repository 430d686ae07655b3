// Package persistence reads and writes point-set files: a block of generator
// output stored with the parameters that produced it.
//
// # Layout
//
// Every file starts with a 64-byte little-endian FileHeader (magic "QMC1",
// version, generator kind, compression, variant flags, dimension, point count,
// seed, stored payload length and the CRC32C of the uncompressed payload). The
// payload follows: count*dimension float64 values, row-major, optionally
// compressed with zstd or lz4.
//
// # Integrity
//
// Read verifies the checksum after decoding and rejects files whose payload is
// shorter or longer than the header claims. SaveToFile writes through a
// temporary file and renames it into place.
//
//	ps, err := persistence.Capture(gen, 1023)
//	if err != nil {
//	    return err
//	}
//	ps.Kind = sequence.KindSobol
//	err = persistence.SaveToFile("points.qmc", ps, persistence.CompressionZstd)
package persistence
