package table

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies a compressed input container.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGZ   Compression = "gzip"
	CompressionBZ2  Compression = "bzip2"
	CompressionXZ   Compression = "xz"
	CompressionZSTD Compression = "zstd"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sniff reports the compression of data and whether it is an XLSX workbook.
func sniff(data []byte) (Compression, bool) {
	m := mimetype.Detect(data)
	switch {
	case m.Is("application/gzip"):
		return CompressionGZ, false
	case m.Is("application/x-bzip2"):
		return CompressionBZ2, false
	case m.Is("application/x-xz"):
		return CompressionXZ, false
	case m.Is("application/zstd"):
		return CompressionZSTD, false
	case m.Is(xlsxMIME):
		return CompressionNone, true
	default:
		return CompressionNone, false
	}
}

// decompress returns the decompressed bytes of data.
// maxSize bounds the decompressed size when positive.
func decompress(data []byte, c Compression, maxSize int64) ([]byte, error) {
	var r io.Reader
	src := bytes.NewReader(data)

	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGZ:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case CompressionBZ2:
		r = bzip2.NewReader(src)
	case CompressionXZ:
		xr, err := xz.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xr
	case CompressionZSTD:
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}

	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s input: %w", c, err)
	}
	if maxSize > 0 && int64(len(out)) > maxSize {
		return nil, fmt.Errorf("%w: decompressed size exceeds %d bytes", ErrInputTooLarge, maxSize)
	}
	return out, nil
}
