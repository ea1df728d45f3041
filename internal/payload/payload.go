// Package payload loads raw translation payload files from disk.
// It supports .json and .xml payloads, with transparent decompression
// of .xz and .gz variants.
package payload

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Scriptura/core/library"
)

// MaxPayloadSize caps the decompressed payload size (guards against
// decompression bombs).
const MaxPayloadSize = 256 << 20 // 256 MiB

// Load reads a payload file, decompressing as needed, and reports its
// format from the file extension.
func Load(path string) ([]byte, library.Format, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open payload: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, "", fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, "", fmt.Errorf("gzip reader: %w", err)
		}
		defer gzr.Close()
		reader = gzr
	}

	data, err := io.ReadAll(io.LimitReader(reader, MaxPayloadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read payload: %w", err)
	}
	if len(data) > MaxPayloadSize {
		return nil, "", fmt.Errorf("payload exceeds %d bytes", MaxPayloadSize)
	}
	return data, format, nil
}

// DetectFormat maps a payload filename to its format, ignoring
// compression suffixes.
func DetectFormat(path string) (library.Format, error) {
	name := strings.TrimSuffix(strings.TrimSuffix(path, ".xz"), ".gz")
	switch {
	case strings.HasSuffix(name, ".json"):
		return library.FormatJSON, nil
	case strings.HasSuffix(name, ".xml"):
		return library.FormatXML, nil
	default:
		return "", fmt.Errorf("unsupported payload format: %s", path)
	}
}
