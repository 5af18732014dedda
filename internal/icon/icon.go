package icon

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// Format is an image container recognized by its magic bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatBMP
	FormatICO
)

// String returns the name of the format.
func (f Format) String() string {
	names := []string{"Unknown", "PNG", "JPEG", "BMP", "ICO"}
	if int(f) < len(names) {
		return names[f]
	}

	return "Unknown"
}

// DataURIPrefix precedes the base64 payload of every profile icon.
const DataURIPrefix = "data:image/png;base64,"

// fabricIcon is the 16x16 Fabric logo used when the payload has no icon.
const fabricIcon = "iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9hAAAABGdBTUEAALGPC/xhBQAAACBjSFJNAAB6JgAAgIQAAPoAAACA6AAAdTAAAOpgAAA6mAAAF3CculE8AAAACXBIWXMAAAsTAAALEwEAmpwYAAABWWlUWHRYTUw6Y29tLmFkb2JlLnhtcAAAAAAAPHg6eG1wbWV0YSB4bWxuczp4PSJhZG9iZTpuczptZXRhLyIgeDp4bXB0az0iWE1QIENvcmUgNi4wLjAiPgogICA8cmRmOlJERiB4bWxuczpyZGY9Imh0dHA6Ly93d3cudzMub3JnLzE5OTkvMDIvMjItcmRmLXN5bnRheC1ucyMiPgogICAgICA8cmRmOkRlc2NyaXB0aW9uIHJkZjphYm91dD0iIgogICAgICAgICAgICB4bWxuczp0aWZmPSJodHRwOi8vbnMuYWRvYmUuY29tL3RpZmYvMS4wLyI+CiAgICAgICAgPHRpZmY6T3JpZW50YXRpb24+MTwvdGlmZjpPcmllbnRhdGlvbj4KICAgICAgPC9yZGY6RGVzY3JpcHRpb24+CiAgIDwvcmRmOlJERj4KPC94OnhtcG1ldGE+AAAACklEQVQ4y+3TsQ1AIBBE0Z3nOQsg8wD0BQ9fZx/2AAAAAElFTkSuQmCC"

var (
	magicPNG  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
	magicBMP  = []byte{0x42, 0x4D}
	magicICO  = []byte{0x00, 0x00, 0x01, 0x00}
)

var (
	errUnknownFormat = errors.New("unrecognized icon format")
	errBadICO        = errors.New("invalid ICO file")
	errICONoPNG      = errors.New("ICO file has no PNG-compressed image")
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// Default returns the data URI of the built-in Fabric icon.
func Default() string {
	return DataURIPrefix + fabricIcon
}

// Load reads the icon at path and returns its data URI. A missing file or an
// empty path yields Default with a nil error; an undecodable file yields
// Default together with the decoding error.
func Load(path string) (string, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return Default(), fmt.Errorf("read icon: %w", err)
	}

	uri, err := Encode(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return uri, nil
}

// Encode converts an image in any supported format to a PNG data URI.
func Encode(data []byte) (string, error) {
	pngData, err := toPNG(data)
	if err != nil {
		return "", err
	}

	return DataURIPrefix + base64.StdEncoding.EncodeToString(pngData), nil
}

// DetectFormat inspects the magic bytes of data.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return FormatPNG
	case bytes.HasPrefix(data, magicJPEG):
		return FormatJPEG
	case bytes.HasPrefix(data, magicICO):
		return FormatICO
	case bytes.HasPrefix(data, magicBMP):
		return FormatBMP
	default:
		return FormatUnknown
	}
}

func toPNG(data []byte) ([]byte, error) {
	var (
		img image.Image
		err error
	)

	switch DetectFormat(data) {
	case FormatPNG:
		// Validate before embedding as-is.
		if _, err = png.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decode PNG: %w", err)
		}

		return data, nil
	case FormatICO:
		return pngFromICO(data)
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case FormatBMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		return nil, errUnknownFormat
	}

	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// pngFromICO returns the largest PNG-compressed image of an ICO file.
func pngFromICO(data []byte) ([]byte, error) {
	if len(data) < icoHeaderSize {
		return nil, fmt.Errorf("%w: too short for header", errBadICO)
	}

	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 || len(data) < icoHeaderSize+count*icoEntrySize {
		return nil, fmt.Errorf("%w: bad directory", errBadICO)
	}

	var (
		best     []byte
		bestArea int
	)

	for i := range count {
		entry := data[icoHeaderSize+i*icoEntrySize : icoHeaderSize+(i+1)*icoEntrySize]

		size := int(binary.LittleEndian.Uint32(entry[8:12]))
		offset := int(binary.LittleEndian.Uint32(entry[12:16]))

		if size == 0 || offset < 0 || offset+size > len(data) {
			continue
		}

		blob := data[offset : offset+size]
		if !bytes.HasPrefix(blob, magicPNG) {
			continue
		}

		area := entryDimension(entry[0]) * entryDimension(entry[1])
		if best == nil || area > bestArea {
			best, bestArea = blob, area
		}
	}

	if best == nil {
		return nil, errICONoPNG
	}

	return best, nil
}

// entryDimension converts an ICO directory width or height, where 0 means 256.
func entryDimension(b byte) int {
	if b == 0 {
		return 256
	}

	return int(b)
}
