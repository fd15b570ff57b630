package cuesheet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names accepted by Options.
const (
	EncodingAuto        = "auto"
	EncodingUTF8        = "utf-8"
	EncodingUTF16       = "utf-16"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
)

// Options controls how raw cue sheet bytes are decoded.
type Options struct {
	// Encoding selects the character set. Empty or "auto" detects a BOM,
	// then falls back to Windows-1252 when the input is not valid UTF-8.
	Encoding string
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Read decodes and parses a cue sheet stream. The whole stream is buffered
// because classification needs every line before assembly starts.
func Read(r io.Reader, opts Options) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read cue sheet: %w", err)
	}
	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// ParseFile reads and parses the cue sheet at path.
func ParseFile(path string, opts Options) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue sheet: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Decode converts raw bytes in the named encoding to a UTF-8 string.
func Decode(data []byte, name string) (string, error) {
	switch NormalizeEncoding(name) {
	case EncodingAuto:
		switch {
		case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
			return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)
		case bytes.HasPrefix(data, bomUTF8):
			return string(data[len(bomUTF8):]), nil
		case utf8.Valid(data):
			return string(data), nil
		default:
			return decodeWith(charmap.Windows1252, data)
		}
	case EncodingUTF8:
		return string(bytes.TrimPrefix(data, bomUTF8)), nil
	case EncodingUTF16:
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252, data)
	case EncodingLatin1:
		return decodeWith(charmap.ISO8859_1, data)
	default:
		return "", fmt.Errorf("unsupported cue sheet encoding %q", name)
	}
}

// NormalizeEncoding maps common spellings onto the canonical encoding names.
// Unknown names are returned lowercased.
func NormalizeEncoding(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", EncodingAuto:
		return EncodingAuto
	case "utf8", EncodingUTF8:
		return EncodingUTF8
	case "utf16", EncodingUTF16, "utf-16le":
		return EncodingUTF16
	case "cp1252", "windows1252", EncodingWindows1252:
		return EncodingWindows1252
	case "latin1", "latin-1", "iso8859-1", EncodingLatin1:
		return EncodingLatin1
	default:
		return n
	}
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode cue sheet: %w", err)
	}
	return string(out), nil
}
