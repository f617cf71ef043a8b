package table

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Encoding names a supported input character encoding.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingLatin1      Encoding = "latin-1"
	EncodingWindows1252 Encoding = "windows-1252"

	// EncodingAuto detects the charset from the bytes.
	EncodingAuto Encoding = "auto"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding maps common spellings to a supported Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "windows-1252", "cp1252", "win1252":
		return EncodingWindows1252, nil
	case "auto":
		return EncodingAuto, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s (use utf-8, latin-1, windows-1252, or auto)", s)
	}
}

// decodeText converts data in enc to a UTF-8 string.
func decodeText(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingUTF8, "":
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", &DecodeError{Encoding: EncodingUTF8, Offset: invalidUTF8Offset(data)}
		}
		return string(data), nil
	case EncodingLatin1:
		return decodeWith(charmap.ISO8859_1, enc, data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252, enc, data)
	case EncodingAuto:
		return decodeDetected(data)
	default:
		return "", &DecodeError{Encoding: enc, Offset: -1, Err: fmt.Errorf("unsupported encoding")}
	}
}

func decodeWith(e encoding.Encoding, name Encoding, data []byte) (string, error) {
	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Encoding: name, Offset: -1, Err: err}
	}
	return string(out), nil
}

// decodeDetected guesses the charset of data and decodes with it.
func decodeDetected(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) || utf8.Valid(data) {
		return decodeText(data, EncodingUTF8)
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", &DecodeError{Encoding: EncodingAuto, Offset: -1, Err: err}
	}

	switch strings.ToLower(result.Charset) {
	case "utf-8":
		return decodeText(data, EncodingUTF8)
	case "iso-8859-1":
		return decodeText(data, EncodingLatin1)
	case "windows-1252":
		return decodeText(data, EncodingWindows1252)
	}

	e, err := htmlindex.Get(result.Charset)
	if err != nil {
		return "", &DecodeError{Encoding: Encoding(result.Charset), Offset: -1, Err: err}
	}
	return decodeWith(e, Encoding(strings.ToLower(result.Charset)), data)
}

// invalidUTF8Offset returns the offset of the first invalid UTF-8 sequence.
func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
