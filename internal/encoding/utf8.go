package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize is how much of the input is inspected before deciding on a decoder.
const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Charset names reported by Detect.
const (
	CharsetUTF8        = "UTF-8"
	CharsetUTF8BOM     = "UTF-8-BOM"
	CharsetUTF16LE     = "UTF-16LE"
	CharsetUTF16BE     = "UTF-16BE"
	CharsetWindows1252 = "windows-1252"
	CharsetISO88599    = "ISO-8859-9"
)

// Detect guesses the charset of a sample. BOMs win, then UTF-8 validity,
// then chardet; anything else is treated as Windows-1252, which is what
// spreadsheet exports on studio machines produce.
func Detect(sample []byte) string {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return CharsetUTF8BOM
	case bytes.HasPrefix(sample, bomUTF16LE):
		return CharsetUTF16LE
	case bytes.HasPrefix(sample, bomUTF16BE):
		return CharsetUTF16BE
	case utf8.Valid(sample):
		return CharsetUTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return CharsetWindows1252
	}

	switch result.Charset {
	case "UTF-8":
		return CharsetUTF8
	case "ISO-8859-9":
		return CharsetISO88599
	default:
		return CharsetWindows1252
	}
}

// NewUTF8Reader wraps r so that reads yield UTF-8 regardless of the source
// charset. A UTF-8 BOM is stripped.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	sample, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	charset := Detect(sample)
	if charset == CharsetUTF8BOM {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	dec := decoderFor(charset)
	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec.NewDecoder()), nil
}

// ReadAll is NewUTF8Reader followed by io.ReadAll.
func ReadAll(r io.Reader) ([]byte, error) {
	ur, err := NewUTF8Reader(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(ur)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return data, nil
}

func decoderFor(charset string) encoding.Encoding {
	switch charset {
	case CharsetUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case CharsetUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case CharsetWindows1252:
		return charmap.Windows1252
	case CharsetISO88599:
		return charmap.ISO8859_9
	default:
		return nil
	}
}
