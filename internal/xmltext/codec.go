package xmltext

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errUnsupportedEncoding = errors.New("xmltext: unsupported encoding")

// latinCharsets are resolved without the IANA index. They cover what
// hand-edited preference files are realistically saved in.
var latinCharsets = map[string]*charmap.Charmap{
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// source wraps the raw input, strips a UTF-8 byte order mark and transcodes
// UTF-16 input (detected from its byte order mark) to UTF-8.
type source struct {
	r       io.Reader
	utf16In bool  // input was UTF-16 and is already transcoded
	err     error // last charset lookup failure
}

func newSource(r io.Reader) (*source, error) {
	br := bufio.NewReaderSize(r, ReaderBufferSize)
	head, err := br.Peek(bomPeekSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, UTF8BOM):
		if _, err := br.Discard(len(UTF8BOM)); err != nil {
			return nil, err
		}
		return &source{r: br}, nil
	case bytes.HasPrefix(head, UTF16LEBOM), bytes.HasPrefix(head, UTF16BEBOM):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		return &source{r: transform.NewReader(br, dec), utf16In: true}, nil
	default:
		return &source{r: br}, nil
	}
}

// charsetReader is installed as xml.Decoder.CharsetReader. It is consulted
// only when the XML declaration names an encoding other than UTF-8.
//
// encoding/xml flattens the returned error into text, so the failure is
// also kept on the source for the scanner to classify.
func (s *source) charsetReader(label string, input io.Reader) (io.Reader, error) {
	if isUTF16Label(label) {
		if !s.utf16In {
			s.err = fmt.Errorf("%w: %s declared without byte order mark", errUnsupportedEncoding, label)
			return nil, s.err
		}
		return input, nil
	}

	enc, err := lookupEncoding(label)
	if err != nil {
		s.err = err
		return nil, err
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func lookupEncoding(label string) (encoding.Encoding, error) {
	if cm, ok := latinCharsets[strings.ToLower(label)]; ok {
		return cm, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", errUnsupportedEncoding, label)
	}
	return enc, nil
}

func isUTF16Label(label string) bool {
	switch strings.ToUpper(label) {
	case EncodingUTF16, EncodingUTF16LE, EncodingUTF16BE:
		return true
	}
	return false
}
