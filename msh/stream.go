package msh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// Binary payloads are raw native-endian values; the MeshFormat sentinel is
// the only endianness check.
var byteOrder = binary.NativeEndian

// maxPrealloc bounds up-front allocations driven by counts read from the
// file, so a corrupt count fails on the truncated read instead of on make.
const maxPrealloc = 1 << 20

// binaryChunk is the number of values read per binary.Read call
const binaryChunk = 1 << 14

func capHint(n int) int {
	if n < 0 {
		return 0
	}
	return min(n, maxPrealloc)
}

func isLayout(c byte) bool {
	return c == '\n' || c == '\r' || c == ' ' || c == '\t'
}

func isSpace(c byte) bool {
	return isLayout(c) || c == '\v' || c == '\f'
}

// reader tokenizes the text framing and decodes raw binary payloads from
// the same buffered stream. section names the section being decoded and is
// attached to every error.
type reader struct {
	br      *bufio.Reader
	section string
	tok     []byte
}

func newReader(r io.Reader) *reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 1<<16)
	}
	return &reader{br: br}
}

func (r *reader) truncated(what string, err error) *Error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return invalidFormat(r.section, "unexpected end of file reading %s", what)
	}
	return &Error{Kind: InvalidFormat, Section: r.section, Msg: "reading " + what, Err: err}
}

// skipLayout consumes up to max newline, carriage return, space or tab
// characters; max < 0 means no limit. Reaching EOF is not an error.
func (r *reader) skipLayout(max int) error {
	for n := 0; max < 0 || n < max; n++ {
		c, err := r.br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return r.truncated("layout", err)
		}
		if !isLayout(c) {
			return r.br.UnreadByte()
		}
	}
	return nil
}

func (r *reader) skipSpace() error {
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(c) {
			return r.br.UnreadByte()
		}
	}
}

// token returns the next whitespace-delimited token, leaving the delimiter
// unread. It returns io.EOF when the stream holds no further token.
func (r *reader) token() (string, error) {
	if err := r.skipSpace(); err != nil {
		return "", err
	}
	r.tok = r.tok[:0]
	for {
		c, err := r.br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(c) {
			if err := r.br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		r.tok = append(r.tok, c)
	}
	if len(r.tok) == 0 {
		return "", io.EOF
	}
	return string(r.tok), nil
}

func (r *reader) next(what string) (string, error) {
	tok, err := r.token()
	if err != nil {
		return "", r.truncated(what, err)
	}
	return tok, nil
}

func (r *reader) readInt(what string) (int, error) {
	tok, err := r.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, invalidFormat(r.section, "invalid %s %q", what, tok)
	}
	return v, nil
}

// readCount reads a non-negative integer
func (r *reader) readCount(what string) (int, error) {
	v, err := r.readInt(what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, invalidFormat(r.section, "negative %s %d", what, v)
	}
	return v, nil
}

func (r *reader) readUint(what string) (uint64, error) {
	tok, err := r.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, invalidFormat(r.section, "invalid %s %q", what, tok)
	}
	return v, nil
}

func (r *reader) readFloat(what string) (float64, error) {
	tok, err := r.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, invalidFormat(r.section, "invalid %s %q", what, tok)
	}
	return v, nil
}

func (r *reader) readFloats(what string, dst []float64) error {
	for i := range dst {
		v, err := r.readFloat(what)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// readQuoted reads a double-quoted string with backslash escapes, or a bare
// token when the next field does not start with a quote.
func (r *reader) readQuoted(what string) (string, error) {
	if err := r.skipSpace(); err != nil {
		return "", r.truncated(what, err)
	}
	c, err := r.br.ReadByte()
	if err != nil {
		return "", r.truncated(what, err)
	}
	if c != '"' {
		if err := r.br.UnreadByte(); err != nil {
			return "", r.truncated(what, err)
		}
		return r.next(what)
	}
	var s []byte
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			return "", r.truncated(what, err)
		}
		switch c {
		case '\\':
			if c, err = r.br.ReadByte(); err != nil {
				return "", r.truncated(what, err)
			}
		case '"':
			return string(s), nil
		}
		s = append(s, c)
	}
}

func (r *reader) readBinary(what string, data interface{}) error {
	if err := binary.Read(r.br, byteOrder, data); err != nil {
		return r.truncated(what, err)
	}
	return nil
}

func (r *reader) readInt32(what string) (int32, error) {
	var v int32
	err := r.readBinary(what, &v)
	return v, err
}

// readSize reads one size_t wide value
func (r *reader) readSize(what string) (uint64, error) {
	var v uint64
	err := r.readBinary(what, &v)
	return v, err
}

func (r *reader) readSizeCount(what string) (int, error) {
	v, err := r.readSize(what)
	if err != nil {
		return 0, err
	}
	if v > uint64(maxInt) {
		return 0, invalidFormat(r.section, "%s %d out of range", what, v)
	}
	return int(v), nil
}

func (r *reader) readInt32Count(what string) (int, error) {
	v, err := r.readInt32(what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, invalidFormat(r.section, "negative %s %d", what, v)
	}
	return int(v), nil
}

func (r *reader) readSizes(what string, n int) ([]uint64, error) {
	out := make([]uint64, 0, capHint(n))
	for len(out) < n {
		chunk := make([]uint64, min(binaryChunk, n-len(out)))
		if err := r.readBinary(what, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func (r *reader) readInt32s(what string, n int) ([]int32, error) {
	out := make([]int32, 0, capHint(n))
	for len(out) < n {
		chunk := make([]int32, min(binaryChunk, n-len(out)))
		if err := r.readBinary(what, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func (r *reader) readFloat64s(what string, n int) ([]float64, error) {
	out := make([]float64, 0, capHint(n))
	for len(out) < n {
		chunk := make([]float64, min(binaryChunk, n-len(out)))
		if err := r.readBinary(what, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// forwardTo discards tokens until flag has been consumed or the stream ends
func (r *reader) forwardTo(flag string) error {
	for {
		tok, err := r.token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return r.truncated(flag, err)
		}
		if tok == flag {
			return nil
		}
	}
}

const maxInt = int(^uint(0) >> 1)

// writer emits text framing and binary payloads; the first error sticks
// and every later call becomes a no-op.
type writer struct {
	bw  *bufio.Writer
	err error
	buf []byte
}

func newWriter(w io.Writer) *writer {
	return &writer{bw: bufio.NewWriterSize(w, 1<<16)}
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.bw, format, args...)
}

func (w *writer) write(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.bw.Write(b)
}

func (w *writer) line(s string) {
	if w.err != nil {
		return
	}
	if _, w.err = w.bw.WriteString(s); w.err == nil {
		w.err = w.bw.WriteByte('\n')
	}
}

func (w *writer) quoted(s string) {
	b := append(w.buf[:0], '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	w.buf = append(b, '"')
	w.write(w.buf)
}

func appendFloat(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, v, 'g', -1, 64)
}

// floatRow writes values separated by spaces and ends the line
func (w *writer) floatRow(vals []float64) {
	b := w.buf[:0]
	for i, v := range vals {
		if i > 0 {
			b = append(b, ' ')
		}
		b = appendFloat(b, v)
	}
	w.buf = append(b, '\n')
	w.write(w.buf)
}

// uintRow writes values separated by spaces and ends the line
func (w *writer) uintRow(vals []uint64) {
	b := w.buf[:0]
	for i, v := range vals {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendUint(b, v, 10)
	}
	w.buf = append(b, '\n')
	w.write(w.buf)
}

func (w *writer) binary(data interface{}) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.bw, byteOrder, data)
}

func (w *writer) int32(v int) { w.binary(int32(v)) }

func (w *writer) size(v uint64) { w.binary(v) }

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.bw.Flush()
}
