package msh

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderTokens(t *testing.T) {
	r := newReader(strings.NewReader("  $Nodes\r\n\t12 -3 4.5e-1\v\f\"a \\\"b\\\"\" last"))

	tok, err := r.token()
	require.NoError(t, err)
	assert.Equal(t, "$Nodes", tok)

	n, err := r.readCount("count")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	i, err := r.readInt("int")
	require.NoError(t, err)
	assert.Equal(t, -3, i)

	x, err := r.readFloat("float")
	require.NoError(t, err)
	assert.Equal(t, 0.45, x)

	s, err := r.readQuoted("name")
	require.NoError(t, err)
	assert.Equal(t, `a "b"`, s)

	s, err = r.readQuoted("name")
	require.NoError(t, err)
	assert.Equal(t, "last", s)

	_, err = r.token()
	assert.Equal(t, io.EOF, err)
}

func TestReaderErrorsCarrySection(t *testing.T) {
	r := newReader(strings.NewReader("x"))
	r.section = sectionElements

	_, err := r.readUint("element tag")
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, InvalidFormat, e.Kind)
	assert.Equal(t, sectionElements, e.Section)
	assert.Equal(t, `invalid format in $Elements: invalid element tag "x"`, e.Error())

	_, err = r.readFloat("coordinate")
	assert.Contains(t, err.Error(), "unexpected end of file reading coordinate")
}

func TestReaderUnterminatedQuote(t *testing.T) {
	r := newReader(strings.NewReader(`"never closed`))
	_, err := r.readQuoted("name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestSkipLayoutIsBounded(t *testing.T) {
	r := newReader(strings.NewReader("\n\n\tX"))
	require.NoError(t, r.skipLayout(1))
	c, err := r.br.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), c)

	require.NoError(t, r.skipLayout(-1))
	c, err = r.br.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('X'), c)

	require.NoError(t, r.skipLayout(-1))
}

func TestReadSizeCountRange(t *testing.T) {
	var f binaryFile
	f.values(uint64(math.MaxUint64))
	r := newReader(&f)
	_, err := r.readSizeCount("number of nodes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadChunkedBinary(t *testing.T) {
	want := make([]float64, binaryChunk*2+3)
	for i := range want {
		want[i] = float64(i) / 3
	}
	var f binaryFile
	f.values(want)

	got, err := newReader(&f).readFloat64s("values", len(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriterFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := newWriter(&buf)
	w.floatRow([]float64{0, 1, -0.5, 0.1, 1e-7, 1.0 / 3, math.MaxFloat64})
	w.uintRow([]uint64{0, 42, math.MaxUint64})
	w.quoted(`say "hi" \o/`)
	w.line("")
	require.NoError(t, w.flush())

	assert.Equal(t,
		"0 1 -0.5 0.1 1e-07 0.3333333333333333 1.7976931348623157e+308\n"+
			"0 42 18446744073709551615\n"+
			`"say \"hi\" \\o/"`+"\n",
		buf.String())
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriterErrorSticks(t *testing.T) {
	fw := &failingWriter{}
	w := newWriter(fw)
	w.line(strings.Repeat("x", 1<<17))
	w.line("more")
	err := w.flush()
	require.Error(t, err)
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, 1, fw.calls)
}
