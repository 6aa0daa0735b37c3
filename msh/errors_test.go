package msh

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindMatching(t *testing.T) {
	err := fmt.Errorf("loading mesh: %w", invalidFormat(sectionNodes, "bad count"))

	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.False(t, errors.Is(err, ErrUnsupportedFeature))
	assert.False(t, errors.Is(err, ErrCorruptData))
	assert.Equal(t, InvalidFormat, KindOf(err))
	assert.Equal(t, "loading mesh: invalid format in $Nodes: bad count", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	err := &Error{Kind: InvalidFormat, Msg: "reading tag", Err: io.ErrClosedPipe}
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
	assert.Equal(t, "invalid format: reading tag: io: read/write on closed pipe", err.Error())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "unsupported feature", UnsupportedFeature.String())
	assert.Equal(t, "corrupt data", CorruptData.String())
	assert.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
	assert.Equal(t, ErrorKind(0), KindOf(io.EOF))
	assert.Equal(t, ErrorKind(0), KindOf(nil))
}
