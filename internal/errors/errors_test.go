package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := SchemaError("missing column sy_dist")
	wrapped := Wrap(base, "load archive")

	assert.Equal(t, CodeSchemaError, GetCode(wrapped))
	assert.Equal(t, "load archive: missing column sy_dist", wrapped.Error())
	assert.True(t, IsAppError(wrapped))
}

func TestWrap_ForeignCauseIsInternal(t *testing.T) {
	wrapped := Wrapf(fs.ErrNotExist, "open %s", "x.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, fs.ErrNotExist))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
	assert.Nil(t, WithCode(CodeReadError, nil))
}

func TestReadError_UnwrapsCause(t *testing.T) {
	err := ReadError("planets.csv", fs.ErrNotExist)

	assert.Equal(t, CodeReadError, err.Code)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "planets.csv")
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeWriteError, stderrors.New("disk full"))
	assert.Equal(t, CodeWriteError, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
