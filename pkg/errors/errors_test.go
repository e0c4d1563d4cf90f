package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("distro", "ubuntu")
	assert.Equal(t, "distro with ID ubuntu not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, stderrors.Is(err, ErrNotFound))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "name", Message: "must not be empty"}
	assert.Equal(t, "validation failed for field name: must not be empty", err.Error())
	assert.True(t, IsValidationError(err))
}

func TestWrapParse(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := WrapParse("json", "dists.json", cause)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
	assert.Equal(t, "dists.json", parseErr.File)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, WrapParse("json", "dists.json", nil))
}

func TestWrapIO(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapIO("open", "/etc/secret", cause)
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Operation)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, WrapIO("open", "/etc/secret", nil))
}

func TestWrapResource(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := WrapResource("fetch", "dataset", "https://example.com", cause)
	require.Error(t, err)

	var resErr *ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "fetch", resErr.Operation)
	assert.Equal(t, "dataset", resErr.Resource)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, WrapResource("fetch", "dataset", "", nil))
}
