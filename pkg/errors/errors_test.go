package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/delta/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestIndexError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IndexError{Op: "replace", Index: 7, Len: 3}
		assert.Equal(t, "replace: index 7 out of range for length 3", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrOutOfRange))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewIndexError("insert", 5, 4)
		assert.True(t, pkgerrors.IsOutOfRange(err))
		assert.False(t, pkgerrors.IsUnknownKey(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("apply failed"), pkgerrors.NewIndexError("swap", 9, 2))
		assert.True(t, pkgerrors.IsOutOfRange(wrapped))
	})
}

func TestKeyError(t *testing.T) {
	err := pkgerrors.NewKeyError("change", "alpha")
	assert.Equal(t, "change: key alpha not present", err.Error())
	assert.True(t, pkgerrors.IsUnknownKey(err))
	assert.False(t, pkgerrors.IsOutOfRange(err))
}

func TestOpError(t *testing.T) {
	err := pkgerrors.NewOpError("ordered", 9)
	assert.Equal(t, "unknown ordered operation 9", err.Error())
	assert.True(t, pkgerrors.IsUnknownOp(err))
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("field", "items")
	assert.Equal(t, "field with ID items not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "algorithm",
			Message: "unknown value",
		}
		assert.Equal(t, "validation failed for field algorithm: unknown value", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("strategy", nil))
		err := pkgerrors.WrapValidation("strategy", errors.New("empty"))
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "strategy")
	})
}

func TestFieldError(t *testing.T) {
	base := pkgerrors.NewIndexError("delete", 4, 2)
	err := pkgerrors.WrapField("tags", 2, base)
	require.NotNil(t, err)

	var fieldErr *pkgerrors.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "tags", fieldErr.Field)
	assert.Equal(t, uint8(2), fieldErr.Tag)
	assert.True(t, pkgerrors.IsOutOfRange(err))
	assert.Nil(t, pkgerrors.WrapField("tags", 2, nil))
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("cli", "map_mode: unknown value", nil)
	assert.Contains(t, err.Error(), "cli")
	assert.Contains(t, err.Error(), "map_mode")
	assert.True(t, pkgerrors.IsValidationError(err))

	base := errors.New("bad")
	assert.Equal(t, base, pkgerrors.NewConfigError("", "x", base).Unwrap())
	assert.Equal(t, "configuration error: x", pkgerrors.NewConfigError("", "x", nil).Error())
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/base.yaml",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/base.yaml")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/patch.bin", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		err := pkgerrors.WrapIO("open", "missing.yaml", errors.New("no such file"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "missing.yaml", ioErr.Path)
		assert.Equal(t, "IO error during read: boom", pkgerrors.NewIOError("read", "", errors.New("boom")).Error())
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			File:    "patch.yaml",
			Message: "invalid indentation",
		}
		assert.Equal(t, "parse error in yaml file patch.yaml: invalid indentation", err.Error())
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "binary", Message: "unexpected EOF"}
		assert.Equal(t, "binary parse error: unexpected EOF", err.Error())
	})

	t.Run("constructor and wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		err := pkgerrors.NewParseError("json", "patch.json", "unexpected end", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())

		wrapped := pkgerrors.WrapParse("binary", "", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "binary", parseErr.Format)
		assert.Nil(t, pkgerrors.WrapParse("binary", "", nil))
	})
}
