package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParsingError("bad timestamp", stderrors.New("cannot parse")),
			want: "[PARSING] bad timestamp: cannot parse",
		},
		{
			name: "without cause",
			err:  NewValidationError("missing column"),
			want: "[VALIDATION] missing column",
		},
		{
			name: "not found",
			err:  NewNotFoundError("input file"),
			want: "[NOT_FOUND] input file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewStorageError("write report", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewConfigError("invalid top items", nil).
		WithContext("top_items", -3).
		WithContext("source", "env")

	assert.Equal(t, -3, err.Context["top_items"])
	assert.Equal(t, "env", err.Context["source"])
}
