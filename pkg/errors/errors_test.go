package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		code    ErrorCode
		message string
	}{
		{
			name:    "InvalidConfig",
			code:    InvalidConfig,
			message: "elitism count exceeds population size",
		},
		{
			name:    "ResourceNotFound",
			code:    ResourceNotFound,
			message: "agent not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)

			customErr, ok := err.(*Error)
			require.True(t, ok, "should be a custom *Error")

			assert.Equal(t, tt.code, customErr.Code())
			assert.Equal(t, tt.message, customErr.Error())
			assert.Nil(t, customErr.Unwrap())
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(InvalidInput, "top count %d is negative", -3)
	require.Error(t, err)
	assert.Equal(t, "top count -3 is negative", err.Error())
}

func TestWrapError(t *testing.T) {
	original := stderrors.New("disk full")

	err := Wrap(original, StorageFailed, "recording generation stats")
	require.Error(t, err)

	var customErr *Error
	require.True(t, stderrors.As(err, &customErr))
	assert.Equal(t, StorageFailed, customErr.Code())
	assert.Equal(t, "recording generation stats: disk full", err.Error())
	assert.Equal(t, original, stderrors.Unwrap(err))

	assert.Nil(t, Wrap(nil, StorageFailed, "ignored"))
}

func TestWithFields(t *testing.T) {
	err := New(ResourceNotFound, "agent not found")
	err = WithFields(err, Fields{"agent_id": "a-1", "generation": 4})

	var customErr *Error
	require.True(t, stderrors.As(err, &customErr))
	assert.Equal(t, ResourceNotFound, customErr.Code())

	fields := customErr.Fields()
	assert.Equal(t, "a-1", fields["agent_id"])
	assert.Equal(t, 4, fields["generation"])
	assert.Contains(t, err.Error(), "agent_id=a-1")

	// Merging keeps existing fields and adds new ones.
	err = WithFields(err, Fields{"operation": "record_performance"})
	require.True(t, stderrors.As(err, &customErr))
	assert.Len(t, customErr.Fields(), 3)

	assert.Nil(t, WithFields(nil, Fields{"ignored": true}))
}

func TestWithFieldsPlainError(t *testing.T) {
	err := WithFields(stderrors.New("plain"), Fields{"k": "v"})

	var customErr *Error
	require.True(t, stderrors.As(err, &customErr))
	assert.Equal(t, Unknown, customErr.Code())
	assert.Equal(t, "v", customErr.Fields()["k"])
}

func TestErrorIs(t *testing.T) {
	err := New(InvalidConfig, "bad config")

	assert.True(t, stderrors.Is(err, New(InvalidConfig, "other message")))
	assert.False(t, stderrors.Is(err, New(StorageFailed, "bad config")))
	assert.False(t, stderrors.Is(err, stderrors.New("bad config")))
}

func TestFieldsCopy(t *testing.T) {
	err := WithFields(New(ExportFailed, "export"), Fields{"path": "out.parquet"})

	var customErr *Error
	require.True(t, stderrors.As(err, &customErr))

	fields := customErr.Fields()
	fields["path"] = "mutated"
	assert.Equal(t, "out.parquet", customErr.Fields()["path"])
}
