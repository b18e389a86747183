package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  New(ErrorTypeInvalidItem, "item %d has no name", 3),
			want: "invalid_item error: item 3 has no name",
		},
		{
			name: "with status",
			err:  APIStatus(403, "http://h/x"),
			want: "api error (code 403): unexpected status from http://h/x",
		},
		{
			name: "with cause",
			err:  Wrap(ErrorTypeFilesystem, os.ErrPermission, "write %s", "a.png"),
			want: "filesystem error: write a.png: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	base := Wrap(ErrorTypeMalformedResponse, stderrors.New("eof"), "decode page")
	wrapped := fmt.Errorf("fetch collection: %w", base)

	assert.True(t, IsType(wrapped, ErrorTypeMalformedResponse))
	assert.False(t, IsType(wrapped, ErrorTypeNetwork))
	assert.Equal(t, ErrorTypeMalformedResponse, TypeOf(wrapped))
	assert.False(t, IsType(nil, ErrorTypeNetwork))
	assert.Equal(t, ErrorType(""), TypeOf(stderrors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	err := Wrap(ErrorTypeFilesystem, os.ErrNotExist, "stat")
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
}
