package errors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	assert.NoError(t, WithContext(nil, "ignored"))

	err := WithContext(WithContext(FileNotFound{Path: "/music"}, "open"), "scan")
	assert.Equal(t, `scan: open: "/music" does not exist`, err.Error())
	assert.Equal(t, FileNotFound{Path: "/music"}, RootCause(err))

	var dneErr FileNotFound
	assert.True(t, As(err, &dneErr))
	assert.Equal(t, "/music", dneErr.Path)
}

func TestRootCauseStopsAtTypedErrors(t *testing.T) {
	accessErr := FilesystemAccessError{Op: "list", Path: "/music", Err: os.ErrPermission}
	err := WithContext(accessErr, "scan source")

	assert.Equal(t, accessErr, RootCause(err))
	assert.True(t, Is(err, os.ErrPermission))
}

func TestGetPrintableMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		exp  string
	}{
		{
			name: "Nil",
			err:  nil,
			exp:  "",
		},
		{
			name: "Plain",
			err:  WithContext(New("boom %d", 1), "apply"),
			exp:  "apply: boom 1",
		},
		{
			name: "Friendly",
			err:  WithContext(NewFriendlyError("Please set %s.", "FROM_DIR"), "load config"),
			exp:  "Please set FROM_DIR.",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, GetPrintableMessage(test.err))
		})
	}
}
