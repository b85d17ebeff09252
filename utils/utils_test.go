package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("should not log when verbose is false", func(t *testing.T) {
		// Setup
		called := false
		log = func(a ...any) (int, error) {
			called = true
			return 0, nil
		}
		defer func() { log = fmtPrintln }()

		// Run
		Logger("some message", false)

		// Verify
		require.False(t, called)
	})

	t.Run("should log when verbose is true", func(t *testing.T) {
		// Setup
		var logged string
		log = func(a ...any) (int, error) {
			logged = a[0].(string)
			return 0, nil
		}
		defer func() { log = fmtPrintln }()

		// Run
		Logger("some message", true)

		// Verify
		require.Equal(t, "some message", logged)
	})
}
