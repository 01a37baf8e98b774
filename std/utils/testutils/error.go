package testutils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testT *testing.T

func SetT(t *testing.T) {
	testT = t
}

func NoErr[T any](v T, err error) T {
	require.NoError(testT, err)
	return v
}

func NoErr2[T, U any](v T, u U, err error) (T, U) {
	require.NoError(testT, err)
	return v, u
}

func Err[T any](_ T, err error) error {
	require.Error(testT, err)
	return err
}

// Hex decodes a hex string, ignoring whitespace. It fails the test on bad input.
func Hex(s string) []byte {
	s = strings.Join(strings.Fields(s), "")
	return NoErr(hex.DecodeString(s))
}
