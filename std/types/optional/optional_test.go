package optional_test

import (
	"testing"

	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	option := optional.Some(42)
	require.True(t, option.IsSet())
	val, ok := option.Get()
	require.Equal(t, 42, val)
	require.True(t, ok)
	require.Equal(t, 42, option.Unwrap())
	require.Equal(t, 42, option.GetOr(5))

	option.Unset()
	require.False(t, option.IsSet())
	val, ok = option.Get()
	require.Equal(t, 0, val)
	require.False(t, ok)
	require.Panics(t, func() { option.Unwrap() })
	require.Equal(t, 5, option.GetOr(5))

	var zero optional.Optional[string]
	require.False(t, zero.IsSet())
	require.Equal(t, zero, optional.None[string]())
}

func TestCastInt(t *testing.T) {
	lifetime := optional.Some[uint64](4000)
	require.Equal(t, optional.Some[int64](4000), optional.CastInt[uint64, int64](lifetime))
	require.False(t, optional.CastInt[uint64, int64](optional.None[uint64]()).IsSet())
}
