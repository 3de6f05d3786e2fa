package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalZeroIsAbsent(t *testing.T) {
	var opt Optional[int]
	_, ok := opt.Get()
	require.False(t, ok)
	require.False(t, opt.Present())
}

func TestOptionalTake(t *testing.T) {
	opt := Some(4096)

	value, ok := opt.Get()
	require.True(t, ok)
	require.Equal(t, 4096, value)

	value, ok = opt.Take()
	require.True(t, ok)
	require.Equal(t, 4096, value)

	value, ok = opt.Take()
	require.False(t, ok)
	require.Equal(t, 0, value)
}
