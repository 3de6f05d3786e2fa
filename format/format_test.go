package format

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
)

var describeTestCases = map[string]struct {
	Format     core1_0.Format
	Class      Class
	BlockSize  int
	BlockWidth int
	Compressed bool
}{
	"RGBA8": {
		Format:     core1_0.FormatR8G8B8A8UnsignedNormalized,
		Class:      Class32Bits,
		BlockSize:  4,
		BlockWidth: 1,
	},
	"A1R5G5B5 Packed": {
		Format:     core1_0.FormatA1R5G5B5UnsignedNormalizedPacked,
		Class:      Class16Bits,
		BlockSize:  2,
		BlockWidth: 1,
	},
	"A8B8G8R8 Packed": {
		Format:     core1_0.FormatA8B8G8R8UnsignedIntPacked,
		Class:      Class32Bits,
		BlockSize:  4,
		BlockWidth: 1,
	},
	"RGB32 Float": {
		Format:     core1_0.Format(106),
		Class:      Class96Bits,
		BlockSize:  12,
		BlockWidth: 1,
	},
	"BC1": {
		Format:     core1_0.Format(131),
		Class:      Class64BitBlock,
		BlockSize:  8,
		BlockWidth: 4,
		Compressed: true,
	},
	"BC7": {
		Format:     core1_0.Format(146),
		Class:      Class128BitBlock,
		BlockSize:  16,
		BlockWidth: 4,
		Compressed: true,
	},
	"D24S8": {
		Format:     core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
		Class:      ClassD24S8,
		BlockSize:  4,
		BlockWidth: 1,
	},
	"S8": {
		Format:     S8,
		Class:      ClassS8,
		BlockSize:  1,
		BlockWidth: 1,
	},
}

func TestDescribe(t *testing.T) {
	for testName, testCase := range describeTestCases {
		t.Run(testName, func(t *testing.T) {
			info, ok := Describe(testCase.Format)
			require.True(t, ok)
			require.Equal(t, testCase.Class, info.Class)
			require.Equal(t, testCase.BlockSize, info.BlockSize)
			require.Equal(t, testCase.BlockWidth, info.BlockWidth)
			require.Equal(t, testCase.Compressed, info.Compressed())
			require.Equal(t, testCase.Class, ClassOf(testCase.Format))
		})
	}
}

func TestDescribeUnknown(t *testing.T) {
	_, ok := Describe(core1_0.FormatUndefined)
	require.False(t, ok)
	require.Equal(t, ClassUnknown, ClassOf(core1_0.FormatUndefined))

	// ASTC is not laid out by this package
	_, ok = Describe(core1_0.Format(157))
	require.False(t, ok)
}

func TestDepthStencilPredicates(t *testing.T) {
	require.True(t, IsDepthStencil(core1_0.FormatD24UnsignedNormalizedS8UnsignedInt))
	require.True(t, IsDepthStencil(core1_0.FormatD32SignedFloatS8UnsignedInt))
	require.False(t, IsDepthStencil(core1_0.FormatD32SignedFloat))
	require.False(t, IsDepthStencil(S8))

	require.True(t, HasDepth(core1_0.FormatD16UnsignedNormalized))
	require.False(t, HasStencil(core1_0.FormatD16UnsignedNormalized))
	require.True(t, HasStencil(S8))
	require.False(t, HasDepth(core1_0.FormatR8G8B8A8UnsignedNormalized))
}

func TestClassString(t *testing.T) {
	require.Equal(t, "ClassLinear", ClassLinear.String())
	require.Equal(t, "ClassD32S8", ClassD32S8.String())
	require.Equal(t, "unknown Class", Class(999).String())
}
