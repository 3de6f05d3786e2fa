package surface

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/surface/layout"
)

func TestFastClearDefaults(t *testing.T) {
	device := newTestDevice(t, layout.ProviderOptions{}, CreateOptions{})

	image, _, err := device.CreateImage(colorImageInfo(256, 256, core1_0.ImageUsageColorAttachment))
	require.NoError(t, err)

	require.Equal(t, [4]float32{}, image.FastClearColor())
	require.Equal(t, float32(0), image.FastClearDepth())
}

func TestFastClearValuesAreIndependent(t *testing.T) {
	device := newTestDevice(t, layout.ProviderOptions{}, CreateOptions{})

	image, _, err := device.CreateImage(colorImageInfo(256, 256, core1_0.ImageUsageColorAttachment))
	require.NoError(t, err)
	size := image.Size()
	regions := image.Regions()

	image.SetFastClearColor([4]float32{0.25, 0.5, 0.75, 1})
	require.Equal(t, [4]float32{0.25, 0.5, 0.75, 1}, image.FastClearColor())
	require.Equal(t, float32(0), image.FastClearDepth())

	image.SetFastClearDepth(1)
	require.Equal(t, float32(1), image.FastClearDepth())
	require.Equal(t, [4]float32{0.25, 0.5, 0.75, 1}, image.FastClearColor())

	image.SetFastClearColor([4]float32{})
	require.Equal(t, float32(1), image.FastClearDepth())

	require.Equal(t, size, image.Size())
	require.Equal(t, regions, image.Regions())
}
