package surface

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/surface/layout"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func newTestDevice(t *testing.T, providerOptions layout.ProviderOptions, options CreateOptions) *Device {
	provider, err := layout.NewProvider(testLogger(), providerOptions)
	require.NoError(t, err)

	device, err := New(testLogger(), provider, options)
	require.NoError(t, err)

	return device
}

type allocationKey struct {
	size      int
	allocType SystemAllocType
}

// allocationTracker records host allocations and fails the first allocation of failType
// when fail is set
type allocationTracker struct {
	allocated map[allocationKey]int
	freed     map[allocationKey]int

	fail     bool
	failType SystemAllocType
}

func newAllocationTracker() *allocationTracker {
	return &allocationTracker{
		allocated: make(map[allocationKey]int),
		freed:     make(map[allocationKey]int),
	}
}

func (a *allocationTracker) Callbacks() *AllocationCallbacks {
	return &AllocationCallbacks{
		Allocate: func(size int, allocType SystemAllocType) error {
			if a.fail && allocType == a.failType {
				return errors.Newf("refusing %d bytes", size)
			}
			a.allocated[allocationKey{size, allocType}]++
			return nil
		},
		Free: func(size int, allocType SystemAllocType) {
			a.freed[allocationKey{size, allocType}]++
		},
	}
}

func (a *allocationTracker) Count(allocType SystemAllocType) (allocated int, freed int) {
	for key, count := range a.allocated {
		if key.allocType == allocType {
			allocated += count
		}
	}
	for key, count := range a.freed {
		if key.allocType == allocType {
			freed += count
		}
	}
	return allocated, freed
}

func (a *allocationTracker) RequireBalanced(t *testing.T) {
	require.Equal(t, a.allocated, a.freed)
}

func TestNewValidation(t *testing.T) {
	provider, err := layout.NewProvider(testLogger(), layout.ProviderOptions{})
	require.NoError(t, err)

	_, err = New(nil, provider, CreateOptions{})
	require.Error(t, err)

	_, err = New(testLogger(), nil, CreateOptions{})
	require.Error(t, err)
}

func TestDeviceFlagStrings(t *testing.T) {
	require.Equal(t, "DeviceCreateExternallySynchronized", DeviceCreateExternallySynchronized.String())
	require.Equal(t, "SystemAllocInternal", SystemAllocInternal.String())
	require.Equal(t, "unknown SystemAllocType", SystemAllocType(9).String())
}

func TestDeviceLogDebugCallback(t *testing.T) {
	var severities []ext_debug_utils.DebugUtilsMessageSeverityFlags
	var messages []string

	device := newTestDevice(t, layout.ProviderOptions{}, CreateOptions{
		DebugCallback: func(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, messageType ext_debug_utils.DebugUtilsMessageTypeFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) {
			severities = append(severities, severity)
			messages = append(messages, data.Message)
		},
	})

	device.Log(ext_debug_utils.SeverityWarning, ext_debug_utils.TypePerformance, "slow path")
	device.Log(ext_debug_utils.SeverityError, ext_debug_utils.TypeGeneral, "broken")

	require.Equal(t, []ext_debug_utils.DebugUtilsMessageSeverityFlags{
		ext_debug_utils.SeverityWarning,
		ext_debug_utils.SeverityError,
	}, severities)
	require.Equal(t, []string{"slow path", "broken"}, messages)
}

func TestDeviceRegistry(t *testing.T) {
	device := newTestDevice(t, layout.ProviderOptions{}, CreateOptions{})

	first, res, err := device.CreateImage(colorImageInfo(64, 64, core1_0.ImageUsageSampled))
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)

	second, _, err := device.CreateImage(colorImageInfo(32, 32, core1_0.ImageUsageSampled))
	require.NoError(t, err)
	require.Equal(t, 2, device.ImageCount())

	found, ok := device.Image(first.Handle())
	require.True(t, ok)
	require.Same(t, first, found)

	require.NoError(t, first.Destroy())
	_, ok = device.Image(first.Handle())
	require.False(t, ok)
	require.Equal(t, 1, device.ImageCount())

	require.NoError(t, device.Destroy())
	require.True(t, second.Destroyed())
	require.Equal(t, 0, device.ImageCount())
}

func TestDeviceExternallySynchronized(t *testing.T) {
	tracker := newAllocationTracker()
	device := newTestDevice(t, layout.ProviderOptions{}, CreateOptions{
		Flags:               DeviceCreateExternallySynchronized,
		AllocationCallbacks: tracker.Callbacks(),
	})
	require.False(t, device.imagesMutex.UseMutex)

	image, _, err := device.CreateImage(colorImageInfo(64, 64, core1_0.ImageUsageSampled))
	require.NoError(t, err)
	require.NoError(t, image.Destroy())

	tracker.RequireBalanced(t)
}

func TestOpenPeerImage(t *testing.T) {
	device := newTestDevice(t, layout.ProviderOptions{}, CreateOptions{})

	image, memory, res, err := device.OpenPeerImage(PeerImageOpenInfo{OriginalImage: object.Handle(12)})
	require.Error(t, err)
	require.Equal(t, VKErrorUnavailable, res)
	require.Nil(t, image)
	require.Nil(t, memory)
}
