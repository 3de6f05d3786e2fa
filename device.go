package surface

import (
	"context"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/surface/internal/utils"
	"github.com/vkngwrapper/surface/layout"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slog"
)

// DeviceCreateFlags indicate specific device behaviors to activate or deactivate
type DeviceCreateFlags int32

var deviceCreateFlagsMapping = common.NewFlagStringMapping[DeviceCreateFlags]()

func (f DeviceCreateFlags) Register(str string) {
	deviceCreateFlagsMapping.Register(f, str)
}
func (f DeviceCreateFlags) String() string {
	return deviceCreateFlagsMapping.FlagsToString(f)
}

const (
	// DeviceCreateExternallySynchronized ensures that the device's mutexes are not used. Image
	// creation, destruction, and lookup must then be serialized by the caller.
	DeviceCreateExternallySynchronized DeviceCreateFlags = 1 << iota
)

func init() {
	DeviceCreateExternallySynchronized.Register("DeviceCreateExternallySynchronized")
}

// SystemAllocType is the scope of a host allocation made by the device
type SystemAllocType int32

const (
	// SystemAllocAPIObject allocations back objects returned to the caller
	SystemAllocAPIObject SystemAllocType = iota
	// SystemAllocInternal allocations back state the device keeps for itself
	SystemAllocInternal
)

var systemAllocTypeMapping = map[SystemAllocType]string{
	SystemAllocAPIObject: "SystemAllocAPIObject",
	SystemAllocInternal:  "SystemAllocInternal",
}

func (t SystemAllocType) String() string {
	str, ok := systemAllocTypeMapping[t]
	if !ok {
		return "unknown SystemAllocType"
	}

	return str
}

// AllocationCallbacks lets the caller account for, and refuse, host allocations made by the
// device. Every successful Allocate is matched by exactly one Free of the same size and type.
type AllocationCallbacks struct {
	// Allocate is called before the device allocates host memory. Returning an error fails
	// the operation with VKErrorOutOfHostMemory.
	Allocate func(size int, allocType SystemAllocType) error
	Free     func(size int, allocType SystemAllocType)
}

// DebugCallback receives the messages the device reports about invalid or suspect usage
type DebugCallback func(
	severity ext_debug_utils.DebugUtilsMessageSeverityFlags,
	messageType ext_debug_utils.DebugUtilsMessageTypeFlags,
	data *ext_debug_utils.DebugUtilsMessengerCallbackData,
)

// CreateOptions contains optional settings when creating a device
type CreateOptions struct {
	// Flags indicates specific device behaviors to activate or deactivate
	Flags DeviceCreateFlags

	// AllocationCallbacks is an optional set of callbacks that will be executed whenever
	// the device allocates or frees host memory
	AllocationCallbacks *AllocationCallbacks

	// DebugCallback is an optional callback that receives every debug message the device
	// logs, in addition to the logger
	DebugCallback DebugCallback
}

var (
	imageObjectSize = int(unsafe.Sizeof(Image{}))
	stencilSlotSize = int(unsafe.Sizeof(layout.Layout{}))
)

// Device creates images and tracks the live ones by handle
type Device struct {
	object.Base

	logger   *slog.Logger
	provider layout.Provider

	createFlags         DeviceCreateFlags
	allocationCallbacks *AllocationCallbacks
	debugCallback       DebugCallback

	imagesMutex utils.OptionalRWMutex
	images      *swiss.Map[object.Handle, *Image]
}

// New creates a new Device
//
// logger - The logger all device activity is reported to
//
// provider - The layout provider used to lay out every surface of every image
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, provider layout.Provider, options CreateOptions) (*Device, error) {
	if logger == nil {
		return nil, errors.New("surface.New received a nil logger")
	}
	if provider == nil {
		return nil, errors.New("surface.New received a nil layout provider")
	}

	device := &Device{
		logger:   logger,
		provider: provider,

		createFlags:         options.Flags,
		allocationCallbacks: options.AllocationCallbacks,
		debugCallback:       options.DebugCallback,

		imagesMutex: utils.OptionalRWMutex{
			UseMutex: options.Flags&DeviceCreateExternallySynchronized == 0,
		},
		images: swiss.NewMap[object.Handle, *Image](16),
	}
	device.Base.Init(object.TypeDevice, options)

	logger.Debug("surface::New", slog.String("Flags", options.Flags.String()))

	return device, nil
}

// Log reports a debug message to the logger and, when one was provided, the DebugCallback
func (d *Device) Log(
	severity ext_debug_utils.DebugUtilsMessageSeverityFlags,
	messageType ext_debug_utils.DebugUtilsMessageTypeFlags,
	message string,
) {
	level := slog.LevelDebug
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		level = slog.LevelError
	case severity&ext_debug_utils.SeverityWarning != 0:
		level = slog.LevelWarn
	}

	d.logger.LogAttrs(context.Background(), level, message,
		slog.String("Type", messageType.String()),
		slog.Uint64("Device", uint64(d.Handle())),
	)

	if d.debugCallback != nil {
		d.debugCallback(severity, messageType, &ext_debug_utils.DebugUtilsMessengerCallbackData{
			Message: message,
		})
	}
}

func (d *Device) allocate(size int, allocType SystemAllocType) error {
	if d.allocationCallbacks == nil || d.allocationCallbacks.Allocate == nil {
		return nil
	}

	err := d.allocationCallbacks.Allocate(size, allocType)
	if err != nil {
		return errors.WithSecondaryError(
			errors.Wrapf(core1_0.VKErrorOutOfHostMemory.ToError(), "could not allocate %d bytes for %s", size, allocType),
			err,
		)
	}

	return nil
}

func (d *Device) free(size int, allocType SystemAllocType) {
	if d.allocationCallbacks == nil || d.allocationCallbacks.Free == nil {
		return
	}

	d.allocationCallbacks.Free(size, allocType)
}

func (d *Device) registerImage(image *Image) {
	d.imagesMutex.Lock()
	defer d.imagesMutex.Unlock()

	d.images.Put(image.Handle(), image)
}

func (d *Device) unregisterImage(image *Image) {
	d.imagesMutex.Lock()
	defer d.imagesMutex.Unlock()

	d.images.Delete(image.Handle())
}

// Image returns the live image with the provided handle
func (d *Device) Image(handle object.Handle) (*Image, bool) {
	d.imagesMutex.RLock()
	defer d.imagesMutex.RUnlock()

	return d.images.Get(handle)
}

// ImageCount returns the number of live images created by this device
func (d *Device) ImageCount() int {
	d.imagesMutex.RLock()
	defer d.imagesMutex.RUnlock()

	return d.images.Count()
}

func (d *Device) liveImages() []*Image {
	d.imagesMutex.RLock()
	defer d.imagesMutex.RUnlock()

	images := make([]*Image, 0, d.images.Count())
	d.images.Iter(func(_ object.Handle, image *Image) bool {
		images = append(images, image)
		return false
	})

	return images
}

// PeerImageOpenInfo identifies an image exported by another device
type PeerImageOpenInfo struct {
	OriginalImage object.Handle
}

// OpenPeerImage would open an image shared by another device. Peer sharing is not supported,
// so this always fails with VKErrorUnavailable.
func (d *Device) OpenPeerImage(info PeerImageOpenInfo) (*Image, Memory, common.VkResult, error) {
	d.logger.Debug("Device::OpenPeerImage")

	return nil, nil, VKErrorUnavailable, errors.Wrapf(VKErrorUnavailable.ToError(),
		"image %d cannot be opened: peer images are not supported", info.OriginalImage)
}

// Destroy destroys every image that is still alive. The device must not be used afterward.
func (d *Device) Destroy() error {
	d.logger.Debug("Device::Destroy")

	var err error
	for _, image := range d.liveImages() {
		err = errors.CombineErrors(err, image.Destroy())
	}

	d.Base.Destroy()
	return err
}
