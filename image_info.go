package surface

import (
	"unsafe"

	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/surface/format"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slog"
)

// MemoryTypeFlags indicates the kinds of memory an object may be bound to
type MemoryTypeFlags int32

var memoryTypeFlagsMapping = common.NewFlagStringMapping[MemoryTypeFlags]()

func (f MemoryTypeFlags) Register(str string) {
	memoryTypeFlagsMapping.Register(f, str)
}
func (f MemoryTypeFlags) String() string {
	return memoryTypeFlagsMapping.FlagsToString(f)
}

const (
	MemoryTypeBuffer MemoryTypeFlags = 1 << iota
	MemoryTypeImage
)

func init() {
	MemoryTypeBuffer.Register("MemoryTypeBuffer")
	MemoryTypeImage.Register("MemoryTypeImage")
}

const (
	InfoTypeObjectDescription        = object.InfoTypeObjectDescription
	InfoTypeMemoryRequirements       = object.InfoTypeMemoryRequirements
	InfoTypeImageMemoryRequirements  = object.InfoTypeImageMemoryRequirements
	InfoTypeBufferMemoryRequirements = object.InfoTypeBufferMemoryRequirements
)

// MemoryRequirements is the information returned for InfoTypeMemoryRequirements
type MemoryRequirements struct {
	Size       int
	Alignment  int
	MemoryType MemoryTypeFlags
}

// ImageMemoryRequirements is the information returned for InfoTypeImageMemoryRequirements
type ImageMemoryRequirements struct {
	Usage       core1_0.ImageUsageFlags
	FormatClass format.Class
	Samples     core1_0.SampleCountFlags
}

// BufferMemoryRequirements is the information returned for InfoTypeBufferMemoryRequirements
type BufferMemoryRequirements struct {
	Usage core1_0.ImageUsageFlags
}

// InfoSize returns the size of the record GetInfo fills for kind. It has no side effects.
func (i *Image) InfoSize(kind object.InfoType) (int, common.VkResult, error) {
	switch kind {
	case InfoTypeMemoryRequirements:
		return int(unsafe.Sizeof(MemoryRequirements{})), core1_0.VKSuccess, nil
	case InfoTypeImageMemoryRequirements:
		return int(unsafe.Sizeof(ImageMemoryRequirements{})), core1_0.VKSuccess, nil
	case InfoTypeBufferMemoryRequirements:
		return int(unsafe.Sizeof(BufferMemoryRequirements{})), core1_0.VKSuccess, nil
	}

	return i.Base.InfoSize(kind)
}

// GetInfo fills out, which must point to the record matching kind. Kinds this image does not
// answer itself are passed to its base object.
func (i *Image) GetInfo(kind object.InfoType, out any) (common.VkResult, error) {
	i.device.logger.Debug("Image::GetInfo", slog.String("Kind", kind.String()))

	switch kind {
	case InfoTypeMemoryRequirements:
		req, ok := out.(*MemoryRequirements)
		if !ok || req == nil {
			return object.InvalidValue("%s must be written to a *MemoryRequirements, received %T", kind, out)
		}

		req.Size = i.totalSize
		req.Alignment = int(RegionAlignment)
		req.MemoryType = MemoryTypeImage
		if i.formatClass == format.ClassLinear {
			req.MemoryType = MemoryTypeBuffer
		}
		return core1_0.VKSuccess, nil

	case InfoTypeImageMemoryRequirements:
		req, ok := out.(*ImageMemoryRequirements)
		if !ok || req == nil {
			return object.InvalidValue("%s must be written to a *ImageMemoryRequirements, received %T", kind, out)
		}

		req.Usage = i.usage
		req.FormatClass = i.formatClass
		req.Samples = i.samples
		return core1_0.VKSuccess, nil

	case InfoTypeBufferMemoryRequirements:
		req, ok := out.(*BufferMemoryRequirements)
		if !ok || req == nil {
			return object.InvalidValue("%s must be written to a *BufferMemoryRequirements, received %T", kind, out)
		}

		req.Usage = i.usage
		return core1_0.VKSuccess, nil
	}

	return i.Base.GetInfo(kind, out)
}

var _ object.InfoQuerier = &Image{}
