package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/surface/format"
	"github.com/vkngwrapper/surface/internal/utils"
	"github.com/vkngwrapper/surface/layout"
	"github.com/vkngwrapper/surface/memutils"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slog"
)

// CreateImage lays out a new image and returns it along with VKSuccess. On failure, nothing
// acquired while building the image is retained and the returned image is nil.
func (d *Device) CreateImage(info core1_0.ImageCreateInfo) (*Image, common.VkResult, error) {
	d.logger.Debug("Device::CreateImage")

	return d.createImage(&info, false)
}

// CreatePresentableImage lays out a new image that will be handed to a display engine
func (d *Device) CreatePresentableImage(info core1_0.ImageCreateInfo) (*Image, common.VkResult, error) {
	d.logger.Debug("Device::CreatePresentableImage")

	return d.createImage(&info, true)
}

func (d *Device) createImage(info *core1_0.ImageCreateInfo, scanout bool) (image *Image, res common.VkResult, err error) {
	err = d.allocate(imageObjectSize, SystemAllocAPIObject)
	if err != nil {
		return nil, core1_0.VKErrorOutOfHostMemory, err
	}

	built := &Image{
		device:        d,
		hostAllocated: true,
	}
	built.Base.Init(object.TypeImage, *info)

	defer func() {
		if err != nil {
			releaseErr := built.release()
			if releaseErr != nil {
				d.logger.Error("error attempting to release image after creation failure", slog.Any("error", releaseErr))
			}
			image = nil
		}
	}()

	res, err = built.initFootprint(info, scanout)
	if err != nil {
		return nil, res, err
	}

	memutils.DebugValidate(built)
	d.registerImage(built)

	d.logger.Debug("    Created image",
		slog.Uint64("Handle", uint64(built.Handle())),
		slog.Int("Size", built.totalSize),
	)

	return built, core1_0.VKSuccess, nil
}

// checkCapacity rejects surfaces that do not fit in a single hardware resource
func (d *Device) checkCapacity(l *layout.Layout) (common.VkResult, error) {
	if l.BOHeight <= 0 || l.BOStride > MaxResourceSize/l.BOHeight {
		d.Log(ext_debug_utils.SeverityError, ext_debug_utils.TypeValidation, "image too big")
		return VKErrorInvalidMemorySize, errors.Wrapf(VKErrorInvalidMemorySize.ToError(),
			"surface of %d rows of %d bytes exceeds the maximum resource size of %d bytes",
			l.BOHeight, l.BOStride, MaxResourceSize)
	}

	return core1_0.VKSuccess, nil
}

func layoutError(err error, surface string) (common.VkResult, error) {
	return VKErrorInvalidValue, errors.Mark(
		errors.Wrapf(err, "could not lay out the %s surface", surface),
		VKErrorInvalidValue.ToError(),
	)
}

// initFootprint packs the primary, auxiliary and stencil surfaces of the image into a single
// allocation
func (i *Image) initFootprint(info *core1_0.ImageCreateInfo, scanout bool) (common.VkResult, error) {
	if info.Tiling == core1_0.ImageTilingLinear {
		i.formatClass = format.ClassLinear
	} else {
		i.formatClass = format.ClassOf(info.Format)
	}

	i.usage = info.Usage
	i.samples = info.Samples
	i.imageType = info.ImageType
	i.depth = info.Extent.Depth
	i.mipLevels = info.MipLevels
	i.arraySize = info.ArrayLayers

	primary, err := i.device.provider.Layout(*info, scanout)
	if err != nil {
		return layoutError(err, "primary")
	}

	res, err := i.device.checkCapacity(primary)
	if err != nil {
		return res, err
	}

	i.layout = primary
	total := primary.Size()

	if primary.Aux != layout.AuxNone {
		offset := memutils.AlignUp(total, RegionAlignment)
		size := primary.AuxSize()

		i.aux = utils.Some(auxPlane{
			offset: offset,
			size:   size,
			kind:   primary.Aux,
		})
		total = offset + size
	}

	if primary.SeparateStencil {
		res, err = i.initStencil(info, scanout, total)
		if err != nil {
			return res, err
		}

		plane, _ := i.stencil.Get()
		total = plane.offset + plane.layout.Size()
	}

	i.totalSize = total
	return core1_0.VKSuccess, nil
}

func (i *Image) initStencil(info *core1_0.ImageCreateInfo, scanout bool, offset int) (common.VkResult, error) {
	err := i.device.allocate(stencilSlotSize, SystemAllocInternal)
	if err != nil {
		return core1_0.VKErrorOutOfHostMemory, err
	}
	i.stencil = utils.Some(stencilPlane{})

	stencilInfo := *info
	stencilInfo.Format = format.S8

	stencil, err := i.device.provider.Layout(stencilInfo, scanout)
	if err != nil {
		return layoutError(err, "stencil")
	}

	i.stencil = utils.Some(stencilPlane{
		layout: stencil,
		offset: memutils.AlignUp(offset, RegionAlignment),
	})

	return core1_0.VKSuccess, nil
}
