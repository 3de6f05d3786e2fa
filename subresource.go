package surface

import (
	"unsafe"

	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/surface/layout"
	"github.com/vkngwrapper/surface/object"
)

// SubresourceInfoType selects the information returned by a subresource query
type SubresourceInfoType uint32

const (
	// SubresourceInfoTypeLayout is answered with a core1_0.SubresourceLayout
	SubresourceInfoTypeLayout SubresourceInfoType = iota
)

var subresourceInfoTypeMapping = map[SubresourceInfoType]string{
	SubresourceInfoTypeLayout: "SubresourceInfoTypeLayout",
}

func (t SubresourceInfoType) String() string {
	str, ok := subresourceInfoTypeMapping[t]
	if !ok {
		return "unknown SubresourceInfoType"
	}

	return str
}

func (i *Image) SubresourceInfoSize(kind SubresourceInfoType) (int, common.VkResult, error) {
	if kind != SubresourceInfoTypeLayout {
		res, err := object.InvalidValue("unsupported subresource query %s", kind)
		return 0, res, err
	}

	return int(unsafe.Sizeof(core1_0.SubresourceLayout{})), core1_0.VKSuccess, nil
}

// GetSubresourceInfo locates a single (mip level, array slice) of the image. For 3D images the
// array layer selects a depth slice. Requesting only the stencil aspect of an image with a
// separate stencil surface locates the slice within that surface instead. The reported Size
// covers a single slice; ArrayPitch is the distance to the next one.
func (i *Image) GetSubresourceInfo(sub core1_0.ImageSubresource, kind SubresourceInfoType, out *core1_0.SubresourceLayout) (common.VkResult, error) {
	if kind != SubresourceInfoTypeLayout {
		return object.InvalidValue("unsupported subresource query %s", kind)
	}
	if out == nil {
		return object.InvalidValue("%s requires a non-nil output", kind)
	}

	l := i.layout
	base := 0
	if sub.AspectMask == core1_0.ImageAspectStencil {
		if stencil, offset, ok := i.StencilLayout(); ok {
			l = stencil
			base = offset
		}
	}

	if l == nil {
		return object.InvalidValue("image %d has been destroyed", i.Handle())
	}
	level := int(sub.MipLevel)
	slice := int(sub.ArrayLayer)

	if level >= l.LevelCount() {
		return object.InvalidValue("mip level %d is out of range, the image has %d", level, l.LevelCount())
	}
	if slice >= l.SliceCount(level) {
		return object.InvalidValue("slice %d is out of range, mip level %d has %d", slice, level, l.SliceCount(level))
	}

	translateSubresource(l, level, slice, base, out)
	return core1_0.VKSuccess, nil
}

func translateSubresource(l *layout.Layout, level, slice, base int, out *core1_0.SubresourceLayout) {
	x, y := l.SlicePos(level, slice)

	out.Offset = base + l.MemToLinear(l.PosToMem(x, y))
	out.Size = l.SliceSize(level)
	out.RowPitch = l.BOStride
	out.DepthPitch = l.SliceStride(level)
	out.ArrayPitch = l.SliceStride(level)
}
