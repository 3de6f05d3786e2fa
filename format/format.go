package format

import (
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Info describes the texel block of a format
type Info struct {
	Class Class
	// BlockSize is the size in bytes of one block of BlockWidth x BlockHeight texels
	BlockSize   int
	BlockWidth  int
	BlockHeight int

	Depth   bool
	Stencil bool
	// DepthSize is the size in bytes of the depth component alone, for formats with a depth aspect
	DepthSize int
}

// Compressed returns true if a block holds more than one texel
func (i Info) Compressed() bool {
	return i.BlockWidth > 1 || i.BlockHeight > 1
}

// S8 is the format used for separately-stored stencil planes
const S8 = core1_0.FormatS8UnsignedInt

type formatRange struct {
	first, last core1_0.Format
	info        Info
}

func uncompressed(first, last core1_0.Format, size int) formatRange {
	return formatRange{
		first: first,
		last:  last,
		info: Info{
			Class:       classForBits(size * 8),
			BlockSize:   size,
			BlockWidth:  1,
			BlockHeight: 1,
		},
	}
}

func block(first, last core1_0.Format, size int) formatRange {
	class := Class128BitBlock
	if size == 8 {
		class = Class64BitBlock
	}

	return formatRange{
		first: first,
		last:  last,
		info: Info{
			Class:       class,
			BlockSize:   size,
			BlockWidth:  4,
			BlockHeight: 4,
		},
	}
}

// Color and compressed formats, in core format enum order
var colorFormats = []formatRange{
	uncompressed(1, 1, 1),       // R4G4 packed
	uncompressed(2, 8, 2),       // 4444, 565, 5551 packed
	uncompressed(9, 15, 1),      // R8
	uncompressed(16, 22, 2),     // R8G8
	uncompressed(23, 36, 3),     // R8G8B8, B8G8R8
	uncompressed(37, 57, 4),     // R8G8B8A8, B8G8R8A8, A8B8G8R8 packed
	uncompressed(58, 69, 4),     // A2R10G10B10, A2B10G10R10 packed
	uncompressed(70, 76, 2),     // R16
	uncompressed(77, 83, 4),     // R16G16
	uncompressed(84, 90, 6),     // R16G16B16
	uncompressed(91, 97, 8),     // R16G16B16A16
	uncompressed(98, 100, 4),    // R32
	uncompressed(101, 103, 8),   // R32G32
	uncompressed(104, 106, 12),  // R32G32B32
	uncompressed(107, 109, 16),  // R32G32B32A32
	uncompressed(110, 112, 8),   // R64
	uncompressed(113, 115, 16),  // R64G64
	uncompressed(116, 118, 24),  // R64G64B64
	uncompressed(119, 121, 32),  // R64G64B64A64
	uncompressed(122, 123, 4),   // B10G11R11, E5B9G9R9 packed
	block(131, 134, 8),          // BC1
	block(135, 138, 16),         // BC2, BC3
	block(139, 140, 8),          // BC4
	block(141, 146, 16),         // BC5, BC6H, BC7
	block(147, 150, 8),          // ETC2 RGB8, RGB8A1
	block(151, 152, 16),         // ETC2 RGBA8
	block(153, 154, 8),          // EAC R11
	block(155, 156, 16),         // EAC R11G11
}

var depthStencilFormats = map[core1_0.Format]Info{
	core1_0.FormatD16UnsignedNormalized: {
		Class: ClassD16, BlockSize: 2, BlockWidth: 1, BlockHeight: 1,
		Depth: true, DepthSize: 2,
	},
	// X8_D24_UNORM_PACK32
	core1_0.Format(125): {
		Class: ClassD24, BlockSize: 4, BlockWidth: 1, BlockHeight: 1,
		Depth: true, DepthSize: 4,
	},
	core1_0.FormatD32SignedFloat: {
		Class: ClassD32, BlockSize: 4, BlockWidth: 1, BlockHeight: 1,
		Depth: true, DepthSize: 4,
	},
	core1_0.FormatS8UnsignedInt: {
		Class: ClassS8, BlockSize: 1, BlockWidth: 1, BlockHeight: 1,
		Stencil: true,
	},
	core1_0.FormatD16UnsignedNormalizedS8UnsignedInt: {
		Class: ClassD16S8, BlockSize: 3, BlockWidth: 1, BlockHeight: 1,
		Depth: true, Stencil: true, DepthSize: 2,
	},
	core1_0.FormatD24UnsignedNormalizedS8UnsignedInt: {
		Class: ClassD24S8, BlockSize: 4, BlockWidth: 1, BlockHeight: 1,
		Depth: true, Stencil: true, DepthSize: 4,
	},
	core1_0.FormatD32SignedFloatS8UnsignedInt: {
		Class: ClassD32S8, BlockSize: 8, BlockWidth: 1, BlockHeight: 1,
		Depth: true, Stencil: true, DepthSize: 4,
	},
}

// Describe returns the block description of a format. ok is false for formats this package
// does not know how to lay out.
func Describe(f core1_0.Format) (info Info, ok bool) {
	info, ok = depthStencilFormats[f]
	if ok {
		return info, true
	}

	for _, r := range colorFormats {
		if f >= r.first && f <= r.last {
			return r.info, true
		}
	}

	return Info{}, false
}

// ClassOf returns the class of a format as used by optimally tiled images
func ClassOf(f core1_0.Format) Class {
	info, ok := Describe(f)
	if !ok {
		return ClassUnknown
	}
	return info.Class
}

// IsDepthStencil returns true for combined formats carrying both a depth and a stencil aspect
func IsDepthStencil(f core1_0.Format) bool {
	info, ok := Describe(f)
	return ok && info.Depth && info.Stencil
}

func HasDepth(f core1_0.Format) bool {
	info, ok := Describe(f)
	return ok && info.Depth
}

func HasStencil(f core1_0.Format) bool {
	info, ok := Describe(f)
	return ok && info.Stencil
}
