package surface

import (
	"github.com/vkngwrapper/surface/object"
)

const (
	// VKErrorInvalidValue is returned for unknown query selectors, out-of-range subresources,
	// output parameters of the wrong type, and image descriptions that cannot be laid out
	VKErrorInvalidValue = object.VKErrorInvalidValue
	// VKErrorInvalidMemorySize is returned when the primary surface of an image would exceed
	// MaxResourceSize
	VKErrorInvalidMemorySize = object.VKErrorInvalidMemorySize
	// VKErrorUnavailable is returned for peer image sharing, which is not implemented
	VKErrorUnavailable = object.VKErrorUnavailable
)

const (
	// MaxResourceSize is the largest primary surface, in bytes, the hardware can address
	MaxResourceSize int = 1 << 31
	// RegionAlignment is the alignment of every region within an image's footprint, and the
	// alignment reported in the image's memory requirements
	RegionAlignment uint = 4096
)
