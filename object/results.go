package object

import (
	"github.com/vkngwrapper/core/v2/common"
)

const (
	// VKErrorInvalidValue is returned when a query selector, subresource, or output
	// parameter is not valid for the object it is used with
	VKErrorInvalidValue common.VkResult = -1100000001
	// VKErrorInvalidMemorySize is returned when an image would exceed the maximum
	// size of a single hardware resource
	VKErrorInvalidMemorySize common.VkResult = -1100000002
	// VKErrorUnavailable is returned for operations the device does not implement
	VKErrorUnavailable common.VkResult = -1100000003
)

func init() {
	VKErrorInvalidValue.Register("invalid value")
	VKErrorInvalidMemorySize.Register("invalid memory size")
	VKErrorUnavailable.Register("unavailable")
}
