package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/surface/internal/utils"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slog"
)

// Memory is device memory an image was exported through. The image frees it when destroyed.
type Memory interface {
	Free() error
}

// handoff is the state held by an image that was shared with the window system
type handoff struct {
	fd         int
	memory     Memory
	handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
}

func (h *handoff) release() error {
	var err error

	if h.fd >= 0 {
		closeErr := closeHandle(h.fd)
		if closeErr != nil {
			err = errors.Wrapf(closeErr, "could not close %s handle %d", h.handleType, h.fd)
		}
	}

	if h.memory != nil {
		err = errors.CombineErrors(err, h.memory.Free())
	}

	return err
}

// SetPlatformHandoff gives the image ownership of a handle exported for the window system and
// the memory it was exported from. Both are released when the image is destroyed. fd may be
// negative if the memory is shared without a handle.
func (i *Image) SetPlatformHandoff(fd int, memory Memory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (common.VkResult, error) {
	i.device.logger.Debug("Image::SetPlatformHandoff", slog.Int("fd", fd), slog.String("HandleType", handleType.String()))

	if i.Destroyed() {
		return object.InvalidValue("image %d has been destroyed", i.Handle())
	}
	if i.handoff.Present() {
		return object.InvalidValue("image %d has already been handed off", i.Handle())
	}

	i.handoff = utils.Some(handoff{
		fd:         fd,
		memory:     memory,
		handleType: handleType,
	})

	return core1_0.VKSuccess, nil
}

// PlatformHandoff returns the handle and memory the image was handed off with
func (i *Image) PlatformHandoff() (fd int, memory Memory, ok bool) {
	h, ok := i.handoff.Get()
	if !ok {
		return -1, nil, false
	}

	return h.fd, h.memory, true
}
