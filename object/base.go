package object

import (
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Handle identifies a live object for debugging and lookup. Handles are never reused.
type Handle uint64

const NullHandle Handle = 0

var lastHandle atomic.Uint64

func nextHandle() Handle {
	return Handle(lastHandle.Add(1))
}

// Type is the debug type of an object
type Type uint32

const (
	TypeUnknown Type = iota
	TypeDevice
	TypeImage
	TypeMemory
)

var typeMapping = map[Type]string{
	TypeUnknown: "TypeUnknown",
	TypeDevice:  "TypeDevice",
	TypeImage:   "TypeImage",
	TypeMemory:  "TypeMemory",
}

func (t Type) String() string {
	str, ok := typeMapping[t]
	if !ok {
		return "unknown Type"
	}

	return str
}

// InfoType selects the information returned by an info query
type InfoType uint32

const (
	// InfoTypeObjectDescription is answered by every object with a Description
	InfoTypeObjectDescription InfoType = iota
	// InfoTypeMemoryRequirements is answered with a MemoryRequirements
	InfoTypeMemoryRequirements
	// InfoTypeImageMemoryRequirements is answered with an ImageMemoryRequirements
	InfoTypeImageMemoryRequirements
	// InfoTypeBufferMemoryRequirements is answered with a BufferMemoryRequirements
	InfoTypeBufferMemoryRequirements
)

var infoTypeMapping = map[InfoType]string{
	InfoTypeObjectDescription:        "InfoTypeObjectDescription",
	InfoTypeMemoryRequirements:       "InfoTypeMemoryRequirements",
	InfoTypeImageMemoryRequirements:  "InfoTypeImageMemoryRequirements",
	InfoTypeBufferMemoryRequirements: "InfoTypeBufferMemoryRequirements",
}

func (t InfoType) String() string {
	str, ok := infoTypeMapping[t]
	if !ok {
		return "unknown InfoType"
	}

	return str
}

// InfoQuerier is implemented by objects supporting the two-phase info query: InfoSize reports
// the size of the record for a kind without side effects, and GetInfo fills the record
type InfoQuerier interface {
	InfoSize(kind InfoType) (int, common.VkResult, error)
	GetInfo(kind InfoType, out any) (common.VkResult, error)
}

// Description is the information returned for InfoTypeObjectDescription
type Description struct {
	Handle Handle
	Type   Type
	Name   string
}

// InvalidValue builds the result returned when a caller passes a selector or parameter an
// object does not accept
func InvalidValue(format string, args ...any) (common.VkResult, error) {
	return VKErrorInvalidValue, errors.Wrapf(VKErrorInvalidValue.ToError(), format, args...)
}

// Base holds the state shared by every device object and answers the info queries that are
// not specific to any kind of object. It is meant to be embedded.
type Base struct {
	handle     Handle
	objType    Type
	name       string
	createInfo any
	destroyed  bool
}

// Init assigns a fresh handle to the object. createInfo is retained for debugging.
func (b *Base) Init(objType Type, createInfo any) {
	b.handle = nextHandle()
	b.objType = objType
	b.name = ""
	b.createInfo = createInfo
	b.destroyed = false
}

func (b *Base) Handle() Handle {
	return b.handle
}

func (b *Base) Type() Type {
	return b.objType
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) SetName(name string) {
	b.name = name
}

// CreateInfo returns the description the object was created from, or nil after Destroy
func (b *Base) CreateInfo() any {
	return b.createInfo
}

// ImageCreateInfo returns the creation info of an image object
func (b *Base) ImageCreateInfo() (core1_0.ImageCreateInfo, bool) {
	info, ok := b.createInfo.(core1_0.ImageCreateInfo)
	return info, ok
}

func (b *Base) Destroyed() bool {
	return b.destroyed
}

// InfoSize reports the record size of the kinds every object answers
func (b *Base) InfoSize(kind InfoType) (int, common.VkResult, error) {
	if kind != InfoTypeObjectDescription {
		res, err := InvalidValue("%s is not available for objects of type %s", kind, b.objType)
		return 0, res, err
	}

	return int(unsafe.Sizeof(Description{})), core1_0.VKSuccess, nil
}

func (b *Base) GetInfo(kind InfoType, out any) (common.VkResult, error) {
	if kind != InfoTypeObjectDescription {
		return InvalidValue("%s is not available for objects of type %s", kind, b.objType)
	}

	desc, ok := out.(*Description)
	if !ok || desc == nil {
		return InvalidValue("%s must be written to a *Description, received %T", kind, out)
	}

	desc.Handle = b.handle
	desc.Type = b.objType
	desc.Name = b.name
	return core1_0.VKSuccess, nil
}

// Destroy releases the base state. It is safe to call more than once.
func (b *Base) Destroy() {
	b.createInfo = nil
	b.destroyed = true
}
