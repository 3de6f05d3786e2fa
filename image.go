package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/surface/format"
	"github.com/vkngwrapper/surface/internal/utils"
	"github.com/vkngwrapper/surface/layout"
	"github.com/vkngwrapper/surface/memutils"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slog"
)

// RegionKind identifies one of the surfaces packed into an image's footprint
type RegionKind uint32

const (
	RegionPrimary RegionKind = iota
	RegionAux
	RegionStencil
)

var regionKindMapping = map[RegionKind]string{
	RegionPrimary: "RegionPrimary",
	RegionAux:     "RegionAux",
	RegionStencil: "RegionStencil",
}

func (k RegionKind) String() string {
	str, ok := regionKindMapping[k]
	if !ok {
		return "unknown RegionKind"
	}

	return str
}

// Region is the placement of one surface within an image's footprint
type Region struct {
	Kind   RegionKind
	Offset int
	Size   int
}

type auxPlane struct {
	offset int
	size   int
	kind   layout.AuxKind
}

type stencilPlane struct {
	// layout is nil between the slot being allocated and the stencil surface being laid out
	layout *layout.Layout
	offset int
}

// Image is a GPU image whose memory footprint is fully determined: the primary surface at
// offset 0, followed by optional auxiliary and stencil surfaces, each aligned to RegionAlignment
type Image struct {
	object.Base

	device        *Device
	hostAllocated bool

	formatClass format.Class
	usage       core1_0.ImageUsageFlags
	samples     core1_0.SampleCountFlags
	imageType   core1_0.ImageType
	depth       int
	mipLevels   int
	arraySize   int

	layout    *layout.Layout
	aux       utils.Optional[auxPlane]
	stencil   utils.Optional[stencilPlane]
	totalSize int

	clearColor [4]float32
	clearDepth float32

	handoff utils.Optional[handoff]
}

// Size returns the number of bytes of memory the image must be bound to
func (i *Image) Size() int {
	return i.totalSize
}

// Layout returns the layout of the primary surface
func (i *Image) Layout() *layout.Layout {
	return i.layout
}

// StencilLayout returns the layout and offset of the separate stencil surface. ok is false
// if the image keeps its stencil aspect, if any, in the primary surface.
func (i *Image) StencilLayout() (l *layout.Layout, offset int, ok bool) {
	plane, ok := i.stencil.Get()
	if !ok || plane.layout == nil {
		return nil, 0, false
	}

	return plane.layout, plane.offset, true
}

// AuxKind returns the kind of auxiliary surface packed after the primary surface
func (i *Image) AuxKind() layout.AuxKind {
	plane, ok := i.aux.Get()
	if !ok {
		return layout.AuxNone
	}
	return plane.kind
}

func (i *Image) FormatClass() format.Class {
	return i.formatClass
}

func (i *Image) Usage() core1_0.ImageUsageFlags {
	return i.usage
}

func (i *Image) Samples() core1_0.SampleCountFlags {
	return i.samples
}

func (i *Image) ImageType() core1_0.ImageType {
	return i.imageType
}

func (i *Image) Depth() int {
	return i.depth
}

func (i *Image) MipLevels() int {
	return i.mipLevels
}

func (i *Image) ArraySize() int {
	return i.arraySize
}

// Regions returns every surface in the footprint, in memory order
func (i *Image) Regions() []Region {
	if i.layout == nil {
		return nil
	}

	regions := []Region{
		{Kind: RegionPrimary, Offset: 0, Size: i.layout.Size()},
	}

	if plane, ok := i.aux.Get(); ok {
		regions = append(regions, Region{Kind: RegionAux, Offset: plane.offset, Size: plane.size})
	}

	if plane, ok := i.stencil.Get(); ok && plane.layout != nil {
		regions = append(regions, Region{Kind: RegionStencil, Offset: plane.offset, Size: plane.layout.Size()})
	}

	return regions
}

// Validate checks the footprint invariants of the image
func (i *Image) Validate() error {
	if i.layout == nil {
		return errors.New("image has no primary surface")
	}

	if i.layout.Size() > MaxResourceSize {
		return errors.Newf("primary surface of %d bytes exceeds the maximum resource size", i.layout.Size())
	}

	end := 0
	for _, region := range i.Regions() {
		if region.Offset != memutils.AlignUp(region.Offset, RegionAlignment) {
			return errors.Newf("%s at offset %d is not aligned to %d bytes", region.Kind, region.Offset, RegionAlignment)
		}
		if region.Offset < end {
			return errors.Newf("%s at offset %d overlaps the previous region, which ends at %d", region.Kind, region.Offset, end)
		}
		end = region.Offset + region.Size
	}

	if end != i.totalSize {
		return errors.Newf("last region ends at %d but the image size is %d", end, i.totalSize)
	}

	if plane, ok := i.stencil.Get(); ok && plane.layout != nil && plane.layout.Format != format.S8 {
		return errors.Newf("stencil surface has format %d", int(plane.layout.Format))
	}

	return nil
}

// PrintParameters writes a description of the image's footprint to a json object
func (i *Image) PrintParameters(json *jwriter.ObjectState) {
	json.Name("Handle").Int(int(i.Handle()))
	if i.Name() != "" {
		json.Name("Name").String(i.Name())
	}
	json.Name("FormatClass").String(i.formatClass.String())
	json.Name("Size").Int(i.totalSize)

	if i.layout != nil {
		json.Name("Tiling").String(i.layout.Tiling.String())
		json.Name("RowPitch").Int(i.layout.BOStride)
		json.Name("Rows").Int(i.layout.BOHeight)
	}

	regions := json.Name("Regions").Array()
	for _, region := range i.Regions() {
		obj := regions.Object()
		obj.Name("Type").String(region.Kind.String())
		obj.Name("Offset").Int(region.Offset)
		obj.Name("Size").Int(region.Size)
		if region.Kind == RegionAux {
			obj.Name("AuxKind").String(i.AuxKind().String())
		}
		obj.End()
	}
	regions.End()
}

func (i *Image) addStatistics(stats *memutils.DetailedStatistics) {
	used := 0
	for _, region := range i.Regions() {
		used += region.Size

		switch region.Kind {
		case RegionPrimary:
			stats.AddPrimary(region.Size)
		case RegionAux:
			stats.AddAux(region.Size)
		case RegionStencil:
			stats.AddStencil(region.Size)
		}
	}

	stats.AddImage(i.totalSize, used)
}

// Destroy releases the platform hand-off, the stencil surface, and the image itself. The
// image must not be used afterward. It is safe to call more than once.
func (i *Image) Destroy() error {
	i.device.logger.Debug("Image::Destroy", slog.Uint64("Handle", uint64(i.Handle())))

	if i.Destroyed() {
		return nil
	}

	i.device.unregisterImage(i)
	return i.release()
}

// release frees everything the image holds. It copes with images at any point of construction.
func (i *Image) release() error {
	var err error

	if h, ok := i.handoff.Take(); ok {
		err = h.release()
	}

	if _, ok := i.stencil.Take(); ok {
		i.device.free(stencilSlotSize, SystemAllocInternal)
	}

	i.aux.Clear()
	i.layout = nil

	if !i.Destroyed() {
		i.Base.Destroy()
	}

	if i.hostAllocated {
		i.hostAllocated = false
		i.device.free(imageObjectSize, SystemAllocAPIObject)
	}

	return err
}
