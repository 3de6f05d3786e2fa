package layout

import (
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Tiling is the physical arrangement of a surface's bytes in memory
type Tiling uint32

const (
	// TilingNone is a plain row-major surface
	TilingNone Tiling = iota
	// TilingX uses 4KiB tiles of 512 bytes x 8 rows, row-major within the tile. It is the only
	// tiled arrangement that display engines can scan out.
	TilingX
	// TilingY uses 4KiB tiles of 128 bytes x 32 rows, organized as 16-byte columns
	TilingY
	// TilingW uses 4KiB tiles of 64 bytes x 64 rows and is used for stencil surfaces
	TilingW
)

var tilingMapping = map[Tiling]string{
	TilingNone: "TilingNone",
	TilingX:    "TilingX",
	TilingY:    "TilingY",
	TilingW:    "TilingW",
}

func (t Tiling) String() string {
	str, ok := tilingMapping[t]
	if !ok {
		return "unknown Tiling"
	}

	return str
}

// TileSize returns the width in bytes and height in rows of a single tile
func (t Tiling) TileSize() (width int, height int) {
	switch t {
	case TilingX:
		return 512, 8
	case TilingY:
		return 128, 32
	case TilingW:
		return 64, 64
	}

	return 1, 1
}

// AuxKind identifies the kind of auxiliary surface a layout needs packed after it
type AuxKind uint32

const (
	AuxNone AuxKind = iota
	// AuxCompression is a multisample control surface for compressed multisampled color
	AuxCompression
	// AuxFastClear is a color control surface tracking fast-cleared blocks of single-sampled color
	AuxFastClear
	// AuxHiZ is a hierarchical depth buffer, used for depth compression and depth fast clears
	AuxHiZ
)

var auxKindMapping = map[AuxKind]string{
	AuxNone:        "AuxNone",
	AuxCompression: "AuxCompression",
	AuxFastClear:   "AuxFastClear",
	AuxHiZ:         "AuxHiZ",
}

func (k AuxKind) String() string {
	str, ok := auxKindMapping[k]
	if !ok {
		return "unknown AuxKind"
	}

	return str
}

// Level is the placement of one mip level within the surface. All coordinates are in texels
// of the physical (sample-expanded) surface.
type Level struct {
	X, Y int
	// Width and Height are the padded dimensions of a single slice
	Width, Height int
	// Slices is the number of array layers or depth slices stored for this level
	Slices int
	// SliceRows is the distance in block rows between consecutive slices of this level
	SliceRows int
}

// Layout is the tiling-aware layout of a single surface, as produced by a Provider. A Layout
// is immutable once returned.
type Layout struct {
	Tiling  Tiling
	Format  core1_0.Format
	Samples int

	BlockWidth  int
	BlockHeight int
	BlockSize   int

	// BOStride is the size in bytes of one row of blocks
	BOStride int
	// BOHeight is the number of block rows in the surface
	BOHeight int

	Levels []Level

	Aux       AuxKind
	AuxStride int
	AuxHeight int

	// SeparateStencil is true when the stencil aspect of the format is not stored in this
	// surface and requires a surface of its own
	SeparateStencil bool
}

// Size returns the number of bytes covered by the surface
func (l *Layout) Size() int {
	return l.BOStride * l.BOHeight
}

// AuxSize returns the number of bytes covered by the auxiliary surface, or 0 if there is none
func (l *Layout) AuxSize() int {
	if l.Aux == AuxNone {
		return 0
	}
	return l.AuxStride * l.AuxHeight
}

func (l *Layout) LevelCount() int {
	return len(l.Levels)
}

// SliceCount returns the number of slices stored for a level
func (l *Layout) SliceCount(level int) int {
	return l.Levels[level].Slices
}

// SlicePos returns the texel position of the top-left corner of a slice
func (l *Layout) SlicePos(level, slice int) (x, y int) {
	lod := &l.Levels[level]
	return lod.X, lod.Y + slice*lod.SliceRows*l.BlockHeight
}

// PosToMem converts a texel position into a memory position: x in bytes, y in block rows
func (l *Layout) PosToMem(x, y int) (memX, memY int) {
	return x / l.BlockWidth * l.BlockSize, y / l.BlockHeight
}

// MemToLinear converts a memory position to a byte offset from the start of the surface
func (l *Layout) MemToLinear(memX, memY int) int {
	return memY*l.BOStride + memX
}

// SliceSize returns the number of bytes spanned by a single slice of a level
func (l *Layout) SliceSize(level int) int {
	lod := &l.Levels[level]
	return l.BOStride * (lod.Height / l.BlockHeight)
}

// SliceStride returns the distance in bytes between consecutive slices of a level
func (l *Layout) SliceStride(level int) int {
	return l.BOStride * l.Levels[level].SliceRows
}
