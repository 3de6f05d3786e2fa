package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newMipLayout() *Layout {
	return &Layout{
		Tiling:      TilingY,
		BlockWidth:  1,
		BlockHeight: 1,
		BlockSize:   4,
		BOStride:    128,
		BOHeight:    64,
		Levels: []Level{
			{X: 0, Y: 0, Width: 16, Height: 16, Slices: 2, SliceRows: 16},
			{X: 0, Y: 32, Width: 8, Height: 8, Slices: 2, SliceRows: 8},
			{X: 0, Y: 48, Width: 4, Height: 4, Slices: 2, SliceRows: 4},
		},
	}
}

func TestSlicePos(t *testing.T) {
	l := newMipLayout()

	x, y := l.SlicePos(0, 0)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)

	x, y = l.SlicePos(1, 1)
	require.Equal(t, 0, x)
	require.Equal(t, 40, y)

	x, y = l.SlicePos(2, 1)
	require.Equal(t, 0, x)
	require.Equal(t, 52, y)
}

func TestPosToLinear(t *testing.T) {
	l := newMipLayout()

	memX, memY := l.PosToMem(3, 40)
	require.Equal(t, 12, memX)
	require.Equal(t, 40, memY)
	require.Equal(t, 40*128+12, l.MemToLinear(memX, memY))
}

func TestPosToMemCompressed(t *testing.T) {
	l := &Layout{
		BlockWidth:  4,
		BlockHeight: 4,
		BlockSize:   16,
		BOStride:    256,
	}

	memX, memY := l.PosToMem(8, 16)
	require.Equal(t, 32, memX)
	require.Equal(t, 4, memY)
}

func TestSliceSizeAndStride(t *testing.T) {
	l := newMipLayout()

	require.Equal(t, 128*16, l.SliceSize(0))
	require.Equal(t, 128*16, l.SliceStride(0))
	require.Equal(t, 128*8, l.SliceSize(1))
	require.Equal(t, 2, l.SliceCount(1))
	require.Equal(t, 3, l.LevelCount())
	require.Equal(t, 128*64, l.Size())
}

func TestAuxSize(t *testing.T) {
	l := newMipLayout()
	l.AuxStride = 128
	l.AuxHeight = 32
	require.Equal(t, 0, l.AuxSize())

	l.Aux = AuxFastClear
	require.Equal(t, 4096, l.AuxSize())
}

func TestTilingStrings(t *testing.T) {
	require.Equal(t, "TilingW", TilingW.String())
	require.Equal(t, "AuxHiZ", AuxHiZ.String())
	require.Equal(t, "unknown Tiling", Tiling(42).String())

	width, height := TilingY.TileSize()
	require.Equal(t, 4096, width*height)
	width, height = TilingX.TileSize()
	require.Equal(t, 4096, width*height)
	width, height = TilingW.TileSize()
	require.Equal(t, 4096, width*height)
}
