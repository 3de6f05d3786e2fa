package layout

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/surface/format"
	"github.com/vkngwrapper/surface/memutils"
	"golang.org/x/exp/slog"
)

// ErrInvalidDescription is returned by providers when an image description cannot be laid out
var ErrInvalidDescription = errors.New("invalid image description")

// ErrUnsupportedFormat is returned by providers when the format of an image has no known block layout
var ErrUnsupportedFormat = errors.New("unsupported format")

// Provider derives the layout of a surface from an image description. Implementations must
// be stateless: the same inputs always produce the same Layout, and Layout may be called
// concurrently.
type Provider interface {
	// Layout lays out the surface described by info. scanout is true when the surface will be
	// handed to a display engine.
	Layout(info core1_0.ImageCreateInfo, scanout bool) (*Layout, error)
}

const (
	defaultLinearPitchAlignment uint = 64
)

// ProviderOptions contains optional settings for NewProvider
type ProviderOptions struct {
	// SeparateStencil indicates that the hardware stores the stencil aspect of every combined
	// depth/stencil format in a surface of its own. Formats that cannot interleave depth
	// and stencil always use a separate stencil surface.
	SeparateStencil bool
	// DisableAux suppresses all auxiliary surfaces
	DisableAux bool
	// LinearPitchAlignment is the row alignment in bytes of linear surfaces. It must be a
	// power of two and defaults to 64.
	LinearPitchAlignment uint
}

// TiledProvider lays out surfaces the way Gen7-class Intel hardware expects them: mip levels
// are stacked vertically, each level storing all of its slices one after another
type TiledProvider struct {
	logger  *slog.Logger
	options ProviderOptions
}

var _ Provider = &TiledProvider{}

func NewProvider(logger *slog.Logger, options ProviderOptions) (*TiledProvider, error) {
	if options.LinearPitchAlignment == 0 {
		options.LinearPitchAlignment = defaultLinearPitchAlignment
	}

	err := memutils.CheckPow2(options.LinearPitchAlignment, "ProviderOptions.LinearPitchAlignment")
	if err != nil {
		return nil, err
	}

	return &TiledProvider{
		logger:  logger,
		options: options,
	}, nil
}

func sampleCount(samples core1_0.SampleCountFlags) int {
	if samples == 0 {
		return 1
	}
	return int(samples)
}

func maxLevels(info *core1_0.ImageCreateInfo) int {
	dim := memutils.Max(info.Extent.Width, info.Extent.Height)
	if info.ImageType == core1_0.ImageType3D {
		dim = memutils.Max(dim, info.Extent.Depth)
	}

	return bits.Len(uint(dim))
}

func validateDescription(info *core1_0.ImageCreateInfo, samples int) error {
	if info.Extent.Width < 1 || info.Extent.Height < 1 || info.Extent.Depth < 1 {
		return errors.Wrapf(ErrInvalidDescription, "extent %dx%dx%d has an empty dimension",
			info.Extent.Width, info.Extent.Height, info.Extent.Depth)
	}
	if info.MipLevels < 1 || info.ArrayLayers < 1 {
		return errors.Wrapf(ErrInvalidDescription, "%d mip levels and %d array layers requested, at least 1 of each is required",
			info.MipLevels, info.ArrayLayers)
	}
	if info.MipLevels > maxLevels(info) {
		return errors.Wrapf(ErrInvalidDescription, "%d mip levels requested but the extent only supports %d",
			info.MipLevels, maxLevels(info))
	}
	if info.ImageType == core1_0.ImageType3D && info.ArrayLayers != 1 {
		return errors.Wrapf(ErrInvalidDescription, "3D images cannot have %d array layers", info.ArrayLayers)
	}
	if samples > 16 || memutils.CheckPow2(samples, "samples") != nil {
		return errors.Wrapf(ErrInvalidDescription, "unsupported sample count %d", samples)
	}
	if samples > 1 && info.MipLevels > 1 {
		return errors.Wrap(ErrInvalidDescription, "multisampled images cannot have mip levels")
	}

	return nil
}

func (p *TiledProvider) needsSeparateStencil(f core1_0.Format) bool {
	switch f {
	case core1_0.FormatD16UnsignedNormalizedS8UnsignedInt, core1_0.FormatD32SignedFloatS8UnsignedInt:
		return true
	case core1_0.FormatD24UnsignedNormalizedS8UnsignedInt:
		return p.options.SeparateStencil
	}

	return false
}

func (p *TiledProvider) chooseTiling(info *core1_0.ImageCreateInfo, formatInfo *format.Info, samples int, scanout bool) Tiling {
	if info.Tiling == core1_0.ImageTilingLinear {
		return TilingNone
	}

	switch {
	case formatInfo.Stencil && !formatInfo.Depth:
		return TilingW
	case formatInfo.Depth:
		return TilingY
	case scanout && samples == 1:
		return TilingX
	}

	return TilingY
}

// Multisampled surfaces are stored with their samples interleaved, so each pixel
// covers a small rectangle of physical texels
func expandSamples(width, height, samples int) (int, int) {
	switch samples {
	case 2:
		return width * 2, height
	case 4:
		return width * 2, height * 2
	case 8:
		return width * 4, height * 2
	case 16:
		return width * 4, height * 4
	}

	return width, height
}

func levelAlignment(formatInfo *format.Info, samples int) (alignI, alignJ int) {
	switch {
	case formatInfo.Compressed():
		return formatInfo.BlockWidth, formatInfo.BlockHeight
	case formatInfo.Depth || formatInfo.Stencil:
		return 8, 4
	case samples > 1:
		return 4, 4
	}

	return 4, 2
}

func (p *TiledProvider) Layout(info core1_0.ImageCreateInfo, scanout bool) (*Layout, error) {
	samples := sampleCount(info.Samples)
	err := validateDescription(&info, samples)
	if err != nil {
		return nil, err
	}

	formatInfo, ok := format.Describe(info.Format)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format %d", int(info.Format))
	}

	l := &Layout{
		Format:      info.Format,
		Samples:     samples,
		BlockWidth:  formatInfo.BlockWidth,
		BlockHeight: formatInfo.BlockHeight,
		BlockSize:   formatInfo.BlockSize,
	}

	if formatInfo.Depth && formatInfo.Stencil && p.needsSeparateStencil(info.Format) {
		l.SeparateStencil = true
		l.BlockSize = formatInfo.DepthSize
	}

	l.Tiling = p.chooseTiling(&info, &formatInfo, samples, scanout)

	p.initLevels(l, &info, &formatInfo)
	p.initSize(l)

	if !p.options.DisableAux && l.Tiling != TilingNone {
		p.initAux(l, &info, &formatInfo)
	}

	p.logger.Debug("TiledProvider::Layout",
		slog.String("Tiling", l.Tiling.String()),
		slog.Int("BOStride", l.BOStride),
		slog.Int("BOHeight", l.BOHeight),
		slog.String("Aux", l.Aux.String()),
		slog.Bool("SeparateStencil", l.SeparateStencil),
	)

	return l, nil
}

func (p *TiledProvider) initLevels(l *Layout, info *core1_0.ImageCreateInfo, formatInfo *format.Info) {
	width0, height0 := expandSamples(info.Extent.Width, info.Extent.Height, l.Samples)
	alignI, alignJ := levelAlignment(formatInfo, l.Samples)

	l.Levels = make([]Level, info.MipLevels)

	y := 0
	for level := 0; level < info.MipLevels; level++ {
		width := memutils.Max(width0>>level, 1)
		height := memutils.Max(height0>>level, 1)

		slices := info.ArrayLayers
		if info.ImageType == core1_0.ImageType3D {
			slices = memutils.Max(info.Extent.Depth>>level, 1)
		}

		width = memutils.AlignUp(width, uint(alignI))
		height = memutils.AlignUp(height, uint(alignJ))

		l.Levels[level] = Level{
			X:         0,
			Y:         y,
			Width:     width,
			Height:    height,
			Slices:    slices,
			SliceRows: height / l.BlockHeight,
		}

		y += height * slices
	}
}

func (p *TiledProvider) initSize(l *Layout) {
	width := 0
	rows := 0
	for _, lod := range l.Levels {
		width = memutils.Max(width, lod.X+lod.Width)
		rows = memutils.Max(rows, (lod.Y+lod.Height*lod.Slices)/l.BlockHeight)
	}

	stride := memutils.DivRoundUp(width, l.BlockWidth) * l.BlockSize

	if l.Tiling == TilingNone {
		l.BOStride = memutils.AlignUp(stride, p.options.LinearPitchAlignment)
		l.BOHeight = rows
		return
	}

	tileWidth, tileHeight := l.Tiling.TileSize()
	memutils.DebugCheckPow2(tileWidth, "tile width")
	memutils.DebugCheckPow2(tileHeight, "tile height")

	l.BOStride = memutils.AlignUp(stride, uint(tileWidth))
	l.BOHeight = memutils.AlignUp(rows, uint(tileHeight))
}

// mcsBytesPerPixel is the size of a multisample control entry for each sample count
var mcsBytesPerPixel = map[int]int{
	2:  1,
	4:  1,
	8:  4,
	16: 8,
}

func (p *TiledProvider) initAux(l *Layout, info *core1_0.ImageCreateInfo, formatInfo *format.Info) {
	switch {
	case formatInfo.Depth:
		if info.Usage&core1_0.ImageUsageDepthStencilAttachment == 0 {
			return
		}

		// One HiZ entry per 2x2 texels, stored in a Y-tiled surface
		rows := 0
		for _, lod := range l.Levels {
			rows = memutils.Max(rows, lod.Y+lod.Height*lod.Slices)
		}
		l.Aux = AuxHiZ
		l.AuxStride = memutils.AlignUp(memutils.AlignUp(l.Levels[0].Width, 16), 128)
		l.AuxHeight = memutils.AlignUp(memutils.DivRoundUp(rows, 2), 32)

	case formatInfo.Stencil:
		return

	case l.Samples > 1:
		if info.Usage&core1_0.ImageUsageColorAttachment == 0 {
			return
		}

		l.Aux = AuxCompression
		l.AuxStride = memutils.AlignUp(info.Extent.Width*mcsBytesPerPixel[l.Samples], 128)
		l.AuxHeight = memutils.AlignUp(info.Extent.Height*info.ArrayLayers, 32)

	default:
		if info.Usage&core1_0.ImageUsageColorAttachment == 0 || l.Tiling != TilingY || formatInfo.Compressed() {
			return
		}
		if l.BlockSize != 4 && l.BlockSize != 8 && l.BlockSize != 16 {
			return
		}

		// Each control byte covers a 8 byte x 16 row block of the color surface
		l.Aux = AuxFastClear
		l.AuxStride = memutils.AlignUp(memutils.DivRoundUp(l.BOStride, 8), 128)
		l.AuxHeight = memutils.AlignUp(memutils.DivRoundUp(l.BOHeight, 16), 32)
	}
}
