package surface

// SetFastClearColor records the color of the image's most recent fast clear. It never changes
// the image's footprint.
func (i *Image) SetFastClearColor(color [4]float32) {
	i.clearColor = color
}

// SetFastClearDepth records the depth value of the image's most recent fast clear
func (i *Image) SetFastClearDepth(depth float32) {
	i.clearDepth = depth
}

func (i *Image) FastClearColor() [4]float32 {
	return i.clearColor
}

func (i *Image) FastClearDepth() float32 {
	return i.clearDepth
}
