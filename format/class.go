package format

// Class groups formats that share a texel block size and layout rules. Images whose formats
// share a class may alias each other's memory.
type Class uint32

const (
	ClassUnknown Class = iota
	Class8Bits
	Class16Bits
	Class24Bits
	Class32Bits
	Class48Bits
	Class64Bits
	Class96Bits
	Class128Bits
	Class192Bits
	Class256Bits
	Class64BitBlock
	Class128BitBlock
	ClassD16
	ClassD24
	ClassD32
	ClassS8
	ClassD16S8
	ClassD24S8
	ClassD32S8
	// ClassLinear is used for every image with linear tiling, regardless of format
	ClassLinear
)

var classMapping = map[Class]string{
	ClassUnknown:     "ClassUnknown",
	Class8Bits:       "Class8Bits",
	Class16Bits:      "Class16Bits",
	Class24Bits:      "Class24Bits",
	Class32Bits:      "Class32Bits",
	Class48Bits:      "Class48Bits",
	Class64Bits:      "Class64Bits",
	Class96Bits:      "Class96Bits",
	Class128Bits:     "Class128Bits",
	Class192Bits:     "Class192Bits",
	Class256Bits:     "Class256Bits",
	Class64BitBlock:  "Class64BitBlock",
	Class128BitBlock: "Class128BitBlock",
	ClassD16:         "ClassD16",
	ClassD24:         "ClassD24",
	ClassD32:         "ClassD32",
	ClassS8:          "ClassS8",
	ClassD16S8:       "ClassD16S8",
	ClassD24S8:       "ClassD24S8",
	ClassD32S8:       "ClassD32S8",
	ClassLinear:      "ClassLinear",
}

func (c Class) String() string {
	str, ok := classMapping[c]
	if !ok {
		return "unknown Class"
	}

	return str
}

func classForBits(bits int) Class {
	switch bits {
	case 8:
		return Class8Bits
	case 16:
		return Class16Bits
	case 24:
		return Class24Bits
	case 32:
		return Class32Bits
	case 48:
		return Class48Bits
	case 64:
		return Class64Bits
	case 96:
		return Class96Bits
	case 128:
		return Class128Bits
	case 192:
		return Class192Bits
	case 256:
		return Class256Bits
	}

	return ClassUnknown
}
