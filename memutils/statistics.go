package memutils

import "math"

// Statistics sums up the footprint of a set of images
type Statistics struct {
	ImageCount   int
	RegionCount  int
	TotalBytes   int
	PaddingBytes int
}

func (s *Statistics) Clear() {
	s.ImageCount = 0
	s.RegionCount = 0
	s.TotalBytes = 0
	s.PaddingBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ImageCount += other.ImageCount
	s.RegionCount += other.RegionCount
	s.TotalBytes += other.TotalBytes
	s.PaddingBytes += other.PaddingBytes
}

// DetailedStatistics breaks the footprint down by region kind and tracks the smallest and
// largest image seen
type DetailedStatistics struct {
	Statistics
	PrimaryBytes int
	AuxBytes     int
	StencilBytes int
	ImageSizeMin int
	ImageSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.PrimaryBytes = 0
	s.AuxBytes = 0
	s.StencilBytes = 0
	s.ImageSizeMin = math.MaxInt
	s.ImageSizeMax = 0
}

// AddImage accounts for one image of totalSize bytes, of which usedBytes are covered by regions.
// The remainder is alignment padding between regions.
func (s *DetailedStatistics) AddImage(totalSize int, usedBytes int) {
	s.ImageCount++
	s.TotalBytes += totalSize
	s.PaddingBytes += totalSize - usedBytes

	if totalSize < s.ImageSizeMin {
		s.ImageSizeMin = totalSize
	}

	if totalSize > s.ImageSizeMax {
		s.ImageSizeMax = totalSize
	}
}

func (s *DetailedStatistics) AddPrimary(size int) {
	s.RegionCount++
	s.PrimaryBytes += size
}

func (s *DetailedStatistics) AddAux(size int) {
	s.RegionCount++
	s.AuxBytes += size
}

func (s *DetailedStatistics) AddStencil(size int) {
	s.RegionCount++
	s.StencilBytes += size
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.PrimaryBytes += other.PrimaryBytes
	s.AuxBytes += other.AuxBytes
	s.StencilBytes += other.StencilBytes

	if other.ImageSizeMin < s.ImageSizeMin {
		s.ImageSizeMin = other.ImageSizeMin
	}

	if other.ImageSizeMax > s.ImageSizeMax {
		s.ImageSizeMax = other.ImageSizeMax
	}
}
