package surface

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/surface/memutils"
	"github.com/vkngwrapper/surface/object"
	"golang.org/x/exp/slices"
)

// CalculateStatistics sums up the footprint of every live image
func (d *Device) CalculateStatistics(stats *memutils.DetailedStatistics) {
	d.logger.Debug("Device::CalculateStatistics")

	stats.Clear()

	d.imagesMutex.RLock()
	defer d.imagesMutex.RUnlock()

	d.images.Iter(func(_ object.Handle, image *Image) bool {
		image.addStatistics(stats)
		return false
	})
}

func printStatistics(json *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("ImageCount").Int(stats.ImageCount)
	json.Name("RegionCount").Int(stats.RegionCount)
	json.Name("TotalBytes").Int(stats.TotalBytes)
	json.Name("PaddingBytes").Int(stats.PaddingBytes)
	json.Name("PrimaryBytes").Int(stats.PrimaryBytes)
	json.Name("AuxBytes").Int(stats.AuxBytes)
	json.Name("StencilBytes").Int(stats.StencilBytes)

	if stats.ImageCount > 0 {
		json.Name("ImageSizeMin").Int(stats.ImageSizeMin)
		json.Name("ImageSizeMax").Int(stats.ImageSizeMax)
	}
}

// BuildStatsString returns a json document describing the footprint of every live image.
// When detailed is true, each image is listed along with its regions, in handle order.
func (d *Device) BuildStatsString(detailed bool) string {
	d.logger.Debug("Device::BuildStatsString")

	var stats memutils.DetailedStatistics
	d.CalculateStatistics(&stats)

	writer := jwriter.NewWriter()
	root := writer.Object()

	total := root.Name("Total").Object()
	printStatistics(&total, &stats)
	total.End()

	if detailed {
		images := d.liveImages()
		handles := make([]object.Handle, 0, len(images))
		byHandle := make(map[object.Handle]*Image, len(images))
		for _, image := range images {
			handles = append(handles, image.Handle())
			byHandle[image.Handle()] = image
		}
		slices.Sort(handles)

		list := root.Name("Images").Array()
		for _, handle := range handles {
			obj := list.Object()
			byHandle[handle].PrintParameters(&obj)
			obj.End()
		}
		list.End()
	}

	root.End()

	return string(writer.Bytes())
}
