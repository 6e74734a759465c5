package noise

import (
	"image"
	"image/color"
	"math"
)

type Channel int

const (
	ChannelNone Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
	ChannelAlpha
)

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	case ChannelAlpha:
		return "alpha"
	}
	return "none"
}

// ParseChannel accepts the names returned by Channel.String plus the single
// letter forms r, g, b and a.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "", "none":
		return ChannelNone, true
	case "red", "r":
		return ChannelRed, true
	case "green", "g":
		return ChannelGreen, true
	case "blue", "b":
		return ChannelBlue, true
	case "alpha", "a":
		return ChannelAlpha, true
	}
	return ChannelNone, false
}

// ImageChannel samples one channel of a raster image as a field over a world
// space rectangle. World x selects the image row and world y the column, so
// an image authored top-down lines up with the scene's Z-up coordinates.
// Coordinates outside the rectangle are clamped to the edge pixels.
type ImageChannel struct {
	img     image.Image
	channel Channel
	domain  Rect
}

func NewImageChannel(img image.Image, channel Channel, domain Rect) *ImageChannel {
	if img == nil {
		panic("noise: image channel needs an image")
	}
	if channel == ChannelNone {
		panic("noise: image channel needs a channel")
	}
	return &ImageChannel{img: img, channel: channel, domain: domain}
}

// Pixel returns the image coordinates a world position maps to.
func (c *ImageChannel) Pixel(x, y float64) (int, int) {
	bounds := c.img.Bounds()
	row := pixelIndex((x-c.domain.MinX)/c.domain.Width(), bounds.Dy())
	col := pixelIndex((y-c.domain.MinY)/c.domain.Height(), bounds.Dx())
	return bounds.Min.X + col, bounds.Min.Y + row
}

func (c *ImageChannel) Get(x, y float64) float64 {
	px, py := c.Pixel(x, y)
	pixel := color.NRGBAModel.Convert(c.img.At(px, py)).(color.NRGBA)
	var value uint8
	switch c.channel {
	case ChannelRed:
		value = pixel.R
	case ChannelGreen:
		value = pixel.G
	case ChannelBlue:
		value = pixel.B
	case ChannelAlpha:
		value = pixel.A
	}
	return float64(value) / 255
}

func pixelIndex(normalized float64, size int) int {
	if math.IsNaN(normalized) || normalized <= 0 {
		return 0
	}
	index := math.Floor(normalized * float64(size))
	if index >= float64(size-1) {
		return size - 1
	}
	return int(index)
}
