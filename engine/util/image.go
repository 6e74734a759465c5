package util

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage reads any registered image format (png, jpeg, bmp, tiff,
// webp) into a tightly packed NRGBA image with its origin at (0, 0). With
// flipY the first row of the result is the last row of the source, which is
// what glTexImage2D expects for images authored top-down.
func DecodeImage(r io.Reader, flipY bool) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode image")
	}
	return ToNRGBA(img, flipY), nil
}

func LoadImage(filePath string, flipY bool) (*image.NRGBA, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open image %s", filePath)
	}
	defer file.Close()
	img, err := DecodeImage(file, flipY)
	if err != nil {
		return nil, errors.Wrapf(err, "image %s", filePath)
	}
	return img, nil
}

func MustLoadImage(filePath string, flipY bool) *image.NRGBA {
	img, err := LoadImage(filePath, flipY)
	if err != nil {
		panic(err)
	}
	return img
}

func ToNRGBA(img image.Image, flipY bool) *image.NRGBA {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	if !flipY {
		return nrgba
	}
	rowLength := bounds.Dx() * 4
	row := make([]uint8, rowLength)
	for y := 0; y < bounds.Dy()/2; y++ {
		top := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+rowLength]
		bottomY := bounds.Dy() - y - 1
		bottom := nrgba.Pix[bottomY*nrgba.Stride : bottomY*nrgba.Stride+rowLength]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return nrgba
}

// SolidImage is a 1x1 image of one color, used for placeholder textures.
func SolidImage(r, g, b, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = r, g, b, a
	return img
}
