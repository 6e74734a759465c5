package noise

// Rasterize samples the field at the centres of a resolution x resolution
// grid laid over the rectangle. The result is row-major with y selecting the
// row, which is the layout glTexImage2D expects for a texture whose s axis
// runs along world x.
func Rasterize(f Field, area Rect, resolution int) []float32 {
	if resolution <= 0 {
		return nil
	}
	data := make([]float32, resolution*resolution)
	dx := area.Width() / float64(resolution)
	dy := area.Height() / float64(resolution)
	for row := 0; row < resolution; row++ {
		y := area.MinY + (float64(row)+0.5)*dy
		for col := 0; col < resolution; col++ {
			x := area.MinX + (float64(col)+0.5)*dx
			data[row*resolution+col] = float32(f.Get(x, y))
		}
	}
	return data
}

// Range returns the smallest and largest value of a raster.
func Range(data []float32) (float32, float32) {
	if len(data) == 0 {
		return 0, 0
	}
	low, high := data[0], data[0]
	for _, v := range data[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	return low, high
}
