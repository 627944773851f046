package tile

// LevelSummary describes the full-extent tile grid at one zoom level.
type LevelSummary struct {
	Zoom      int
	TilesX    int
	TilesY    int
	TileCount int
	PixelsX   int
	PixelsY   int
}

// Summarize computes the full-extent grid and pixel dimensions for one zoom
// level. Pixel dimensions include the manifest scale factor.
func Summarize(b Bounds, zoom, scale int) LevelSummary {
	r := Extent(b, zoom)
	return LevelSummary{
		Zoom:      zoom,
		TilesX:    r.Width(),
		TilesY:    r.Height(),
		TileCount: r.Count(),
		PixelsX:   r.Width() * scale * TileSize,
		PixelsY:   r.Height() * scale * TileSize,
	}
}

// Summaries computes one LevelSummary per zoom level in [minZoom, maxZoom].
func Summaries(b Bounds, minZoom, maxZoom, scale int) []LevelSummary {
	var out []LevelSummary
	for z := minZoom; z <= maxZoom; z++ {
		out = append(out, Summarize(b, z, scale))
	}
	return out
}
