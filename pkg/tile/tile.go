// Package tile implements the slippy-map tile arithmetic shared by the
// compositor and the reporting commands: the Web-Mercator projection from
// geographic degrees to fractional tile coordinates, and the derivation of
// integer tile rectangles from geographic bounding boxes.
package tile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TileSize is the native edge length of a tile in pixels.
const TileSize = 256

// LonLatToTile converts lon/lat degrees to fractional tile coordinates at
// the given zoom level.
// http://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
//
// Latitudes at or beyond the poles are not representable in Web-Mercator;
// callers pass bounds from a validated manifest, which keeps latitude well
// inside (-90, 90).
func LonLatToTile(lon, lat float64, zoom int) (float64, float64) {
	latRad := lat * math.Pi / 180
	n := float64(uint64(1) << uint(zoom))

	x := (lon + 180) / 360 * n
	y := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n

	return x, y
}

// Bounds is a geographic bounding box in WGS84 degrees.
type Bounds struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// ParseBounds parses a "minLon,minLat,maxLon,maxLat" string.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("bounds must be in format 'minLon,minLat,maxLon,maxLat', got %q", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("invalid bounds component %q: %v", p, err)
		}
		vals[i] = v
	}

	b := Bounds{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}
	if b.MinLon >= b.MaxLon {
		return Bounds{}, fmt.Errorf("bounds: minLon %g must be less than maxLon %g", b.MinLon, b.MaxLon)
	}
	if b.MinLat >= b.MaxLat {
		return Bounds{}, fmt.Errorf("bounds: minLat %g must be less than maxLat %g", b.MinLat, b.MaxLat)
	}
	return b, nil
}

// Rect is a half-open rectangle of integer tile indices: x in [MinX, MaxX),
// y in [MinY, MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the rectangle width in tiles.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the rectangle height in tiles.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// Count returns the number of tile slots covered by the rectangle.
func (r Rect) Count() int { return r.Width() * r.Height() }

// Empty reports whether the rectangle covers no tiles. Inverted rectangles
// from an out-of-range intersection are empty too.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("x:[%d,%d) y:[%d,%d)", r.MinX, r.MaxX, r.MinY, r.MaxY)
}

// Extent returns the tile rectangle covering the geographic bounds at the
// given zoom. The top-left corner is floored and the bottom-right corner is
// ceiled, so the rectangle may over-cover the bounds by up to one tile on
// each edge. That guarantees the composite fully contains the requested
// geography.
func Extent(b Bounds, zoom int) Rect {
	x1, y1 := LonLatToTile(b.MinLon, b.MaxLat, zoom) // top-left
	x2, y2 := LonLatToTile(b.MaxLon, b.MinLat, zoom) // bottom-right

	return Rect{
		MinX: int(math.Floor(x1)),
		MinY: int(math.Floor(y1)),
		MaxX: int(math.Ceil(x2)),
		MaxY: int(math.Ceil(y2)),
	}
}

// Intersect clips the tile extent of the requested bounds against the tile
// extent of the maximum available bounds at the given zoom. When the
// requested bounds lie outside the maximum the result is inverted; callers
// detect that with Empty.
func Intersect(requested, max Bounds, zoom int) Rect {
	req := Extent(requested, zoom)
	full := Extent(max, zoom)

	return Rect{
		MinX: maxInt(req.MinX, full.MinX),
		MinY: maxInt(req.MinY, full.MinY),
		MaxX: minInt(req.MaxX, full.MaxX),
		MaxY: minInt(req.MaxY, full.MaxY),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
