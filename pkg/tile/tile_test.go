package tile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The Hong Kong tile set used throughout: a small coastal extent that
// exercises floor/ceil snapping on both axes.
var hongKong = Bounds{
	MinLon: 113.516359,
	MinLat: 22.067786,
	MaxLon: 114.502779,
	MaxLat: 22.568333,
}

func TestLonLatToTile_KnownPoints(t *testing.T) {
	x, y := LonLatToTile(0, 0, 0)
	assert.InDelta(t, 0.5, x, 1e-12)
	assert.InDelta(t, 0.5, y, 1e-12)

	x, y = LonLatToTile(-180, 85, 4)
	assert.InDelta(t, 0.0, x, 1e-12)
	assert.InDelta(t, 0.02620663657686695, y, 1e-9) // near the top edge
	assert.Less(t, y, 1.0)

	// Berlin city centre at street zoom.
	x, y = LonLatToTile(13.377704, 52.516275, 17)
	assert.InDelta(t, 70406.67338524444, x, 1e-6)
	assert.InDelta(t, 42987.967610252264, y, 1e-6)
}

func TestLonLatToTile_StaysInRange(t *testing.T) {
	points := []struct{ lon, lat float64 }{
		{-180, -85}, {-180, 85}, {180, -85}, {180, 85},
		{0, 0}, {114.0, 22.3}, {-122.4194, 37.7749}, {139.7531, 35.6824},
	}
	for zoom := 0; zoom <= 18; zoom += 3 {
		n := float64(uint64(1) << uint(zoom))
		for _, p := range points {
			x, y := LonLatToTile(p.lon, p.lat, zoom)
			assert.GreaterOrEqual(t, x, 0.0, "x at zoom %d for %v", zoom, p)
			assert.LessOrEqual(t, x, n, "x at zoom %d for %v", zoom, p)
			assert.GreaterOrEqual(t, y, 0.0, "y at zoom %d for %v", zoom, p)
			assert.LessOrEqual(t, y, n, "y at zoom %d for %v", zoom, p)
		}
	}
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		zoom   int
		want   Rect
	}{
		{
			name:   "hong kong zoom 8",
			bounds: hongKong,
			zoom:   8,
			want:   Rect{MinX: 208, MinY: 111, MaxX: 210, MaxY: 112},
		},
		{
			name:   "hong kong zoom 9",
			bounds: hongKong,
			zoom:   9,
			want:   Rect{MinX: 417, MinY: 223, MaxX: 419, MaxY: 224},
		},
		{
			name:   "hong kong zoom 10",
			bounds: hongKong,
			zoom:   10,
			want:   Rect{MinX: 834, MinY: 446, MaxX: 838, MaxY: 448},
		},
		{
			name:   "whole world zoom 0",
			bounds: Bounds{MinLon: -180, MinLat: -85, MaxLon: 180, MaxLat: 85},
			zoom:   0,
			want:   Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extent(tt.bounds, tt.zoom)
			assert.Equal(t, tt.want, got)
			// Deterministic: same input, same rectangle.
			assert.Equal(t, got, Extent(tt.bounds, tt.zoom))
		})
	}
}

func TestExtent_ZoomRoughlyDoublesDimensions(t *testing.T) {
	for zoom := 4; zoom < 14; zoom++ {
		cur := Extent(hongKong, zoom)
		next := Extent(hongKong, zoom+1)

		// The fractional span doubles exactly; floor/ceil snapping can
		// shift each integer edge by at most one tile.
		assert.GreaterOrEqual(t, next.Width(), 2*cur.Width()-4, "width at zoom %d", zoom)
		assert.LessOrEqual(t, next.Width(), 2*cur.Width()+2, "width at zoom %d", zoom)
		assert.GreaterOrEqual(t, next.Height(), 2*cur.Height()-4, "height at zoom %d", zoom)
		assert.LessOrEqual(t, next.Height(), 2*cur.Height()+2, "height at zoom %d", zoom)
	}
}

func TestIntersect(t *testing.T) {
	t.Run("subset stays within the full extent", func(t *testing.T) {
		sub := Bounds{MinLon: 113.9, MinLat: 22.2, MaxLon: 114.2, MaxLat: 22.4}
		for zoom := 6; zoom <= 14; zoom++ {
			full := Extent(hongKong, zoom)
			got := Intersect(sub, hongKong, zoom)

			require.False(t, got.Empty(), "zoom %d", zoom)
			assert.GreaterOrEqual(t, got.MinX, full.MinX)
			assert.GreaterOrEqual(t, got.MinY, full.MinY)
			assert.LessOrEqual(t, got.MaxX, full.MaxX)
			assert.LessOrEqual(t, got.MaxY, full.MaxY)
		}
	})

	t.Run("overhanging request is clipped", func(t *testing.T) {
		wide := Bounds{MinLon: 100, MinLat: 10, MaxLon: 130, MaxLat: 30}
		for zoom := 6; zoom <= 12; zoom++ {
			assert.Equal(t, Extent(hongKong, zoom), Intersect(wide, hongKong, zoom), "zoom %d", zoom)
		}
	})

	t.Run("disjoint request yields an empty rectangle", func(t *testing.T) {
		elsewhere := Bounds{MinLon: -10, MinLat: 40, MaxLon: -5, MaxLat: 45}
		got := Intersect(elsewhere, hongKong, 10)
		assert.True(t, got.Empty())
	})
}

func TestRect(t *testing.T) {
	r := Rect{MinX: 100, MinY: 50, MaxX: 102, MaxY: 51}
	assert.Equal(t, 2, r.Width())
	assert.Equal(t, 1, r.Height())
	assert.Equal(t, 2, r.Count())
	assert.False(t, r.Empty())

	inverted := Rect{MinX: 10, MinY: 10, MaxX: 8, MaxY: 12}
	assert.True(t, inverted.Empty())
	assert.True(t, Rect{}.Empty())
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Bounds
		wantErr bool
	}{
		{
			name: "valid",
			in:   "113.516359,22.067786,114.502779,22.568333",
			want: hongKong,
		},
		{
			name: "spaces tolerated",
			in:   " -1.5, -2.5 , 1.5 , 2.5 ",
			want: Bounds{MinLon: -1.5, MinLat: -2.5, MaxLon: 1.5, MaxLat: 2.5},
		},
		{name: "too few components", in: "1,2,3", wantErr: true},
		{name: "not a number", in: "a,2,3,4", wantErr: true},
		{name: "lon order swapped", in: "114.5,22.0,113.5,22.5", wantErr: true},
		{name: "lat order swapped", in: "113.5,22.5,114.5,22.0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBounds(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(hongKong, 8, 2)
	assert.Equal(t, 8, s.Zoom)
	assert.Equal(t, 2, s.TilesX)
	assert.Equal(t, 1, s.TilesY)
	assert.Equal(t, 2, s.TileCount)
	assert.Equal(t, 2*2*TileSize, s.PixelsX)
	assert.Equal(t, 1*2*TileSize, s.PixelsY)
}

func TestSummaries(t *testing.T) {
	got := Summaries(hongKong, 8, 10, 1)
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, 8+i, s.Zoom)
		r := Extent(hongKong, s.Zoom)
		assert.Equal(t, r.Count(), s.TileCount)
		assert.Equal(t, r.Width()*TileSize, s.PixelsX)
		assert.Equal(t, r.Height()*TileSize, s.PixelsY)
	}
}

func TestLonLatToTile_FractionalPrecision(t *testing.T) {
	// The fractional coordinate carries the sub-tile position; snapping
	// must be left to the caller.
	x, y := LonLatToTile(hongKong.MinLon, hongKong.MaxLat, 8)
	assert.InDelta(t, 208.72274417777774, x, 1e-9)
	assert.InDelta(t, 111.51955654562998, y, 1e-9)
	assert.NotEqual(t, x, math.Floor(x))
	assert.NotEqual(t, y, math.Floor(y))
}
