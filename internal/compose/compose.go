// Package compose places tiles from a local tile tree onto a single canvas
// and writes the result as one PNG.
package compose

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/maptile/mosaic/pkg/tile"
)

// Compositor drives one composition run. Tiles are loaded strictly
// sequentially; each one is drawn at its absolute pixel offset, so neither
// iteration order nor a skipped tile affects any other tile's pixels.
type Compositor struct {
	Loader Loader
	Log    io.Writer // diagnostics, defaults to os.Stderr
}

// Result summarizes a finished run. Tiles counts the slots attempted, not
// the loads that succeeded.
type Result struct {
	Width  int
	Height int
	Tiles  int
	Loaded int
}

// Render composites the window's tile rectangle onto a fresh canvas.
// Missing or unreadable tiles are logged and left transparent. The canvas
// dimensions are (maxX-minX)*scale*256 by (maxY-minY)*scale*256; a
// non-positive dimension is an error and nothing is rendered.
func (c *Compositor) Render(ctx context.Context, w *Window) (*image.NRGBA, *Result, error) {
	if w.Zoom == nil {
		return nil, nil, fmt.Errorf("zoom is not resolved")
	}
	rect, err := w.Rect()
	if err != nil {
		return nil, nil, err
	}

	cell := w.Scale * tile.TileSize
	width := rect.Width() * cell
	height := rect.Height() * cell
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("invalid canvas size %dx%d for tile window %s", width, height, rect)
	}

	logw := c.Log
	if logw == nil {
		logw = os.Stderr
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	loaded := 0

	for x := rect.MinX; x < rect.MaxX; x++ {
		for y := rect.MinY; y < rect.MaxY; y++ {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}

			img, err := c.Loader.Load(ctx, *w.Zoom, x, y)
			if err != nil {
				fmt.Fprintf(logw, "skipping tile %d/%d/%d: %v\n", *w.Zoom, x, y, err)
				continue
			}

			dst := image.Rect((x-rect.MinX)*cell, (y-rect.MinY)*cell, (x-rect.MinX+1)*cell, (y-rect.MinY+1)*cell)
			if b := img.Bounds(); b.Dx() == cell && b.Dy() == cell {
				draw.Draw(canvas, dst, img, b.Min, draw.Src)
			} else {
				// Tile stored at native size; scale it up to the output cell.
				xdraw.NearestNeighbor.Scale(canvas, dst, img, img.Bounds(), xdraw.Src, nil)
			}
			loaded++
		}
	}

	return canvas, &Result{Width: width, Height: height, Tiles: rect.Count(), Loaded: loaded}, nil
}

// Compose renders the window and writes the canvas to the window's output
// path in a single encode at the end of the run.
func (c *Compositor) Compose(ctx context.Context, w *Window) (*Result, error) {
	canvas, res, err := c.Render(ctx, w)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(w.Output)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas); err != nil {
		return nil, fmt.Errorf("encode %s: %w", w.Output, err)
	}
	return res, nil
}
