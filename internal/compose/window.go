package compose

import (
	"fmt"

	"github.com/maptile/mosaic/internal/manifest"
	"github.com/maptile/mosaic/internal/prompt"
	"github.com/maptile/mosaic/pkg/tile"
)

// Window is the resolved parameter set for one composition run. Fields
// start out nil ("not provided") and are filled in from flags, from the
// full/bounds shortcut modes, or by prompting, in that order. Once Compose
// starts the window is treated as immutable.
type Window struct {
	Zoom *int
	MinX *int
	MinY *int
	MaxX *int
	MaxY *int

	Scale  int
	Output string
}

// Rect returns the tile rectangle of a fully resolved window.
func (w *Window) Rect() (tile.Rect, error) {
	if w.MinX == nil || w.MinY == nil || w.MaxX == nil || w.MaxY == nil {
		return tile.Rect{}, fmt.Errorf("tile window is not fully resolved")
	}
	return tile.Rect{MinX: *w.MinX, MinY: *w.MinY, MaxX: *w.MaxX, MaxY: *w.MaxY}, nil
}

// SetRect fills all four window fields from a tile rectangle.
func (w *Window) SetRect(r tile.Rect) {
	w.MinX, w.MinY = intPtr(r.MinX), intPtr(r.MinY)
	w.MaxX, w.MaxY = intPtr(r.MaxX), intPtr(r.MaxY)
}

// Negotiate fills every unset field of the window. Zoom comes first, from a
// flag or a prompt bounded by the manifest zoom range. The two shortcut
// modes then bypass all range prompts: full selects the whole manifest
// extent, sub intersects the given bounds with it. Both require zoom to be
// supplied up front, and neither overrides an edge that was already set
// individually: the fallback chain is flag, then mode, then prompt, per
// field. Without a mode, each missing window edge is prompted for
// individually, bounded and defaulted by the full extent at the chosen
// zoom.
func Negotiate(w *Window, man *manifest.Manifest, ask *prompt.Asker, full bool, sub *tile.Bounds) error {
	if full || sub != nil {
		if w.Zoom == nil {
			return fmt.Errorf("zoom must be given explicitly when using --full or --bounds")
		}
		var r tile.Rect
		if full {
			r = tile.Extent(man.Bounds, *w.Zoom)
		} else {
			r = tile.Intersect(*sub, man.Bounds, *w.Zoom)
		}
		if w.MinX == nil {
			w.MinX = intPtr(r.MinX)
		}
		if w.MinY == nil {
			w.MinY = intPtr(r.MinY)
		}
		if w.MaxX == nil {
			w.MaxX = intPtr(r.MaxX)
		}
		if w.MaxY == nil {
			w.MaxY = intPtr(r.MaxY)
		}
		return nil
	}

	if w.Zoom == nil {
		z, err := ask.IntInRange("zoom level", man.MinZoom, man.MaxZoom, nil)
		if err != nil {
			return err
		}
		w.Zoom = &z
	}

	fullRect := tile.Extent(man.Bounds, *w.Zoom)

	if w.MinX == nil {
		v, err := ask.IntInRange("min tile x", fullRect.MinX, fullRect.MaxX, intPtr(fullRect.MinX))
		if err != nil {
			return err
		}
		w.MinX = &v
	}
	if w.MaxX == nil {
		v, err := ask.IntInRange("max tile x", *w.MinX, fullRect.MaxX, intPtr(fullRect.MaxX))
		if err != nil {
			return err
		}
		w.MaxX = &v
	}
	if w.MinY == nil {
		v, err := ask.IntInRange("min tile y", fullRect.MinY, fullRect.MaxY, intPtr(fullRect.MinY))
		if err != nil {
			return err
		}
		w.MinY = &v
	}
	if w.MaxY == nil {
		v, err := ask.IntInRange("max tile y", *w.MinY, fullRect.MaxY, intPtr(fullRect.MaxY))
		if err != nil {
			return err
		}
		w.MaxY = &v
	}

	return nil
}

func intPtr(v int) *int { return &v }
