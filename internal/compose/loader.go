package compose

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
)

// Loader supplies tile images for the compositor. Loads are issued one at a
// time today, but every call targets a disjoint destination region, so the
// interface also admits a concurrent implementation.
type Loader interface {
	Load(ctx context.Context, zoom, x, y int) (image.Image, error)
}

// DirLoader reads tiles from a {zoom}/{x}/{y}.png tree under Base.
type DirLoader struct {
	Base string
}

// Load opens and decodes one tile file. A missing file surfaces as the
// underlying *os.PathError; the driver treats any load error as an absent
// tile.
func (l DirLoader) Load(ctx context.Context, zoom, x, y int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.Base, strconv.Itoa(zoom), strconv.Itoa(x), strconv.Itoa(y)+".png")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
