// Package manifest reads the metadata.json file that describes a rendered
// tile set: its geographic bounds, zoom range and pixel scale.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/maptile/mosaic/pkg/tile"
)

// DefaultPath is where tile renderers drop the manifest, relative to the
// tile tree root.
const DefaultPath = "metadata.json"

// Metadata mirrors the raw manifest JSON. All numeric fields are encoded as
// strings by the generators that write these files.
type Metadata struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Legend          string `json:"legend"`
	Attribution     string `json:"attribution"`
	Type            string `json:"type"`
	Version         string `json:"version"`
	Format          string `json:"format"`
	FormatArguments string `json:"format_arguments"`
	MinZoom         string `json:"minzoom"`
	MaxZoom         string `json:"maxzoom"`
	Bounds          string `json:"bounds"`
	Scale           string `json:"scale"`
	Profile         string `json:"profile"`
	Scheme          string `json:"scheme"`
	Generator       string `json:"generator"`
}

// Manifest is the validated, parsed view of a Metadata record. It is
// immutable after Load.
type Manifest struct {
	Name    string
	Bounds  tile.Bounds
	MinZoom int
	MaxZoom int
	Scale   int
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Read parses a manifest from r and validates its invariants.
func Read(r io.Reader) (*Manifest, error) {
	var md Metadata
	if err := json.NewDecoder(r).Decode(&md); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return md.Parse()
}

// Parse converts the raw string fields into a validated Manifest.
func (md Metadata) Parse() (*Manifest, error) {
	minZoom, err := strconv.Atoi(md.MinZoom)
	if err != nil {
		return nil, fmt.Errorf("invalid minzoom %q: %v", md.MinZoom, err)
	}
	maxZoom, err := strconv.Atoi(md.MaxZoom)
	if err != nil {
		return nil, fmt.Errorf("invalid maxzoom %q: %v", md.MaxZoom, err)
	}
	if minZoom < 0 || minZoom > maxZoom {
		return nil, fmt.Errorf("zoom range [%d, %d] is invalid", minZoom, maxZoom)
	}

	bounds, err := tile.ParseBounds(md.Bounds)
	if err != nil {
		return nil, err
	}

	scale := 1
	if md.Scale != "" {
		f, err := strconv.ParseFloat(md.Scale, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scale %q: %v", md.Scale, err)
		}
		scale = int(math.Round(f))
		if scale < 1 {
			return nil, fmt.Errorf("scale %q must be at least 1", md.Scale)
		}
	}

	return &Manifest{
		Name:    md.Name,
		Bounds:  bounds,
		MinZoom: minZoom,
		MaxZoom: maxZoom,
		Scale:   scale,
	}, nil
}
