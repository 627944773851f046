package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maptile/mosaic/pkg/tile"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print tile and pixel counts for every zoom level in the tile set",
	Long: `info reports, for each zoom level the manifest covers, the size of the
full-extent tile grid and the pixel dimensions a full composite would have.

Example:
  mosaic info --tiles ./tiles`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	man, _, err := loadManifest()
	if err != nil {
		return err
	}

	if man.Name != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", man.Name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "bounds: %g,%g,%g,%g  scale: %d\n",
		man.Bounds.MinLon, man.Bounds.MinLat, man.Bounds.MaxLon, man.Bounds.MaxLat, man.Scale)

	for _, s := range tile.Summaries(man.Bounds, man.MinZoom, man.MaxZoom, man.Scale) {
		fmt.Fprintf(cmd.OutOrStdout(), "zoom %2d: %4d x %-4d tiles (%d total), %d x %d px\n",
			s.Zoom, s.TilesX, s.TilesY, s.TileCount, s.PixelsX, s.PixelsY)
	}
	return nil
}
