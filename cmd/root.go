package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maptile/mosaic/internal/compose"
	"github.com/maptile/mosaic/internal/manifest"
	"github.com/maptile/mosaic/internal/prompt"
	"github.com/maptile/mosaic/pkg/tile"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Composite a rendered slippy-map tile tree into a single PNG",
	Long: `mosaic assembles pre-rendered map tiles into one composite image.

It reads the tile set's metadata.json manifest for bounds, zoom range and
scale, resolves a zoom level and tile window, loads tiles from the
{zoom}/{x}/{y}.png directory layout and writes a single PNG. Any window
dimension not given on the command line is asked for interactively, bounded
by what the tile set actually contains.

Examples:
  # Fully interactive: prompt for zoom and the tile window
  mosaic --tiles ./tiles

  # Everything the tile set has at zoom 12
  mosaic --tiles ./tiles --zoom 12 --full -o city.png

  # A geographic sub-window, clipped to the available extent
  mosaic --zoom 10 --bounds 113.51,22.06,114.50,22.57

  # Per-zoom tile and pixel counts
  mosaic info

  # Serve composites over HTTP
  mosaic serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mosaic.yaml)")
	rootCmd.PersistentFlags().StringP("tiles", "t", ".", "tile tree directory ({zoom}/{x}/{y}.png)")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "manifest path (default: metadata.json inside the tile tree)")

	// Output options
	rootCmd.Flags().StringP("output", "o", "", "output file (default: output-{zoom}.png)")

	// Window options
	rootCmd.Flags().IntP("zoom", "z", 0, "zoom level")
	rootCmd.Flags().StringP("bounds", "b", "", "geographic sub-bounds as 'minLon,minLat,maxLon,maxLat'")
	rootCmd.Flags().BoolP("full", "f", false, "use the full manifest extent, skip all prompts")
	rootCmd.Flags().Int("min-x", 0, "west edge of the tile window")
	rootCmd.Flags().Int("max-x", 0, "east edge of the tile window (exclusive)")
	rootCmd.Flags().Int("min-y", 0, "north edge of the tile window")
	rootCmd.Flags().Int("max-y", 0, "south edge of the tile window (exclusive)")

	// Bind flags to viper for root command
	viper.BindPFlag("tiles", rootCmd.PersistentFlags().Lookup("tiles"))
	viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("bounds", rootCmd.Flags().Lookup("bounds"))
	viper.BindPFlag("full", rootCmd.Flags().Lookup("full"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".mosaic" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mosaic")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadManifest resolves the manifest path and loads it. The manifest is
// fatal-on-error: nothing else runs without it.
func loadManifest() (*manifest.Manifest, string, error) {
	tilesDir := viper.GetString("tiles")

	path := viper.GetString("manifest")
	if path == "" {
		path = filepath.Join(tilesDir, manifest.DefaultPath)
	}

	man, err := manifest.Load(path)
	if err != nil {
		return nil, "", err
	}
	return man, tilesDir, nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	man, tilesDir, err := loadManifest()
	if err != nil {
		return err
	}

	win := &compose.Window{Scale: man.Scale}

	// A flag left untouched means "not provided", which keeps an explicit
	// 0 distinguishable from an unset field.
	flagInt := func(name string) *int {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, err := cmd.Flags().GetInt(name)
		if err != nil {
			return nil
		}
		return &v
	}
	win.Zoom = flagInt("zoom")
	win.MinX = flagInt("min-x")
	win.MaxX = flagInt("max-x")
	win.MinY = flagInt("min-y")
	win.MaxY = flagInt("max-y")

	full := viper.GetBool("full")

	var sub *tile.Bounds
	if s := viper.GetString("bounds"); s != "" {
		if full {
			return fmt.Errorf("--full and --bounds are mutually exclusive")
		}
		b, err := tile.ParseBounds(s)
		if err != nil {
			return err
		}
		sub = &b
	}

	ask := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err := compose.Negotiate(win, man, ask, full, sub); err != nil {
		return err
	}

	win.Output = viper.GetString("output")
	if win.Output == "" {
		win.Output = fmt.Sprintf("output-%d.png", *win.Zoom)
	}

	comp := &compose.Compositor{
		Loader: compose.DirLoader{Base: tilesDir},
		Log:    cmd.ErrOrStderr(),
	}

	res, err := comp.Compose(cmd.Context(), win)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s: %dx%d px, %d tiles\n", win.Output, res.Width, res.Height, res.Tiles)
	return nil
}
