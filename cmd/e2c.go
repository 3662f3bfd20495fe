package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/pano360/internal/convert"
	"github.com/kiesman99/pano360/pkg/imgio"
	"github.com/kiesman99/pano360/pkg/pano"
)

var e2cCmd = &cobra.Command{
	Use:   "e2c [equirect image]",
	Short: "Extract six cube faces from an equirectangular panorama",
	Long: `Extract six square cube faces from an equirectangular panorama.

The faces are written as front, right, back, left, up and down images into
the output directory.

Examples:
  # 512px faces from a panorama
  pano360 e2c pano.png --face-size 512 --out-dir ./cube

  # Nearest-neighbor sampling, TIFF faces
  pano360 e2c pano.png --face-size 256 --out-dir ./cube -m nearest -f tiff`,
	Args: cobra.ExactArgs(1),
	RunE: runE2C,
}

func init() {
	rootCmd.AddCommand(e2cCmd)

	e2cCmd.Flags().Int("face-size", 0, "face edge length in pixels (required)")
	e2cCmd.Flags().String("out-dir", ".", "directory to write the six face images into")
	e2cCmd.Flags().StringP("mode", "m", "bilinear", "interpolation mode (nearest|bilinear)")
	e2cCmd.Flags().StringP("format", "f", "png", "output format (png|tiff)")

	viper.BindPFlag("face-size", e2cCmd.Flags().Lookup("face-size"))
	viper.BindPFlag("out-dir", e2cCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("e2c.mode", e2cCmd.Flags().Lookup("mode"))
	viper.BindPFlag("e2c.format", e2cCmd.Flags().Lookup("format"))
}

func runE2C(cmd *cobra.Command, args []string) error {
	faceSize := viper.GetInt("face-size")
	if faceSize == 0 {
		return fmt.Errorf("face size is required (use --face-size)")
	}

	mode, err := pano.ParseMode(viper.GetString("e2c.mode"))
	if err != nil {
		return err
	}

	format, err := imgio.ParseFormat(viper.GetString("e2c.format"))
	if err != nil {
		return err
	}

	eq, err := readImage(args[0])
	if err != nil {
		return err
	}

	faces, err := convert.EquirectToCube(eq, faceSize, mode)
	if err != nil {
		return err
	}

	outDir := viper.GetString("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	ext := ".png"
	if format == imgio.FormatTIFF {
		ext = ".tif"
	}
	for f, img := range faces {
		path := filepath.Join(outDir, pano.Face(f).String()+ext)
		if err := writeImage(path, img, format); err != nil {
			return fmt.Errorf("face %s: %v", pano.Face(f), err)
		}
	}
	return nil
}
