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

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pano360",
	Short: "Convert between cubemap and equirectangular 360° panoramas",
	Long: `pano360 resamples 360° panoramas between cubemap faces and
equirectangular projections.

The root command converts six cube faces into one equirectangular image.
Faces are given in front, right, back, left, up, down order, either as six
--face flags or as a directory holding front.png, right.png, back.png,
left.png, up.png and down.png.

Examples:
  # Six explicit faces to a 2048x4096 panorama
  pano360 -F front.png -F right.png -F back.png -F left.png -F up.png -F down.png -H 2048 -W 4096 -o pano.png

  # A directory of conventionally named faces, nearest-neighbor sampling
  pano360 --faces-dir ./cube -H 1024 -W 2048 -m nearest -o pano.png

  # TIFF output
  pano360 --faces-dir ./cube -H 1024 -W 2048 -f tiff -o pano.tif

  # Extract cube faces from a panorama
  pano360 e2c pano.png --face-size 512 --out-dir ./cube

  # Start HTTP server
  pano360 serve --port 8080`,
	RunE: runC2E,
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pano360.yaml)")

	// Input options
	rootCmd.Flags().StringSliceP("face", "F", []string{}, "cube face image, repeated six times in front,right,back,left,up,down order")
	rootCmd.Flags().String("faces-dir", "", "directory with front.png, right.png, back.png, left.png, up.png, down.png")

	// Output options
	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().StringP("format", "f", "png", "output format (png|tiff)")
	rootCmd.Flags().IntP("height", "H", 0, "output panorama height in pixels (required)")
	rootCmd.Flags().IntP("width", "W", 0, "output panorama width in pixels, multiple of 8 (required)")

	// Sampling options
	rootCmd.Flags().StringP("mode", "m", "bilinear", "interpolation mode (nearest|bilinear)")

	// Bind flags to viper for root command
	viper.BindPFlag("face", rootCmd.Flags().Lookup("face"))
	viper.BindPFlag("faces-dir", rootCmd.Flags().Lookup("faces-dir"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("height", rootCmd.Flags().Lookup("height"))
	viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
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

		// Search config in home directory with name ".pano360" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pano360")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runC2E(cmd *cobra.Command, args []string) error {
	height := viper.GetInt("height")
	width := viper.GetInt("width")
	if height == 0 || width == 0 {
		return fmt.Errorf("output size is required (use --height and --width)")
	}

	mode, err := pano.ParseMode(viper.GetString("mode"))
	if err != nil {
		return err
	}

	format, err := imgio.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	paths, err := facePaths()
	if err != nil {
		return err
	}

	faces := make([]*pano.Image[uint8], pano.FaceCount)
	for i, path := range paths {
		img, err := readImage(path)
		if err != nil {
			return fmt.Errorf("face %s: %v", pano.Face(i), err)
		}
		faces[i] = img
	}

	out, err := convert.CubeToEquirect(faces, height, width, mode)
	if err != nil {
		return err
	}

	return writeImage(viper.GetString("output"), out, format)
}

// facePaths resolves the six input face files from --face or --faces-dir.
func facePaths() ([]string, error) {
	faceFlags := viper.GetStringSlice("face")
	facesDir := viper.GetString("faces-dir")

	if facesDir != "" {
		if len(faceFlags) != 0 {
			return nil, fmt.Errorf("--face and --faces-dir are mutually exclusive")
		}
		paths := make([]string, pano.FaceCount)
		for f := pano.FaceFront; f < pano.FaceCount; f++ {
			paths[f] = filepath.Join(facesDir, f.String()+".png")
		}
		return paths, nil
	}

	if len(faceFlags) != pano.FaceCount {
		return nil, fmt.Errorf("expected %d --face flags, got %d", pano.FaceCount, len(faceFlags))
	}
	return faceFlags, nil
}

func readImage(path string) (*pano.Image[uint8], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return imgio.Decode(data)
}

func writeImage(path string, img *pano.Image[uint8], format int) error {
	data, err := imgio.Encode(img, format)
	if err != nil {
		return fmt.Errorf("failed to encode output image: %v", err)
	}

	if path == "" {
		if stat, _ := os.Stdout.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			return fmt.Errorf("didn't specify output file and standard output is a terminal")
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Fprintf(os.Stderr, "Output: %s\n", path)
	return os.WriteFile(path, data, 0o644)
}
