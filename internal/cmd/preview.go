package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/pbrtex/internal/pipeline"
	"github.com/MeKo-Tech/pbrtex/internal/texpack"
	"github.com/MeKo-Tech/pbrtex/internal/texture"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>...",
	Short: "Check tileable textures for visible seams",
	Long: `Render a 2x2 repeat of each texture, shifted by half a period so that the
wrap seams cross the middle, and report how strong the seams are compared to
the texture's own detail. A ratio near 1 means the texture tiles cleanly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("preview-dir", "", "Directory for the preview images (default: next to each texture)")
	previewCmd.Flags().Float64("max-ratio", 0, "Fail when a seam ratio exceeds this value (0 disables the check)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"preview.dir", "preview-dir"},
		{"preview.max_ratio", "max-ratio"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, previewCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	previewDir := viper.GetString("preview.dir")
	maxRatio := viper.GetFloat64("preview.max_ratio")

	if logger == nil {
		initLogging()
	}

	var seamy []string
	for _, path := range args {
		out, stats, err := previewTexture(path, previewDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\tseam %.2f\tinterior %.2f\tratio %.2f\n",
			path, stats.Seam, stats.Interior, stats.Ratio())
		logger.Debug("Wrote preview", "texture", path, "preview", out)

		if maxRatio > 0 && stats.Ratio() > maxRatio {
			seamy = append(seamy, filepath.Base(path))
		}
	}

	if len(seamy) > 0 {
		return fmt.Errorf("%d textures exceed seam ratio %.2f: %s", len(seamy), maxRatio, strings.Join(seamy, ", "))
	}
	return nil
}

// previewTexture writes "<stem>_preview.png" for the texture at path and
// returns the preview path and the seam measurement.
func previewTexture(path, dir string) (string, texture.SeamStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", texture.SeamStats{}, fmt.Errorf("failed to open texture: %w", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", texture.SeamStats{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	repeat := texture.TileImage(img, 2*w, 2*h, w/2, h/2)

	enc := pipeline.DefaultEncoder()
	enc.Format = pipeline.FormatPNG
	data, format, err := enc.Encode(repeat, 0)
	if err != nil {
		return "", texture.SeamStats{}, fmt.Errorf("failed to encode preview: %w", err)
	}

	if dir == "" {
		dir = filepath.Dir(path)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "_preview"
	out := pipeline.FolderWriter{Dir: dir}
	entry := texpack.Entry{Stem: stem, Channel: "preview", Format: string(format), Width: 2 * w, Height: 2 * h, Data: data}
	if err := out.WriteTexture(entry); err != nil {
		return "", texture.SeamStats{}, err
	}

	return out.Path(entry), texture.MeasureSeams(img), nil
}
