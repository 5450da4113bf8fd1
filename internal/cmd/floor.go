package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/pbrtex/internal/floor"
	"github.com/MeKo-Tech/pbrtex/internal/pipeline"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

var floorCmd = &cobra.Command{
	Use:   "floor",
	Short: "Convert an external floor material",
	Long: `Convert the color, normal, roughness and ambient occlusion maps of an
external floor material into floor_baseColor, floor_normal, floor_roughness
and floor_ao. The source archive is downloaded when the maps are missing.`,
	RunE: runFloor,
}

func init() {
	rootCmd.AddCommand(floorCmd)

	floorCmd.Flags().String("source-dir", filepath.Join("assets", "floor"), "Directory holding the source maps")
	floorCmd.Flags().String("source-url", floor.DefaultURL, "Zip archive (URL or path) to fetch when the source maps are missing; empty disables downloading")
	floorCmd.Flags().String("prefix", floor.DefaultPrefix, "File name prefix of the source maps")
	floorCmd.Flags().Bool("force", false, "Overwrite converted maps that already exist")
	floorCmd.Flags().Bool("lossless", false, "Encode every map as PNG")
	floorCmd.Flags().Int("quality", pipeline.DefaultQuality, "JPEG quality (1-100)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"floor.source_dir", "source-dir"},
		{"floor.source_url", "source-url"},
		{"floor.prefix", "prefix"},
		{"floor.force", "force"},
		{"floor.lossless", "lossless"},
		{"floor.quality", "quality"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, floorCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runFloor(cmd *cobra.Command, args []string) error {
	sourceDir := viper.GetString("floor.source_dir")
	sourceURL := viper.GetString("floor.source_url")
	prefix := viper.GetString("floor.prefix")
	force := viper.GetBool("floor.force")
	lossless := viper.GetBool("floor.lossless")
	quality := viper.GetInt("floor.quality")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	enc, err := buildEncoder(lossless, quality, "best")
	if err != nil {
		return err
	}

	out := pipeline.FolderWriter{Dir: outputDir}
	if !force && floorConverted(out) {
		logger.Info("Floor textures already exist; skipping", "output_dir", outputDir)
		return nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := floor.EnsureSources(ctx, sourceDir, prefix, sourceURL, logger); err != nil {
		return fmt.Errorf("failed to fetch floor sources: %w", err)
	}

	set, err := floor.Convert(ctx, floor.DirSource{Dir: sourceDir, Prefix: prefix})
	if err != nil {
		return fmt.Errorf("failed to convert floor maps: %w", err)
	}

	gen, err := pipeline.NewGenerator(pipeline.Options{
		OutputDir: outputDir,
		Encoder:   enc,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	written, err := gen.WriteSet(ctx, set, 0)
	if err != nil {
		return fmt.Errorf("failed to write floor textures: %w", err)
	}

	logger.Info("Floor textures converted", "files", written, "output_dir", outputDir)
	return nil
}

func floorConverted(out pipeline.FolderWriter) bool {
	set := types.NewTextureSet(floor.SetName)
	for _, m := range floor.Mapping {
		if !out.Exists(set.Stem(m.Target)) {
			return false
		}
	}
	return true
}
