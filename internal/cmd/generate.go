package cmd

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/pbrtex/internal/material"
	"github.com/MeKo-Tech/pbrtex/internal/pipeline"
	"github.com/MeKo-Tech/pbrtex/internal/texpack"
	"github.com/MeKo-Tech/pbrtex/internal/worker"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the material textures",
	Long: `Generate every material of the catalog, or the ones named with --only.

Material parameters can be overridden in the config file under
materials.<name>, for example materials.wall_lower.seed.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSlice("only", nil, "Generate only the named materials (comma-separated)")
	generateCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	generateCmd.Flags().Bool("progress", true, "Show progress bar during generation")
	generateCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some materials fail")
	generateCmd.Flags().Bool("force", false, "Force regeneration even if the textures exist")

	generateCmd.Flags().Bool("lossless", false, "Encode every map as PNG")
	generateCmd.Flags().Int("quality", pipeline.DefaultQuality, "JPEG quality (1-100) for opaque maps")
	generateCmd.Flags().String("png-compression", "best", "PNG compression (default, speed, best, none)")

	generateCmd.Flags().String("format", "folder", "Output format: folder or texpack")
	generateCmd.Flags().String("output-file", "", "Output file path for texpack format (e.g., gallery.texpack)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.only", "only"},
		{"generate.workers", "workers"},
		{"generate.progress", "progress"},
		{"generate.allow_failures", "allow-failures"},
		{"generate.force", "force"},
		{"generate.lossless", "lossless"},
		{"generate.quality", "quality"},
		{"generate.png_compression", "png-compression"},
		{"generate.format", "format"},
		{"generate.output_file", "output-file"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	only := viper.GetStringSlice("generate.only")
	workers := viper.GetInt("generate.workers")
	showProgress := viper.GetBool("generate.progress")
	allowFailures := viper.GetBool("generate.allow_failures")
	force := viper.GetBool("generate.force")
	lossless := viper.GetBool("generate.lossless")
	quality := viper.GetInt("generate.quality")
	pngCompression := viper.GetString("generate.png_compression")
	format := viper.GetString("generate.format")
	outputFile := viper.GetString("generate.output_file")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	if format != "folder" && format != "texpack" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'texpack'", format)
	}
	if format == "texpack" && outputFile == "" {
		return errors.New("--output-file is required when using --format=texpack")
	}

	enc, err := buildEncoder(lossless, quality, pngCompression)
	if err != nil {
		return err
	}

	recipes, err := selectRecipes(material.Catalog(), only)
	if err != nil {
		return err
	}
	if err := applyOverrides(recipes, viper.GetStringMap("materials")); err != nil {
		return err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Info("Starting texture generation",
		"materials", len(recipes),
		"workers", workers,
		"output_dir", outputDir,
		"format", format,
		"lossless", lossless,
		"force", force,
	)

	var packWriter *texpack.Writer
	var textureWriter pipeline.TextureWriter
	if format == "texpack" {
		packWriter, err = texpack.New(outputFile, texpack.Metadata{
			Name:        "gallery",
			Description: "Procedural gallery interior textures",
			Generator:   "pbrtex",
			RunID:       uuid.NewString(),
			Created:     time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create texpack writer: %w", err)
		}
		defer packWriter.Close()
		textureWriter = packWriter
	}

	gen, err := pipeline.NewGenerator(pipeline.Options{
		OutputDir: outputDir,
		Force:     force,
		Encoder:   enc,
		Writer:    textureWriter,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	tasks := make([]worker.Task, 0, len(recipes))
	for _, r := range recipes {
		tasks = append(tasks, worker.Task{Recipe: r})
	}

	progress := worker.NewProgress(len(tasks), showProgress)

	pool := worker.New(worker.Config{
		Workers:    workers,
		Generator:  gen,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	for _, r := range results {
		if r.Err != nil {
			logger.Error("Texture generation failed", "material", r.Task.Name(), "error", r.Err)
			continue
		}
		if len(r.Outputs) == 0 {
			logger.Debug("Textures up to date", "material", r.Task.Name())
			continue
		}
		logger.Debug("Textures generated", "material", r.Task.Name(), "files", r.Outputs, "elapsed", r.Elapsed)
	}

	logger.Info(progress.Summary())

	if packWriter != nil {
		if err := packWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush texpack: %w", err)
		}
		logger.Info("Texpack generation complete", "file", outputFile)
	}

	if failedCount := len(progress.Failed()); failedCount > 0 {
		if allowFailures {
			logger.Warn("Some materials failed to generate, but continuing due to --allow-failures flag", "failed_count", failedCount)
			return nil
		}
		return fmt.Errorf("%d materials failed to generate", failedCount)
	}

	return nil
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// selectRecipes returns the catalog entries named in only, in catalog
// order. An empty list selects the whole catalog.
func selectRecipes(catalog []material.Recipe, only []string) ([]material.Recipe, error) {
	if len(only) == 0 {
		return catalog, nil
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if material.Find(catalog, name) == nil {
			return nil, fmt.Errorf("unknown material %q", name)
		}
		wanted[name] = true
	}

	var selected []material.Recipe
	for _, r := range catalog {
		if wanted[r.RecipeName()] {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return nil, errors.New("no materials selected")
	}
	return selected, nil
}

// applyOverrides decodes the "materials" config section onto the recipes.
// Keys are recipe names.
func applyOverrides(recipes []material.Recipe, section map[string]any) error {
	for key, value := range section {
		r := material.Find(recipes, key)
		if r == nil {
			// The section may name materials that are not selected.
			if material.Find(material.Catalog(), key) != nil {
				continue
			}
			return fmt.Errorf("config: unknown material %q", key)
		}

		raw, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("config: materials.%s must be a mapping, got %T", key, value)
		}
		if err := material.Configure(r, raw); err != nil {
			return fmt.Errorf("config: materials.%s: %w", key, err)
		}
	}
	return nil
}

func buildEncoder(lossless bool, quality int, compression string) (pipeline.Encoder, error) {
	enc := pipeline.DefaultEncoder()

	if quality < 1 || quality > 100 {
		return enc, fmt.Errorf("invalid quality %d: must be within 1-100", quality)
	}
	enc.Quality = quality

	level, err := parsePNGCompression(compression)
	if err != nil {
		return enc, err
	}
	enc.PNGCompression = level

	if lossless {
		enc.Format = pipeline.FormatPNG
	}
	return enc, nil
}

func parsePNGCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	default:
		return png.DefaultCompression, fmt.Errorf("invalid png-compression %q: must be default, speed, best or none", s)
	}
}
