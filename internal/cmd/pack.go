package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/pbrtex/internal/pipeline"
	"github.com/MeKo-Tech/pbrtex/internal/texpack"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Inspect texpack files",
}

var packLsCmd = &cobra.Command{
	Use:   "ls <file>",
	Short: "List the textures stored in a texpack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPack(cmd.OutOrStdout(), args[0])
	},
}

var packExtractCmd = &cobra.Command{
	Use:   "extract <file> <dir>",
	Short: "Write every texture of a texpack into a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := extractPack(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d textures to %s\n", n, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.AddCommand(packLsCmd)
	packCmd.AddCommand(packExtractCmd)
}

func listPack(w io.Writer, path string) error {
	r, err := texpack.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	meta, err := r.Metadata()
	if err != nil {
		return err
	}
	entries, err := r.List()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s\n", meta.Name, meta.Description)
	fmt.Fprintf(w, "generator: %s  run: %s", meta.Generator, meta.RunID)
	if !meta.Created.IsZero() {
		fmt.Fprintf(w, "  created: %s", meta.Created.UTC().Format(time.RFC3339))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEM\tCHANNEL\tFORMAT\tSIZE\tBYTES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%d\n", e.Stem, e.Channel, e.Format, e.Width, e.Height, e.Size)
	}
	return tw.Flush()
}

func extractPack(path, dir string) (int, error) {
	r, err := texpack.Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	entries, err := r.List()
	if err != nil {
		return 0, err
	}

	out := pipeline.FolderWriter{Dir: dir}
	for i, listed := range entries {
		e, err := r.ReadTexture(listed.Stem)
		if err != nil {
			return i, err
		}
		if err := out.WriteTexture(e); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}
