package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"atelier/internal/catalog"
	"atelier/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import <seed.yaml>",
	Short: "Import artworks from a YAML seed file",
	Long: `Merges the seed file into the catalogue. Entries match existing works by
id, or by title when the seed gives none. With --prune, works missing from the
seed are removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("prune", false, "remove works that are not in the seed")
	importCmd.Flags().Bool("quiet", false, "no progress output")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	prune, _ := cmd.Flags().GetBool("prune")
	quiet, _ := cmd.Flags().GetBool("quiet")

	artworks, err := catalog.LoadSeed(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.Init(cfg.Catalog.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	var reporter progress.Reporter = progress.Nop{}
	if !quiet {
		reporter = progress.NewReporter()
	}

	res, err := catalog.Import(context.Background(), store, artworks, prune, reporter)
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	logger.Info("seed imported",
		zap.String("path", args[0]),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("removed", res.Removed))

	fmt.Fprintf(cmd.OutOrStdout(), "%d created, %d updated, %d unchanged, %d removed\n",
		res.Created, res.Updated, res.Unchanged, res.Removed)
	return nil
}
