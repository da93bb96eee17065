package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"atelier/internal/catalog"
	"atelier/internal/ui/views"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalogue in gallery order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := catalog.Init(cfg.Catalog.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	artworks, err := store.List(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(artworks) == 0 {
		fmt.Fprintln(out, "The catalogue is empty. Add works with: atelier import <seed.yaml>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tCOLLECTION\tPRICE\tUPDATED\tID")
	for i, a := range artworks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, a.Title, a.Collection, views.FormatPrice(a.Price), humanize.Time(a.UpdatedAt), a.ID)
	}
	return w.Flush()
}
