package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/utils"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently processed images from the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runHistory(cmd)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		utils.ShowError("Ledger unavailable", err)
		return err
	}
	defer db.Close(ctx)

	records, err := db.History(ctx, historyLimit)
	if err != nil {
		utils.ShowError("Failed to read ledger", err)
		return err
	}

	if len(records) == 0 {
		fmt.Println("No processed images recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tOUTPUT\tSIZE\tPROCESSED")
	fmt.Fprintln(w, "------\t------\t----\t---------")

	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\n",
			filepath.Base(r.SourcePath),
			r.OutputPath,
			r.Width, r.Height,
			r.ProcessedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	return nil
}
