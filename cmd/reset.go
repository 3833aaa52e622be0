package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/utils"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the processing ledger",
	Long:  "Drops all recorded processing history. The next --track run will re-process everything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if !resetYes {
			reader := bufio.NewReader(os.Stdin)
			if !confirm(reader, "⚠️  Are you sure you want to DROP the processing ledger?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		ctx := cmd.Context()
		db, err := openStore(ctx)
		if err != nil {
			utils.ShowError("Ledger unavailable", err)
			return err
		}
		defer db.Close(ctx)

		if err := db.Reset(ctx); err != nil {
			utils.ShowError("Failed to reset ledger", err)
			return err
		}
		fmt.Println("✨ Ledger cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	res, _ := r.ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return res == "y" || res == "yes"
}
