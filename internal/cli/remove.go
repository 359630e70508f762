package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statsmaths/fasttextm/internal/adapter/store"
)

var removeCmd = &cobra.Command{
	Use:   "remove <code>...",
	Short: "Remove installed embedding models",
	Long: `Delete the on-disk model installation for one or more language codes.

Examples:
  fasttextm remove en
  fasttextm remove en fr`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	st, err := store.NewModelStore(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to open model store: %w", err)
	}

	for _, code := range args {
		if !st.IsInstalled(code) {
			fmt.Printf("No installed model for %s\n", code)
			continue
		}
		if err := st.Remove(code); err != nil {
			return err
		}
		fmt.Printf("Removed model for %s\n", code)
	}
	return nil
}
