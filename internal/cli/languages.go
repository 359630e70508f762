package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/statsmaths/fasttextm/internal/domain"
)

var languagesJSON bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the language catalog",
	Long: `List every language with an aligned embedding model, showing which models
are downloaded to disk and which are currently loaded.

Examples:
  fasttextm languages
  fasttextm languages --json`,
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	languagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "output as JSON")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	entries, err := svc.ListLanguages()
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}

	if languagesJSON {
		output, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	writeLanguagesTable(os.Stdout, entries)
	return nil
}

func writeLanguagesTable(w io.Writer, entries []domain.CatalogEntry) {
	fmt.Fprintf(w, "%-6s %-14s %-11s %s\n", "CODE", "LANGUAGE", "DOWNLOADED", "LOADED")
	for _, e := range entries {
		fmt.Fprintf(w, "%-6s %-14s %-11s %s\n", e.Code, e.Name, yesNo(e.Downloaded), yesNo(e.Loaded))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
