package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
)

var (
	embedLang string
	embedJSON bool
)

var embedCmd = &cobra.Command{
	Use:   "embed <word>...",
	Short: "Print word embedding vectors",
	Long: `Look up the embedding vector for each word in a loaded language model.
Words missing from the vocabulary are reported as such rather than failing
the whole batch.

Examples:
  fasttextm embed -l en cat dog
  fasttextm embed -l fr --json chat`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
	embedCmd.Flags().StringVarP(&embedLang, "lang", "l", "", "language code (required)")
	embedCmd.Flags().BoolVar(&embedJSON, "json", false, "output as JSON")
	embedCmd.MarkFlagRequired("lang")
}

type embedResult struct {
	Word   string    `json:"word"`
	Vector []float32 `json:"vector,omitempty"`
}

func runEmbed(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	if err := svc.LoadLanguage(embedLang); err != nil {
		return fmt.Errorf("load %s: %w", embedLang, err)
	}

	rows, err := svc.Embed(args, embedLang)
	if err != nil {
		return fmt.Errorf("embed failed: %w", err)
	}

	results := make([]embedResult, len(rows))
	for i, row := range rows {
		results[i] = embedResult{Word: args[i]}
		if len(row) > 0 && !math.IsNaN(float64(row[0])) {
			results[i].Vector = row
		}
	}

	if embedJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for _, r := range results {
		if r.Vector == nil {
			fmt.Printf("%s: (not in vocabulary)\n", r.Word)
			continue
		}
		values := make([]string, len(r.Vector))
		for j, v := range r.Vector {
			values[j] = fmt.Sprintf("%.4f", v)
		}
		fmt.Printf("%s: %s\n", r.Word, strings.Join(values, " "))
	}
	return nil
}
