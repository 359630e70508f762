package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	neighborsSrc  string
	neighborsDst  string
	neighborsK    int
	neighborsJSON bool
)

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <word>...",
	Short: "Find nearest-neighbor words",
	Long: `Find the k words most similar to each input word by cosine similarity.
Source and target language may differ (cross-lingual search over the
aligned vector space) or be the same (monolingual search).

Examples:
  fasttextm neighbors -s en -t fr cat
  fasttextm neighbors -s en -t en -k 5 --json cat dog`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNeighbors,
}

func init() {
	rootCmd.AddCommand(neighborsCmd)
	neighborsCmd.Flags().StringVarP(&neighborsSrc, "source", "s", "", "source language code (required)")
	neighborsCmd.Flags().StringVarP(&neighborsDst, "target", "t", "", "target language code (defaults to source)")
	neighborsCmd.Flags().IntVarP(&neighborsK, "top-k", "k", 0, "number of neighbors (default from config)")
	neighborsCmd.Flags().BoolVar(&neighborsJSON, "json", false, "output as JSON")
	neighborsCmd.MarkFlagRequired("source")
}

type neighborResult struct {
	Word      string   `json:"word"`
	Neighbors []string `json:"neighbors,omitempty"`
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	dst := neighborsDst
	if dst == "" {
		dst = neighborsSrc
	}
	k := cfg.Search.DefaultK
	if neighborsK > 0 {
		k = neighborsK
	}

	if err := svc.LoadLanguage(neighborsSrc); err != nil {
		return fmt.Errorf("load %s: %w", neighborsSrc, err)
	}
	if dst != neighborsSrc {
		if err := svc.LoadLanguage(dst); err != nil {
			return fmt.Errorf("load %s: %w", dst, err)
		}
	}

	rows, err := svc.NearestNeighbors(args, neighborsSrc, dst, k)
	if err != nil {
		return fmt.Errorf("neighbor search failed: %w", err)
	}

	results := make([]neighborResult, len(rows))
	for i, row := range rows {
		results[i] = neighborResult{Word: args[i], Neighbors: row}
	}

	if neighborsJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for _, r := range results {
		if r.Neighbors == nil {
			fmt.Printf("%s: (not in source vocabulary)\n", r.Word)
			continue
		}
		fmt.Printf("%s: %s\n", r.Word, strings.Join(r.Neighbors, ", "))
	}
	return nil
}
