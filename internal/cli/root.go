package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statsmaths/fasttextm/config"
	"github.com/statsmaths/fasttextm/internal/adapter/catalog"
	"github.com/statsmaths/fasttextm/internal/adapter/modelsource"
	"github.com/statsmaths/fasttextm/internal/adapter/store"
	"github.com/statsmaths/fasttextm/internal/embed"
	"github.com/statsmaths/fasttextm/internal/usecase"
)

var (
	cfgFile string
	dataDir string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fasttextm",
	Short: "Multilingual word embeddings with cross-lingual nearest-neighbor search",
	Long: `fasttextm manages pre-aligned fastText word embeddings for many languages:
download a language's vectors once, then look up word embeddings or find the
most similar words across languages by cosine similarity.

Example usage:
  fasttextm languages                          # Show the language catalog
  fasttextm download en fr                     # Fetch and install models
  fasttextm embed -l en cat dog                # Print word vectors
  fasttextm neighbors -s en -t fr -k 5 cat     # Cross-lingual neighbors`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dataDir != "" {
			cfg.Data.Dir = dataDir
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fasttextm.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "model data directory (default is ~/.fasttextm)")
}

// newService wires the registry, model store, remote source and catalog for
// the configured data directory.
func newService() (*usecase.Service, error) {
	st, err := store.NewModelStore(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}
	return usecase.NewService(
		embed.NewRegistry(),
		st,
		modelsource.NewHTTPSource(cfg.Download.URLTemplate),
		catalog.NewStatic(),
	), nil
}
