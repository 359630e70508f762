package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/statsmaths/fasttextm/internal/adapter/modelsource"
)

var downloadCmd = &cobra.Command{
	Use:   "download <code>...",
	Short: "Download and install embedding models",
	Long: `Download the aligned embedding artifact for one or more language codes and
convert each into the local model format.

Examples:
  fasttextm download en
  fasttextm download en fr de`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	for _, code := range args {
		var bar *progressbar.ProgressBar

		progress := func(read, total int64) {
			if bar == nil {
				bar = progressbar.NewOptions64(total,
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowBytes(true),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Downloading %s[reset]", modelsource.ArtifactName(code))),
					progressbar.OptionSetTheme(progressbar.Theme{
						Saucer:        "[green]=[reset]",
						SaucerHead:    "[green]>[reset]",
						SaucerPadding: " ",
						BarStart:      "[",
						BarEnd:        "]",
					}),
					progressbar.OptionOnCompletion(func() {
						fmt.Println()
					}),
				)
			}
			bar.Set64(read)
		}

		if err := svc.DownloadLanguage(cmd.Context(), code, progress); err != nil {
			return fmt.Errorf("download %s: %w", code, err)
		}
		fmt.Printf("Installed model for %s\n", code)
	}
	return nil
}
