// internal/cli/rawdata.go
package cli

import (
	"github.com/spf13/cobra"
)

var rawdataCmd = &cobra.Command{
	Use:   "rawdata [business-type] [city]",
	Short: "Fetch the raw scraped data behind an analysis",
	Args:  cobra.ExactArgs(2),
	RunE:  runRawdata,
}

func init() {
	rootCmd.AddCommand(rawdataCmd)
}

func runRawdata(cmd *cobra.Command, args []string) error {
	payload, err := researchClient.RawScrapedData(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	// Raw data has no card form; it is always printed verbatim.
	return printJSON(cmd, payload)
}
