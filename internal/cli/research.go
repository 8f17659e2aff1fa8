// internal/cli/research.go
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"marketscout/internal/gateway"
	"marketscout/internal/interpreter"
	"marketscout/internal/render"
)

var (
	researchRawData bool
	researchNoCache bool
	researchJSON    bool
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Run comprehensive market research for a business idea",
	Long: `Runs the full market analysis for a business type in a location.
The query is free text, e.g. "pharmacy in Pune" or "coffee shop near Mumbai".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().BoolVar(&researchRawData, "raw-data", false, "include raw scraped data in the response")
	researchCmd.Flags().BoolVar(&researchNoCache, "no-cache", false, "ask the backend to bypass its result cache")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "print the verbatim JSON payload")
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	parsed := interpreter.Parse(query)
	if parsed.NeedsClarification {
		return errors.New(`could not extract a business type and location; try something like "pharmacy in Pune"`)
	}

	opts := gateway.ResearchOptions{
		IncludeRawData: researchRawData,
		UseCache:       !researchNoCache,
	}

	payload, err := researchClient.ComprehensiveResearch(cmd.Context(), parsed.BusinessType, parsed.Location, opts)
	if err != nil {
		return err
	}

	if researchJSON {
		return printJSON(cmd, payload)
	}

	cmd.Println(render.Research(payload))
	return nil
}
