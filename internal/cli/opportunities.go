// internal/cli/opportunities.go
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"marketscout/internal/gateway"
	"marketscout/internal/render"
)

var (
	opportunitiesMax        int
	opportunitiesNoAnalysis bool
	opportunitiesJSON       bool
)

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities [city]",
	Short: "List promising business opportunities for a city",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOpportunities,
}

func init() {
	opportunitiesCmd.Flags().IntVar(&opportunitiesMax, "max", 5, "maximum number of opportunities to return")
	opportunitiesCmd.Flags().BoolVar(&opportunitiesNoAnalysis, "no-analysis", false, "skip detailed analysis for top opportunities")
	opportunitiesCmd.Flags().BoolVar(&opportunitiesJSON, "json", false, "print the verbatim JSON payload")
	rootCmd.AddCommand(opportunitiesCmd)
}

func runOpportunities(cmd *cobra.Command, args []string) error {
	city := strings.Join(args, " ")

	opts := gateway.OpportunityOptions{
		IncludeAnalysis:  !opportunitiesNoAnalysis,
		MaxOpportunities: opportunitiesMax,
	}

	payload, err := researchClient.CityOpportunities(cmd.Context(), city, opts)
	if err != nil {
		return err
	}

	if opportunitiesJSON {
		return printJSON(cmd, payload)
	}

	cmd.Println(render.Opportunities(payload))
	return nil
}
