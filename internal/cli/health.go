// internal/cli/health.go
package cli

import (
	"github.com/spf13/cobra"

	"marketscout/internal/render"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that both agent backends are reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	_, researchErr := researchClient.Health(cmd.Context())
	cmd.Println(render.Health("research backend", researchErr))

	_, csvErr := csvClient.Health(cmd.Context())
	cmd.Println(render.Health("csv backend", csvErr))

	return nil
}
