// internal/cli/csv.go
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"marketscout/internal/render"
)

var (
	csvAskSession string
	csvJSON       bool
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Upload a CSV file and ask questions about it",
}

var csvUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a CSV file for analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runCSVUpload,
}

var csvAskCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a follow-up question about an uploaded CSV",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCSVAsk,
}

func init() {
	csvUploadCmd.Flags().BoolVar(&csvJSON, "json", false, "print the verbatim JSON payload")
	csvAskCmd.Flags().StringVar(&csvAskSession, "session", "", "session id returned by a previous upload (required)")
	csvAskCmd.Flags().BoolVar(&csvJSON, "json", false, "print the verbatim JSON payload")
	csvCmd.AddCommand(csvUploadCmd)
	csvCmd.AddCommand(csvAskCmd)
	rootCmd.AddCommand(csvCmd)
}

func runCSVUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	payload, err := csvClient.Upload(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return err
	}

	if csvJSON {
		return printJSON(cmd, payload)
	}

	if sessionID, ok := payload["session_id"].(string); ok {
		cmd.Printf("Session: %s\n", sessionID)
	}
	cmd.Println(render.CSVAnalysis(payload))
	return nil
}

func runCSVAsk(cmd *cobra.Command, args []string) error {
	if csvAskSession == "" {
		return errors.New("--session is required; run `marketscout csv upload` first")
	}

	payload, err := csvClient.Chat(cmd.Context(), csvAskSession, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if csvJSON {
		return printJSON(cmd, payload)
	}

	cmd.Println(render.CSVAnswer(payload))
	return nil
}
