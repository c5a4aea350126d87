package cli

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in the clinical records",
	Long: `Answers a free-text question using the retrieval index plus a live
snapshot of the record store. Answers are grounded strictly in indexed
records; degraded states (missing index, AI timeout) render as fixed
notices instead of failing the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer := queryService.Answer(context.Background(), args[0])

	if answer.OK() {
		cmd.Println(answer.Render())
		return nil
	}

	// Degraded answers are part of the contract, not command failures
	cmd.Println(color.YellowString(answer.Render()))
	return nil
}
