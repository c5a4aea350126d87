package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the clinical retrieval index",
	Long: `Performs a full rebuild of the retrieval index from the current
clinical records. The previous index generation is replaced atomically;
queries running during the rebuild keep seeing the old generation.`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	result, err := indexService.Rebuild(context.Background())
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	if result.NoOp {
		cmd.Println(color.YellowString("No clinical data found to index."))
	} else {
		cmd.Println(color.GreenString("Clinical index built: %d documents.", result.Indexed))
	}

	for _, skip := range result.Skipped {
		cmd.Println(color.YellowString("Skipped %s record %d: %v", skip.Tag, skip.RecordID, skip.Reason))
	}

	return nil
}
