package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookshelf/internal/entrypoint"
	"github.com/mrlokans/bookshelf/internal/stats"
)

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print reading statistics for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bookStore, err := entrypoint.OpenStore(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer bookStore.Close()

			records, err := bookStore.List(ctx)
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}

			out, err := json.MarshalIndent(stats.Compute(records), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
