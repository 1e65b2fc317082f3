package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/redacao/internal/grading"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List past grading runs or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.RunRepo()

		if len(args) == 0 {
			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := repo.Recent(ctx, limit)
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}
			return e.output(cmd.OutOrStdout(), runs, func() string { return e.renderer.Runs(runs) })
		}

		run, err := repo.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("run %s not found", args[0])
		}

		var g grading.EssayGrade
		if err := json.Unmarshal(run.Data, &g); err != nil {
			return fmt.Errorf("decode run %s: %w", run.RunID, err)
		}
		return e.output(cmd.OutOrStdout(), &g, func() string { return e.renderer.Grade(&g) })
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
}
