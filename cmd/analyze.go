package cmd

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Analyze essay metrics, paragraph structure and connectives",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		essay, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		svc, err := e.service(cmd)
		if err != nil {
			return err
		}

		a := svc.AnalyzeEssay(cmd.Context(), essay)
		return e.output(cmd.OutOrStdout(), a, func() string { return e.renderer.Analysis(a) })
	},
}
