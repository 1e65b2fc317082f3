package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/redacao/internal/grading"
)

var gradeCmd = &cobra.Command{
	Use:   "grade [file|-]",
	Short: "Grade the five competencies of an essay",
	Long: "Grade the five ENEM competencies. --errors takes a JSON object keyed by " +
		"competency (\"comp1\" or \"1\") whose values are error arrays or ERRO ... FIM_ERRO text.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		essay, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(essay) == "" {
			return fmt.Errorf("essay is empty")
		}

		req := grading.Request{Essay: essay}
		req.Theme, _ = cmd.Flags().GetString("theme")
		if path, _ := cmd.Flags().GetString("errors"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open error list: %w", err)
			}
			req.Errors, err = grading.LoadErrors(f)
			f.Close()
			if err != nil {
				return err
			}
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

		g, err := svc.GradeEssay(cmd.Context(), req)
		if err != nil {
			return err
		}
		return e.output(cmd.OutOrStdout(), g, func() string { return e.renderer.Grade(g) })
	},
}

func init() {
	gradeCmd.Flags().StringP("errors", "e", "", "JSON error list per competency")
	gradeCmd.Flags().StringP("theme", "t", "", "Essay theme, recorded with the run")
}
