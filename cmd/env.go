package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/abhisek/redacao/internal/assist"
	"github.com/abhisek/redacao/internal/grading"
	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/logging"
	"github.com/abhisek/redacao/internal/report"
	"github.com/abhisek/redacao/internal/store"
)

// env holds what every command shares: logger, store and renderer.
type env struct {
	logger   *log.Logger
	store    *store.Store
	renderer *report.Renderer
	json     bool
}

func newEnv(cmd *cobra.Command) (*env, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	lcfg := logging.DefaultConfig()
	lcfg.Level, lcfg.Format = level, format
	logger, err := logging.New(lcfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	plain, _ := cmd.Flags().GetBool("plain")
	opts := report.DefaultOptions()
	opts.Plain = plain || !isTerminal(cmd.OutOrStdout())

	return &env{
		logger:   logger,
		store:    st,
		renderer: report.New(opts),
		json:     asJSON,
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

// service builds the grading service. Without --offline and with a provider
// key available, the LLM collaborators are wired in; a provider that fails to
// initialize leaves the service offline.
func (e *env) service(cmd *cobra.Command) (*grading.Service, error) {
	opts := []grading.Option{
		grading.WithLogger(e.logger),
		grading.WithRunRepo(e.store.RunRepo()),
	}

	offline, _ := cmd.Flags().GetBool("offline")
	if !offline {
		if cfg, ok := llm.Resolve(); ok {
			provider, err := llm.NewProvider(cmd.Context(), cfg, e.store.EventRepo(), e.logger)
			if err != nil {
				e.logger.Warn("LLM provider not configured, running offline", "err", err)
			} else {
				e.logger.Info("using LLM provider", "provider", cfg.Provider, "model", provider.ModelID())
				opts = append(opts, grading.WithProvider(provider, assist.DefaultConfig()))
			}
		}
	}

	return grading.NewService(grading.ConfigFromEnv(), opts...)
}

// output writes v as JSON with --json, else the rendered text.
func (e *env) output(w io.Writer, v any, rendered func() string) error {
	if e.json {
		return report.WriteJSON(w, v)
	}
	_, err := fmt.Fprint(w, rendered())
	return err
}

// readInput reads the named file, or stdin for "-" and no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read essay: %w", err)
	}
	return string(data), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
