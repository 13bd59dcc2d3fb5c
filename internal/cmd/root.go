// Package cmd wires configuration, logging and the orchestrator into the
// teammate command line.
package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simonbystrom/teammate/internal/config"
	"github.com/simonbystrom/teammate/internal/logging"
	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/ui"
)

// env is shared by every command: the resolved config and the log file.
type env struct {
	configPath string
	cfg        config.Config
	logFile    io.Closer
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "teammate",
		Short: "Form balanced teams from a participant pool",
		Long: `TeamMate collects participant surveys and splits the pool into teams
with a leader and a thinker in each, no more than two members per activity,
at least three roles, and average skill as even as swaps can make it.

Run without a subcommand to open the interactive dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runUI()
		},
	}
	root.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/teammate/teammate.conf)")

	root.AddCommand(newFormCmd(e))
	return root
}

func (e *env) setup() error {
	path := e.configPath
	if path == "" {
		path = config.Path()
		// Non-fatal: a read-only home still gets the built-in defaults.
		_ = config.WriteDefault(path)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.cfg = cfg

	closer, err := logging.Setup(cfg.Data.StateDir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	e.logFile = closer
	return nil
}

func (e *env) close() {
	if e.logFile != nil {
		e.logFile.Close()
		e.logFile = nil
	}
}

func (e *env) orchestrator(store *participant.Store) *orchestrator.Orchestrator {
	return orchestrator.New(store, e.cfg.Data.Participants,
		orchestrator.WithOutputs(e.cfg.Data.Output, e.cfg.Data.Report),
		orchestrator.WithSeed(e.cfg.Formation.Seed),
		orchestrator.WithMaxIterations(e.cfg.Formation.MaxIterations),
	)
}

func (e *env) runUI() error {
	store := participant.NewStore()
	orch := e.orchestrator(store)

	p := tea.NewProgram(ui.NewApp(e.cfg, orch, store), tea.WithAltScreen())
	orch.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
