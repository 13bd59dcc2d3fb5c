package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

type formFlags struct {
	size          int
	seed          uint64
	input         string
	output        string
	report        string
	maxIterations int
}

func newFormCmd(e *env) *cobra.Command {
	var f formFlags

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Form teams without the dashboard",
		Long: `Load the participant pool, form teams of --size, print them and write the
team CSV and the YAML run report.

Flags left unset fall back to the config file and TEAMMATE_* environment
variables. Passing the seed printed by an earlier run reproduces its teams.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e.applyFormFlags(cmd, f)
			return e.runForm(cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&f.size, "size", "n", 0, "team size (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "shuffle seed, 0 for a random one")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "participants CSV")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "formed teams CSV")
	cmd.Flags().StringVar(&f.report, "report", "", "YAML run report")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "balancer iteration budget")
	return cmd
}

// applyFormFlags overrides config values with the flags the user set.
func (e *env) applyFormFlags(cmd *cobra.Command, f formFlags) {
	flags := cmd.Flags()
	if flags.Changed("size") {
		e.cfg.Formation.TeamSize = f.size
	}
	if flags.Changed("seed") {
		e.cfg.Formation.Seed = f.seed
	}
	if flags.Changed("max-iterations") {
		e.cfg.Formation.MaxIterations = f.maxIterations
	}
	if flags.Changed("input") {
		e.cfg.Data.Participants = f.input
	}
	if flags.Changed("output") {
		e.cfg.Data.Output = f.output
	}
	if flags.Changed("report") {
		e.cfg.Data.Report = f.report
	}
}

func (e *env) runForm(out io.Writer) error {
	store := participant.NewStore()
	orch := e.orchestrator(store)

	loaded, skipped, err := orch.LoadParticipants()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %d participants from %s", loaded, orch.ParticipantsPath())
	if skipped > 0 {
		fmt.Fprintf(out, " (%d rows skipped)", skipped)
	}
	fmt.Fprintln(out)

	f, err := orch.FormTeams(e.cfg.Formation.TeamSize)
	if err != nil {
		return err
	}
	printFormation(out, f)

	if f.SaveErr != nil {
		return fmt.Errorf("teams formed but not saved: %w", f.SaveErr)
	}
	teamsCSV, report := orch.OutputPaths()
	if teamsCSV != "" {
		fmt.Fprintf(out, "Teams written to %s\n", teamsCSV)
	}
	if report != "" {
		fmt.Fprintf(out, "Report written to %s\n", report)
	}
	return nil
}

func printFormation(out io.Writer, f *orchestrator.Formation) {
	fmt.Fprintf(out, "\nRun %s (seed %d)\n\n", f.RunID, f.Seed)
	for _, t := range f.Teams {
		fmt.Fprintf(out, "%s\n\n", t)
	}

	s := f.Stats
	fmt.Fprintf(out, "Variance %.4f -> %.4f after %d swaps in %d iterations\n",
		s.InitialVariance, s.FinalVariance, s.Swaps, s.Iterations)
	if s.Exhausted {
		fmt.Fprintln(out, "Stopped at the iteration limit; teams are usable but may not be fully balanced.")
	}
}
