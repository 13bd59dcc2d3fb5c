package orchestrator

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/simonbystrom/teammate/internal/matcher"
	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/team"
)

// ErrNoParticipants is returned when a formation is requested on an empty pool.
var ErrNoParticipants = errors.New("no participants loaded")

// Validate checks a formation request before any work is done. An empty
// pool is refused here so a run never replaces earlier outputs with nothing.
func Validate(poolSize, size int) error {
	if poolSize == 0 {
		return ErrNoParticipants
	}
	return matcher.Validate(poolSize, size)
}

type ParticipantsLoadedMsg struct {
	Count   int
	Skipped int
	Err     error
}

// FormationProgressMsg is sent for every swap the balancer applies. Each
// balancer iteration applies at most one swap, so Iteration also counts swaps.
type FormationProgressMsg struct {
	RunID     string
	Iteration int
	Variance  float64
}

type FormationDoneMsg struct {
	Formation *Formation
	Err       error
}

// Formation is the outcome of one FormTeams run.
type Formation struct {
	RunID     string
	CreatedAt time.Time
	Seed      uint64
	TeamSize  int
	Teams     []*team.Team
	Stats     matcher.BalanceStats
	// SaveErr is set when the teams were formed but writing the outputs
	// failed. The teams are still valid.
	SaveErr error
}

type Orchestrator struct {
	mu            sync.Mutex
	store         *participant.Store
	repo          participant.Repository
	program       *tea.Program
	seed          uint64
	maxIterations int
	outputPath    string
	reportPath    string
	last          *Formation
	now           func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRepository overrides the default CSV repository.
func WithRepository(r participant.Repository) Option {
	return func(o *Orchestrator) { o.repo = r }
}

// WithSeed fixes the shuffle seed for every run. Zero draws a new seed per run.
func WithSeed(seed uint64) Option {
	return func(o *Orchestrator) { o.seed = seed }
}

func WithMaxIterations(n int) Option {
	return func(o *Orchestrator) { o.maxIterations = n }
}

// WithOutputs sets where the team CSV and the YAML report are written.
// An empty path skips that output.
func WithOutputs(teamsCSV, report string) Option {
	return func(o *Orchestrator) {
		o.outputPath = teamsCSV
		o.reportPath = report
	}
}

func New(store *participant.Store, participantsPath string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:         store,
		repo:          participant.NewCSVRepository(participantsPath),
		maxIterations: matcher.DefaultMaxIterations,
		outputPath:    "formed_teams.csv",
		reportPath:    "formation_report.yaml",
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) SetProgram(p *tea.Program) {
	o.program = p
}

func (o *Orchestrator) send(msg tea.Msg) {
	if o.program != nil {
		o.program.Send(msg)
	}
}

// LoadParticipants replaces the store contents with the repository's rows.
func (o *Orchestrator) LoadParticipants() (loaded, skipped int, err error) {
	ps, skipped, err := o.repo.Load()
	if err != nil {
		return 0, 0, fmt.Errorf("load participants: %w", err)
	}
	o.store.Replace(ps)
	slog.Info("participants loaded", "path", o.repo.Path(), "count", len(ps), "skipped", skipped)
	return len(ps), skipped, nil
}

// LoadParticipantsCmd runs LoadParticipants for the UI.
func (o *Orchestrator) LoadParticipantsCmd() tea.Cmd {
	return func() tea.Msg {
		n, skipped, err := o.LoadParticipants()
		return ParticipantsLoadedMsg{Count: n, Skipped: skipped, Err: err}
	}
}

// AddParticipant assigns p the next free ID when it has none, stores it and
// appends it to the participants file. Nothing is stored if the append fails.
func (o *Orchestrator) AddParticipant(p *participant.Participant) error {
	if p.ID == "" {
		p.ID = o.store.NextID()
	} else if _, exists := o.store.Get(p.ID); exists {
		return fmt.Errorf("participant %s already exists", p.ID)
	}

	if err := o.repo.Append(p); err != nil {
		return fmt.Errorf("append participant: %w", err)
	}
	o.store.Add(p)

	slog.Info("participant added", "id", p.ID, "activity", p.Activity, "role", p.Role, "personality", p.Personality())
	return nil
}

// RemoveParticipant drops the participant and rewrites the participants file.
func (o *Orchestrator) RemoveParticipant(id string) error {
	p, ok := o.store.Get(id)
	if !ok {
		return fmt.Errorf("participant %s not found", id)
	}

	remaining := make([]*participant.Participant, 0, o.store.Len())
	for _, q := range o.store.All() {
		if q != p {
			remaining = append(remaining, q)
		}
	}
	if err := o.repo.SaveAll(remaining); err != nil {
		return fmt.Errorf("rewrite participants: %w", err)
	}
	o.store.Remove(p.ID)

	slog.Info("participant removed", "id", p.ID)
	return nil
}

// FormTeams splits the current pool into teams of size and writes the
// outputs. Precondition failures return matcher's sentinel errors and no
// formation. A failure to write the outputs is recorded on the returned
// formation instead.
func (o *Orchestrator) FormTeams(size int) (*Formation, error) {
	pool := o.store.All()
	if err := Validate(len(pool), size); err != nil {
		return nil, err
	}

	seed := o.seed
	if seed == 0 {
		seed = matcher.RandomSeed()
	}
	runID := uuid.NewString()
	log := slog.With("run_id", runID)
	log.Info("formation started", "participants", len(pool), "team_size", size, "seed", seed)

	res, err := matcher.Form(pool, matcher.Options{
		TeamSize:      size,
		Seed:          seed,
		MaxIterations: o.maxIterations,
		OnSwap: func(s matcher.Swap) {
			log.Debug("swap applied", "iteration", s.Iteration, "team_a", s.TeamA, "out", s.Out.ID,
				"team_b", s.TeamB, "in", s.In.ID, "variance", s.Variance)
			o.send(FormationProgressMsg{RunID: runID, Iteration: s.Iteration, Variance: s.Variance})
		},
	})
	if err != nil {
		return nil, err
	}

	f := &Formation{
		RunID:     runID,
		CreatedAt: o.now(),
		Seed:      seed,
		TeamSize:  size,
		Teams:     res.Teams,
		Stats:     res.Stats,
	}
	if f.Stats.Exhausted {
		log.Warn("balancer stopped at iteration budget", "iterations", f.Stats.Iterations)
	}
	log.Info("formation complete", "teams", len(f.Teams), "swaps", f.Stats.Swaps,
		"iterations", f.Stats.Iterations, "initial_variance", f.Stats.InitialVariance,
		"final_variance", f.Stats.FinalVariance)

	f.SaveErr = o.save(f)
	if f.SaveErr != nil {
		log.Error("saving formation failed", "err", f.SaveErr)
	}

	o.mu.Lock()
	o.last = f
	o.mu.Unlock()
	return f, nil
}

// FormTeamsCmd runs FormTeams off the UI goroutine.
func (o *Orchestrator) FormTeamsCmd(size int) tea.Cmd {
	return func() tea.Msg {
		f, err := o.FormTeams(size)
		return FormationDoneMsg{Formation: f, Err: err}
	}
}

func (o *Orchestrator) save(f *Formation) error {
	var errs []error
	if o.outputPath != "" {
		if err := team.SaveCSV(o.outputPath, f.Teams); err != nil {
			errs = append(errs, fmt.Errorf("save teams csv: %w", err))
		}
	}
	if o.reportPath != "" {
		r := team.Report{
			RunID:           f.RunID,
			CreatedAt:       f.CreatedAt,
			Seed:            f.Seed,
			TeamSize:        f.TeamSize,
			Participants:    f.TeamSize * len(f.Teams),
			InitialVariance: f.Stats.InitialVariance,
			FinalVariance:   f.Stats.FinalVariance,
			Iterations:      f.Stats.Iterations,
			Swaps:           f.Stats.Swaps,
			Exhausted:       f.Stats.Exhausted,
		}
		r.Summarize(f.Teams)
		if err := team.SaveReport(o.reportPath, r); err != nil {
			errs = append(errs, fmt.Errorf("save report: %w", err))
		}
	}
	return errors.Join(errs...)
}

// LastFormation returns the most recent successful run, or nil.
func (o *Orchestrator) LastFormation() *Formation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

func (o *Orchestrator) ParticipantsPath() string {
	return o.repo.Path()
}

func (o *Orchestrator) OutputPaths() (teamsCSV, report string) {
	return o.outputPath, o.reportPath
}
