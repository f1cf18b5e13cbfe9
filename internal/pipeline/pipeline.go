// Package pipeline drives a create run: collect input, then clone, provision,
// render, and install in a fixed order, then run the advisory runtime check.
// The first fatal error stops the run and nothing already written is undone.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kingrea/park-me-cli/internal/logbook"
	"github.com/kingrea/park-me-cli/internal/workflow"
)

// StepID is a stable step identifier used in errors and the logbook.
type StepID string

const (
	StepInput   StepID = "input"
	StepClear   StepID = "clear"
	StepClone   StepID = "clone"
	StepData    StepID = "data"
	StepConfig  StepID = "config"
	StepInstall StepID = "install"
	StepRuntime StepID = "runtime"
)

// Step describes one displayed unit of work.
type Step struct {
	ID    StepID
	Title string
	// Streams is set when the step writes subprocess output to the console,
	// so runners must not draw over it.
	Streams bool
}

// Decision is the outcome of the overwrite check.
type Decision int

const (
	// DecisionFresh means the target directory did not exist.
	DecisionFresh Decision = iota
	// DecisionOverwrite means the target existed and the user agreed to replace it.
	DecisionOverwrite
	// DecisionDeclined means the target existed and the user kept it.
	DecisionDeclined
)

// Warning is a non-fatal problem surfaced at the end of the run.
type Warning struct {
	Step    StepID
	Message string
	Hint    string
}

// State accumulates what steps learn during a run.
type State struct {
	RunID string
	Phase workflow.Phase

	// Populated by CollectInput
	ProjectName string
	Layout      *workflow.Layout
	Decision    Decision

	// Populated by CheckPrerequisite when the runtime answers
	RuntimeVersion string

	Warnings []Warning
}

// Service defines the step implementations.
// Implementations are injected so the pipeline can be tested without git,
// a package manager, or a terminal.
type Service interface {
	// CollectInput asks for the project name and, when the target exists,
	// whether to overwrite it. It sets ProjectName, Layout, and Decision.
	CollectInput(ctx context.Context, st *State) error

	// ClearTarget recursively removes an existing target directory.
	ClearTarget(ctx context.Context, st *State) error

	// Fetch clones the application repository into the app directory.
	Fetch(ctx context.Context, st *State) error

	// Provision copies the seed templates into the data directory.
	Provision(ctx context.Context, st *State) error

	// Render writes the config file with the data file paths substituted.
	Render(ctx context.Context, st *State) error

	// Install runs the package manager in the app directory.
	Install(ctx context.Context, st *State) error

	// CheckPrerequisite probes the optional runtime. Errors are advisory.
	CheckPrerequisite(ctx context.Context, st *State) error
}

// StepRunner presents a step while it runs. It must call fn exactly once and
// return its error unchanged.
type StepRunner interface {
	RunStep(ctx context.Context, step Step, fn func(context.Context) error) error
}

// Result is the outcome of a run.
type Result struct {
	State *State
	// Err is nil on success, a KindUserAbort StepError when the user backed
	// out, and the fatal error otherwise.
	Err error
}

// Phase returns the terminal phase of the run.
func (r Result) Phase() workflow.Phase {
	if r.State == nil {
		return workflow.PhaseStart
	}
	return r.State.Phase
}

// ExitCode maps the result to a process exit code.
func (r Result) ExitCode() int {
	return ExitCode(r.Err)
}

// Options customizes a pipeline.
type Options struct {
	// RuntimeName labels the prerequisite step, e.g. "Java".
	RuntimeName string
	Logbook     *logbook.Logbook
	// NewRunID overrides run ID generation (tests).
	NewRunID func() string
}

// Pipeline orchestrates the execution of steps in a fixed order.
type Pipeline struct {
	svc    Service
	runner StepRunner
	opts   Options
}

// New creates a pipeline with the given service and presentation.
func New(svc Service, runner StepRunner, opts Options) *Pipeline {
	if opts.NewRunID == nil {
		opts.NewRunID = func() string { return uuid.NewString() }
	}
	if opts.RuntimeName == "" {
		opts.RuntimeName = "runtime"
	}
	return &Pipeline{svc: svc, runner: runner, opts: opts}
}

type fatalStep struct {
	step Step
	run  func(context.Context, *State) error
	next workflow.Phase
}

// Steps returns the displayed steps in execution order.
func (p *Pipeline) Steps() []Step {
	steps := make([]Step, 0, 5)
	for _, s := range p.fatalSteps() {
		steps = append(steps, s.step)
	}
	return append(steps, p.runtimeStep())
}

func (p *Pipeline) fatalSteps() []fatalStep {
	return []fatalStep{
		{Step{ID: StepClone, Title: "Cloning application repository"}, p.svc.Fetch, workflow.PhaseCloned},
		{Step{ID: StepData, Title: "Provisioning data files"}, p.svc.Provision, workflow.PhaseDataProvisioned},
		{Step{ID: StepConfig, Title: "Rendering configuration"}, p.svc.Render, workflow.PhaseConfigRendered},
		{Step{ID: StepInstall, Title: "Installing dependencies", Streams: true}, p.svc.Install, workflow.PhaseDependenciesInstalled},
	}
}

func (p *Pipeline) runtimeStep() Step {
	return Step{ID: StepRuntime, Title: fmt.Sprintf("Checking %s installation", p.opts.RuntimeName)}
}

// Run executes the whole pipeline. It never panics on step failure; the
// outcome is reported through Result.
func (p *Pipeline) Run(ctx context.Context) Result {
	st := &State{RunID: p.opts.NewRunID(), Phase: workflow.PhaseStart}
	lb := p.opts.Logbook
	lb.Info("[%s] run started", st.RunID)

	if err := p.svc.CollectInput(ctx, st); err != nil {
		if KindOf(err) == KindUserAbort {
			return p.finish(st, workflow.PhaseAborted, err)
		}
		return p.finish(st, workflow.PhaseFailed, err)
	}
	if err := p.advance(st, workflow.PhaseInputCollected); err != nil {
		return p.finish(st, workflow.PhaseFailed, err)
	}
	lb.Info("[%s] project %q at %s", st.RunID, st.ProjectName, st.Layout.Root())

	switch st.Decision {
	case DecisionDeclined:
		return p.finish(st, workflow.PhaseAborted, Abort(StepInput, "overwrite declined"))
	case DecisionOverwrite:
		if err := p.svc.ClearTarget(ctx, st); err != nil {
			return p.finish(st, workflow.PhaseFailed, err)
		}
		if err := p.advance(st, workflow.PhaseOverwritten); err != nil {
			return p.finish(st, workflow.PhaseFailed, err)
		}
		lb.Warn("[%s] removed existing %s", st.RunID, st.Layout.Root())
	}

	for _, s := range p.fatalSteps() {
		run := s.run
		err := p.runner.RunStep(ctx, s.step, func(ctx context.Context) error {
			return run(ctx, st)
		})
		if err != nil {
			return p.finish(st, workflow.PhaseFailed, err)
		}
		if err := p.advance(st, s.next); err != nil {
			return p.finish(st, workflow.PhaseFailed, err)
		}
		lb.Info("[%s] %s", st.RunID, s.next)
	}

	step := p.runtimeStep()
	if err := p.runner.RunStep(ctx, step, func(ctx context.Context) error {
		return p.svc.CheckPrerequisite(ctx, st)
	}); err != nil {
		w := Warning{Step: step.ID, Message: err.Error()}
		if se, ok := AsStepError(err); ok {
			w.Message = se.Error()
			w.Hint = se.Hint
		}
		st.Warnings = append(st.Warnings, w)
		lb.Warn("[%s] %s", st.RunID, w.Message)
	}
	if err := p.advance(st, workflow.PhasePrerequisiteChecked); err != nil {
		return p.finish(st, workflow.PhaseFailed, err)
	}
	return p.finish(st, workflow.PhaseDone, nil)
}

func (p *Pipeline) advance(st *State, next workflow.Phase) error {
	if !st.Phase.CanTransition(next) {
		return fmt.Errorf("pipeline: illegal transition %s -> %s", st.Phase, next)
	}
	st.Phase = next
	return nil
}

func (p *Pipeline) finish(st *State, terminal workflow.Phase, err error) Result {
	lb := p.opts.Logbook
	if advErr := p.advance(st, terminal); advErr != nil {
		lb.Error("[%s] %v", st.RunID, advErr)
		st.Phase = terminal
	}
	switch terminal {
	case workflow.PhaseAborted:
		lb.Info("[%s] aborted: %v", st.RunID, err)
	case workflow.PhaseFailed:
		lb.Error("[%s] failed: %v", st.RunID, err)
	default:
		lb.Info("[%s] done with %d warning(s)", st.RunID, len(st.Warnings))
	}
	return Result{State: st, Err: err}
}
