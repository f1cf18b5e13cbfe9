// internal/tui/workflow_view.go
//
// Step runners: how a pipeline step looks while it runs. The spinner runner
// animates a bubbletea spinner next to the step title and replaces it with a
// status line when the step ends. Steps that stream subprocess output get a
// header line instead, since a redrawing spinner would garble the output.

package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/park-me-cli/internal/pipeline"
)

type stepDoneMsg struct {
	err error
}

// stepModel shows a spinner until the step reports back.
type stepModel struct {
	step    pipeline.Step
	spinner spinner.Model
	done    bool
	err     error
}

func newStepModel(step pipeline.Step) stepModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = promptStyle
	return stepModel{step: step, spinner: s}
}

func (m stepModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m stepModel) View() string {
	if m.done {
		return StatusLine(m.step, m.err) + "\n"
	}
	return m.spinner.View() + " " + m.step.Title + "…\n"
}

// SpinnerRunner presents steps with an animated spinner. It does not read
// terminal input, so ctrl+c keeps its default meaning while a step runs.
type SpinnerRunner struct {
	out io.Writer
}

// NewSpinnerRunner creates a runner drawing to out, which should be a terminal.
func NewSpinnerRunner(out io.Writer) *SpinnerRunner {
	return &SpinnerRunner{out: out}
}

// RunStep runs fn while the spinner is drawn and returns fn's error.
func (r *SpinnerRunner) RunStep(ctx context.Context, step pipeline.Step, fn func(context.Context) error) error {
	if step.Streams {
		return runWithHeader(ctx, r.out, step, fn)
	}

	prog := tea.NewProgram(newStepModel(step),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(r.out),
		tea.WithoutSignalHandler(),
	)
	result := make(chan error, 1)
	go func() {
		err := fn(ctx)
		result <- err
		prog.Send(stepDoneMsg{err: err})
	}()

	if _, err := prog.Run(); err != nil {
		stepErr := <-result
		fmt.Fprintln(r.out, StatusLine(step, stepErr))
		return stepErr
	}
	return <-result
}

// PlainRunner presents steps as plain lines, for output that is not a terminal.
type PlainRunner struct {
	out io.Writer
}

// NewPlainRunner creates a runner writing plain lines to out.
func NewPlainRunner(out io.Writer) *PlainRunner {
	return &PlainRunner{out: out}
}

// RunStep prints the step title, runs fn, and prints the status line.
func (r *PlainRunner) RunStep(ctx context.Context, step pipeline.Step, fn func(context.Context) error) error {
	return runWithHeader(ctx, r.out, step, fn)
}

func runWithHeader(ctx context.Context, out io.Writer, step pipeline.Step, fn func(context.Context) error) error {
	fmt.Fprintln(out, hintStyle.Render("→")+" "+step.Title+"…")
	err := fn(ctx)
	fmt.Fprintln(out, StatusLine(step, err))
	return err
}
