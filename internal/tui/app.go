// internal/tui/app.go
//
// Prompt models for the create flow. Each prompt is a small bubbletea program
// (Elm architecture: Model, Update, View) that quits once it has an answer.
// The result is read back from the final model after Run returns.

package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/park-me-cli/internal/pipeline"
)

// namePrompt asks for the project name.
type namePrompt struct {
	input       textinput.Model
	defaultName string
	value       string
	done        bool
	cancelled   bool
}

func newNamePrompt(defaultName string) namePrompt {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = defaultName
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()
	return namePrompt{input: ti, defaultName: defaultName}
}

func (m namePrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (m namePrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			if m.value == "" {
				m.value = m.defaultName
			}
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m namePrompt) View() string {
	label := promptStyle.Render("?") + " Project name"
	if m.done {
		return label + " " + answerStyle.Render(m.value) + "\n"
	}
	if m.cancelled {
		return label + " " + hintStyle.Render("(cancelled)") + "\n"
	}
	return label + "\n" + m.input.View() + "\n" + hintStyle.Render("  enter to confirm · esc to quit") + "\n"
}

// confirmPrompt is a yes/no question that defaults to no.
type confirmPrompt struct {
	question  string
	yes       bool
	done      bool
	cancelled bool
}

func newConfirmPrompt(question string) confirmPrompt {
	return confirmPrompt{question: question}
}

func (m confirmPrompt) Init() tea.Cmd {
	return nil
}

func (m confirmPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.yes = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab":
		m.yes = !m.yes
		return m, nil
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmPrompt) View() string {
	label := promptStyle.Render("?") + " " + m.question
	if m.done {
		answer := "No"
		if m.yes {
			answer = "Yes"
		}
		return label + " " + answerStyle.Render(answer) + "\n"
	}
	if m.cancelled {
		return label + " " + hintStyle.Render("(cancelled)") + "\n"
	}
	yes, no := normalStyle.Render("  Yes  "), selectedStyle.Render("> No")
	if m.yes {
		yes, no = selectedStyle.Render("> Yes  "), normalStyle.Render("  No")
	}
	return label + "\n" + yes + no + "\n" + hintStyle.Render("  y/n, arrows to toggle, enter to confirm") + "\n"
}

// TeaPrompter asks questions with interactive bubbletea prompts.
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTeaPrompter creates a prompter bound to a terminal.
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

func (p *TeaPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, pipeline.ErrCancelled
		}
		return nil, fmt.Errorf("tui: prompt: %w", err)
	}
	return final, nil
}

// ProjectName asks for the project name; a blank answer yields defaultName.
func (p *TeaPrompter) ProjectName(ctx context.Context, defaultName string) (string, error) {
	final, err := p.run(ctx, newNamePrompt(defaultName))
	if err != nil {
		return "", err
	}
	m := final.(namePrompt)
	if m.cancelled {
		return "", pipeline.ErrCancelled
	}
	return m.value, nil
}

// ConfirmOverwrite asks whether an existing directory may be replaced.
func (p *TeaPrompter) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	final, err := p.run(ctx, newConfirmPrompt(overwriteQuestion(path)))
	if err != nil {
		return false, err
	}
	m := final.(confirmPrompt)
	if m.cancelled {
		return false, pipeline.ErrCancelled
	}
	return m.yes, nil
}

func overwriteQuestion(path string) string {
	return fmt.Sprintf("Directory %s already exists. Overwrite it?", path)
}

// LinePrompter asks questions on plain line-based input, for pipes and CI.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter reading answers one line at a time.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ProjectName reads one line; blank input or end of input yields defaultName.
func (p *LinePrompter) ProjectName(ctx context.Context, defaultName string) (string, error) {
	fmt.Fprintf(p.out, "? Project name (%s): ", defaultName)
	answer, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("tui: read project name: %w", err)
	}
	if answer == "" {
		return defaultName, nil
	}
	return answer, nil
}

// ConfirmOverwrite reads one line; only y or yes confirms.
func (p *LinePrompter) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	fmt.Fprintf(p.out, "? %s (y/N): ", overwriteQuestion(path))
	answer, err := p.readLine()
	if err != nil {
		return false, fmt.Errorf("tui: read confirmation: %w", err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
