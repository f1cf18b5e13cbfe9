// Package scaffold implements the create steps: input collection, repository
// fetch, data provisioning, config rendering, dependency install, and the
// runtime check.
package scaffold

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/kingrea/park-me-cli/internal/assets"
	"github.com/kingrea/park-me-cli/internal/config"
	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/logbook"
	"github.com/kingrea/park-me-cli/internal/pipeline"
)

// Prompter asks the user the two questions a run needs.
// Implementations return pipeline.ErrCancelled when the user backs out.
type Prompter interface {
	ProjectName(ctx context.Context, defaultName string) (string, error)
	ConfirmOverwrite(ctx context.Context, path string) (bool, error)
}

// Service implements pipeline.Service on the real filesystem.
type Service struct {
	cfg       *config.Config
	runner    exec.CommandRunner
	prompter  Prompter
	templates fs.FS
	stdout    io.Writer
	stderr    io.Writer
	log       *logbook.Logbook
}

var _ pipeline.Service = (*Service)(nil)

// Option customizes Service construction.
type Option func(*Service)

// WithTemplates overrides the template filesystem.
func WithTemplates(tmpl fs.FS) Option {
	return func(s *Service) {
		if tmpl != nil {
			s.templates = tmpl
		}
	}
}

// WithOutput sets where streamed subprocess output goes.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Service) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithLogbook records commands and file writes to lb.
func WithLogbook(lb *logbook.Logbook) Option {
	return func(s *Service) {
		s.log = lb
	}
}

// NewService wires the steps to cfg. Templates come from cfg's templates.dir
// when set, and from the bundled assets otherwise.
func NewService(cfg *config.Config, runner exec.CommandRunner, prompter Prompter, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		runner:    runner,
		prompter:  prompter,
		templates: templatesFor(cfg),
		stdout:    io.Discard,
		stderr:    io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func templatesFor(cfg *config.Config) fs.FS {
	if dir := cfg.Settings.Templates.Dir; dir != "" {
		return os.DirFS(dir)
	}
	return assets.Templates()
}
