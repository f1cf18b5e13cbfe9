package scaffold

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/kingrea/park-me-cli/internal/pipeline"
	"github.com/kingrea/park-me-cli/internal/workflow"
)

// CollectInput asks for the project name and decides what to do with an
// existing target directory. Nothing on disk changes here.
func (s *Service) CollectInput(ctx context.Context, st *pipeline.State) error {
	defaultName := s.cfg.DefaultProjectName()
	name, err := s.prompter.ProjectName(ctx, defaultName)
	if err != nil {
		if errors.Is(err, pipeline.ErrCancelled) {
			return pipeline.Abort(pipeline.StepInput, "cancelled at project name")
		}
		return pipeline.Fail(pipeline.StepInput, pipeline.KindIO, "read project name", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	layout, err := workflow.NewLayout(s.cfg.Env.WorkDir, name)
	if err != nil {
		return pipeline.Fail(pipeline.StepInput, pipeline.KindIO, "resolve target directory", err)
	}
	st.ProjectName = name
	st.Layout = layout
	st.Decision = pipeline.DecisionFresh

	if _, err := os.Lstat(layout.Root()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return pipeline.Fail(pipeline.StepInput, pipeline.KindIO, "inspect "+layout.Root(), err)
	}

	overwrite, err := s.prompter.ConfirmOverwrite(ctx, layout.Root())
	if err != nil && !errors.Is(err, pipeline.ErrCancelled) {
		return pipeline.Fail(pipeline.StepInput, pipeline.KindIO, "read overwrite confirmation", err)
	}
	if overwrite && err == nil {
		st.Decision = pipeline.DecisionOverwrite
	} else {
		st.Decision = pipeline.DecisionDeclined
	}
	return nil
}

// ClearTarget removes the existing target directory tree.
func (s *Service) ClearTarget(ctx context.Context, st *pipeline.State) error {
	root := st.Layout.Root()
	s.log.Warn("removing %s", root)
	if err := os.RemoveAll(root); err != nil {
		return pipeline.Fail(pipeline.StepClear, pipeline.KindIO, "remove "+root, err)
	}
	return nil
}
