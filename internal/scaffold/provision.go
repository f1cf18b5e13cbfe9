package scaffold

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kingrea/park-me-cli/internal/pipeline"
)

// Provision creates the data directory and copies each seed template into it
// byte for byte, in the configured order.
func (s *Service) Provision(ctx context.Context, st *pipeline.State) error {
	dataDir := st.Layout.DataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return pipeline.Fail(pipeline.StepData, pipeline.KindIO, "create "+dataDir, err)
	}
	for _, name := range s.cfg.Settings.Templates.Files {
		if err := ctx.Err(); err != nil {
			return pipeline.Fail(pipeline.StepData, pipeline.KindIO, "interrupted", err)
		}
		dst := st.Layout.DataFile(name)
		if err := copyTemplate(s.templates, name, dst); err != nil {
			return pipeline.Fail(pipeline.StepData, pipeline.KindIO, fmt.Sprintf("copy template %s", name), err)
		}
		s.log.Info("wrote %s", dst)
	}
	return nil
}

func copyTemplate(tmpl fs.FS, name, dst string) error {
	src, err := tmpl.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
