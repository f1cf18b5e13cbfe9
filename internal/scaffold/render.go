package scaffold

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/park-me-cli/internal/pipeline"
	"github.com/kingrea/park-me-cli/internal/workflow"
)

// Placeholder binds a template token to the seed file whose path replaces it.
type Placeholder struct {
	Token    string
	DataFile string
}

// Placeholders lists the config template tokens and the seed file each resolves to.
var Placeholders = []Placeholder{
	{Token: "%%user.file.path%%", DataFile: "users.json"},
	{Token: "%%booking.file.path%%", DataFile: "bookings.json"},
	{Token: "%%transaction.file.path%%", DataFile: "transactions.json"},
	{Token: "%%slots.file.path%%", DataFile: "parkingSlots.json"},
}

// MissingTokensError lists placeholders a strict render could not find.
type MissingTokensError struct {
	Tokens []string
}

func (e *MissingTokensError) Error() string {
	return "template is missing " + strings.Join(e.Tokens, ", ")
}

// Substitute replaces the first occurrence of each placeholder token with its
// value. Tokens not present are skipped unless strict is set, in which case
// they are reported together in a *MissingTokensError. Text that looks like a
// token but is not in values is left alone.
func Substitute(template string, values []Substitution, strict bool) (string, error) {
	var missing []string
	out := template
	for _, v := range values {
		if !strings.Contains(out, v.Token) {
			missing = append(missing, v.Token)
			continue
		}
		out = strings.Replace(out, v.Token, v.Value, 1)
	}
	if strict && len(missing) > 0 {
		return "", &MissingTokensError{Tokens: missing}
	}
	return out, nil
}

// Substitution is a resolved token value.
type Substitution struct {
	Token string
	Value string
}

// DataPathSubstitutions resolves every placeholder to the forward-slash
// absolute path of its seed file inside layout.
func DataPathSubstitutions(layout *workflow.Layout) []Substitution {
	subs := make([]Substitution, 0, len(Placeholders))
	for _, p := range Placeholders {
		subs = append(subs, Substitution{
			Token: p.Token,
			Value: filepath.ToSlash(layout.DataFile(p.DataFile)),
		})
	}
	return subs
}

// Render reads the config template, fills in the data file paths, and writes
// the result inside the app directory.
func (s *Service) Render(ctx context.Context, st *pipeline.State) error {
	name := s.cfg.Settings.Templates.Config
	raw, err := fs.ReadFile(s.templates, name)
	if err != nil {
		return pipeline.Fail(pipeline.StepConfig, pipeline.KindIO, "read config template "+name, err)
	}

	rendered, err := Substitute(string(raw), DataPathSubstitutions(st.Layout), s.cfg.Settings.Render.Strict)
	if err != nil {
		return pipeline.Fail(pipeline.StepConfig, pipeline.KindIO, "render "+name, err)
	}

	dst := st.Layout.AppFile(s.cfg.Settings.Render.Output)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return pipeline.Fail(pipeline.StepConfig, pipeline.KindIO, "create "+filepath.Dir(dst), err)
	}
	if err := writeFileAtomic(dst, []byte(rendered), 0o644); err != nil {
		return pipeline.Fail(pipeline.StepConfig, pipeline.KindIO, "write "+dst, err)
	}
	s.log.Info("wrote %s", dst)
	return nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// and a rename, so a failed write never leaves a truncated config behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".park-me-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	success = true
	return nil
}
