package scaffold

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/kingrea/park-me-cli/internal/config"
	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/pipeline"
	"github.com/kingrea/park-me-cli/internal/workflow"
)

type call struct {
	name string
	args []string
	opts exec.RunOpts
}

type stubRunner struct {
	calls  []call
	result exec.CmdResult
	err    error
	onRun  func(c call)
}

func (r *stubRunner) Run(ctx context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	c := call{name: name, args: args, opts: opts}
	r.calls = append(r.calls, c)
	if r.onRun != nil {
		r.onRun(c)
	}
	return r.result, r.err
}

type stubPrompter struct {
	name       string
	nameErr    error
	overwrite  bool
	confirmErr error
	asked      []string
}

func (p *stubPrompter) ProjectName(ctx context.Context, defaultName string) (string, error) {
	p.asked = append(p.asked, "name:"+defaultName)
	return p.name, p.nameErr
}

func (p *stubPrompter) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	p.asked = append(p.asked, "overwrite:"+path)
	return p.overwrite, p.confirmErr
}

const testTemplate = "users=%%user.file.path%%\nbookings=%%booking.file.path%%\ntx=%%transaction.file.path%%\nslots=%%slots.file.path%%\n"

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"users.json":        {Data: []byte(`[{"id":"u1"}]`)},
		"bookings.json":     {Data: []byte(`[]`)},
		"transactions.json": {Data: []byte("[\n]\n")},
		"parkingSlots.json": {Data: []byte(`[{"id":"A1"}]`)},
		"config.properties": {Data: []byte(testTemplate)},
	}
}

func testConfig(t *testing.T, workDir string) *config.Config {
	t.Helper()
	cfg, err := config.Load(config.Env{WorkDir: workDir, GOOS: "linux"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func testState(t *testing.T, workDir string) *pipeline.State {
	t.Helper()
	layout, err := workflow.NewLayout(workDir, "demo")
	if err != nil {
		t.Fatal(err)
	}
	return &pipeline.State{ProjectName: "demo", Layout: layout}
}

func newTestService(t *testing.T, workDir string, runner exec.CommandRunner, prompter Prompter) *Service {
	t.Helper()
	return NewService(testConfig(t, workDir), runner, prompter, WithTemplates(testTemplates()))
}
