// cmd/create-park-me-app/main.go
//
// This is the entry point for create-park-me-app.
// Run it from the directory the new project should live in.
//
// Flow:
// 1. Resolve the working directory and load config
// 2. Pick interactive or plain presentation based on the terminal
// 3. Run the create pipeline and print a summary

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/kingrea/park-me-cli/internal/config"
	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/logbook"
	"github.com/kingrea/park-me-cli/internal/pipeline"
	"github.com/kingrea/park-me-cli/internal/scaffold"
	"github.com/kingrea/park-me-cli/internal/tui"
)

func main() {
	plain := flag.Bool("plain", false, "disable interactive prompts and spinners")
	printConfig := flag.Bool("print-config", false, "print the default config.yaml and exit")
	flag.Parse()

	if *printConfig {
		fmt.Print(config.DefaultYAML())
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		die("determine working directory: %v", err)
	}
	env := config.Env{
		WorkDir: cwd,
		GOOS:    runtime.GOOS,
		Lookup:  os.LookupEnv,
	}
	// Both are optional; an empty value just skips that location.
	env.ConfigDir, _ = os.UserConfigDir()
	env.CacheDir, _ = os.UserCacheDir()

	cfg, err := config.Load(env)
	if err != nil {
		die("%v", err)
	}

	var lb *logbook.Logbook
	if path := cfg.LogPath(); path != "" {
		if lb, err = logbook.New(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: run journal disabled: %v\n", err)
		}
	}

	interactive := !*plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)

	var (
		prompter scaffold.Prompter
		runner   pipeline.StepRunner
	)
	if interactive {
		fmt.Println(tui.Banner())
		prompter = tui.NewTeaPrompter(os.Stdin, os.Stdout)
		runner = tui.NewSpinnerRunner(os.Stdout)
	} else {
		prompter = tui.NewLinePrompter(os.Stdin, os.Stdout)
		runner = tui.NewPlainRunner(os.Stdout)
	}

	svc := scaffold.NewService(cfg, exec.NewRealRunner(), prompter,
		scaffold.WithOutput(os.Stdout, os.Stderr),
		scaffold.WithLogbook(lb),
	)
	p := pipeline.New(svc, runner, pipeline.Options{
		RuntimeName: cfg.Settings.Runtime.Name,
		Logbook:     lb,
	})

	res := p.Run(context.Background())
	fmt.Print(tui.Summary(res, lb))
	os.Exit(res.ExitCode())
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "create-park-me-app: "+format+"\n", args...)
	os.Exit(1)
}
