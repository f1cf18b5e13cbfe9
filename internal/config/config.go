// internal/config/config.go
//
// This package loads the scaffolder settings: where the application repository
// lives, which templates get copied, and which commands install dependencies and
// probe the runtime. Every value has a default, so the config file is optional.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath points at an explicit config file and wins over the user config dir.
	EnvConfigPath = "PARK_ME_CONFIG"

	// AppName names the per-user config and cache folders.
	AppName = "park-me"

	configFileName = "config.yaml"
	logFileName    = "create.log"
)

const defaultConfigYAML = `# park-me scaffolder configuration
version: 1

project:
  default_name: park-me-app

repository:
  url: https://github.com/park-me/park-me-app.git
  branch: master

# Leave dir empty to use the templates bundled into the binary.
templates:
  dir: ""
  config: config.properties
  files:
    - users.json
    - bookings.json
    - transactions.json
    - parkingSlots.json

render:
  output: src/main/resources/config.properties
  strict: false

# env adds variables for the command, e.g. MAVEN_OPTS or JAVA_HOME.
install:
  command: [mvn, install]
  windows_command: [mvn.cmd, install]
  env: {}

runtime:
  name: Java
  command: [java, -version]
  windows_command: [cmd, /C, java, -version]
  env: {}
  docs_url: https://adoptium.net/installation/
`

// ProjectSettings controls the project prompt.
type ProjectSettings struct {
	DefaultName string `yaml:"default_name"`
}

// RepositorySettings names the application source that gets cloned.
type RepositorySettings struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch"`
}

// TemplateSettings describes the bundled data and config templates.
type TemplateSettings struct {
	Dir    string   `yaml:"dir,omitempty"`
	Config string   `yaml:"config"`
	Files  []string `yaml:"files"`
}

// RenderSettings controls config rendering.
type RenderSettings struct {
	Output string `yaml:"output"`
	Strict bool   `yaml:"strict"`
}

// CommandSettings holds an argv per host family and the variables layered
// over the inherited environment when it runs.
type CommandSettings struct {
	Command        []string          `yaml:"command"`
	WindowsCommand []string          `yaml:"windows_command,omitempty"`
	Env            map[string]string `yaml:"env,omitempty"`
}

// RuntimeSettings describes the optional runtime probe.
type RuntimeSettings struct {
	Name            string `yaml:"name"`
	DocsURL         string `yaml:"docs_url"`
	CommandSettings `yaml:",inline"`
}

// LogSettings controls where the run journal is written.
type LogSettings struct {
	Dir string `yaml:"dir,omitempty"`
}

// Settings models config.yaml.
type Settings struct {
	Version    int                `yaml:"version"`
	Project    ProjectSettings    `yaml:"project"`
	Repository RepositorySettings `yaml:"repository"`
	Templates  TemplateSettings   `yaml:"templates"`
	Render     RenderSettings     `yaml:"render"`
	Install    CommandSettings    `yaml:"install"`
	Runtime    RuntimeSettings    `yaml:"runtime"`
	Log        LogSettings        `yaml:"log"`
}

// Env carries the process-wide inputs the scaffolder would otherwise read ambiently.
type Env struct {
	// WorkDir is the directory the project gets created in.
	WorkDir string
	// GOOS selects Windows or POSIX command forms.
	GOOS string
	// Lookup reads environment variables; nil means no variables are set.
	Lookup func(string) (string, bool)
	// ConfigDir and CacheDir are the per-user base directories.
	ConfigDir string
	CacheDir  string
}

func (e Env) lookup(key string) string {
	if e.Lookup == nil {
		return ""
	}
	v, _ := e.Lookup(key)
	return strings.TrimSpace(v)
}

// Config holds the resolved runtime configuration.
type Config struct {
	// Path is the config file that was read, empty when only defaults apply.
	Path string
	Env  Env

	Settings Settings
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	var s Settings
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &s); err != nil {
		panic(fmt.Sprintf("config: built-in defaults: %v", err))
	}
	return s
}

// DefaultYAML returns the commented default document, suitable for writing to disk.
func DefaultYAML() string {
	return defaultConfigYAML
}

// Load resolves the config file location from env and reads it over the defaults.
func Load(env Env) (*Config, error) {
	cfg := &Config{
		Path:     resolveConfigPath(env),
		Env:      env,
		Settings: Defaults(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveConfigPath(env Env) string {
	if explicit := env.lookup(EnvConfigPath); explicit != "" {
		return resolvePath(env.WorkDir, explicit)
	}
	if env.ConfigDir == "" {
		return ""
	}
	return filepath.Join(env.ConfigDir, AppName, configFileName)
}

func (c *Config) load() error {
	if c.Path == "" {
		c.Settings.normalize(c.Env.WorkDir)
		return c.Settings.validate()
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && c.Env.lookup(EnvConfigPath) == "" {
			c.Path = ""
			c.Settings.normalize(c.Env.WorkDir)
			return c.Settings.validate()
		}
		return fmt.Errorf("config: read %s: %w", c.Path, err)
	}

	parsed := Defaults()
	parsed.Templates.Files = nil
	parsed.Install = CommandSettings{}
	parsed.Runtime.CommandSettings = CommandSettings{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.Path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(filepath.Dir(c.Path))
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %s: %w", c.Path, err)
	}
	c.Settings = parsed
	return nil
}

func (s *Settings) applyDefaults() {
	def := Defaults()
	if s.Version == 0 {
		s.Version = 1
	}
	if len(s.Templates.Files) == 0 {
		s.Templates.Files = def.Templates.Files
	}
	if len(s.Install.Command) == 0 {
		s.Install.Command = def.Install.Command
		s.Install.WindowsCommand = def.Install.WindowsCommand
	}
	if len(s.Runtime.Command) == 0 {
		s.Runtime.Command = def.Runtime.Command
		s.Runtime.WindowsCommand = def.Runtime.WindowsCommand
	}
}

func (s *Settings) normalize(base string) {
	s.Project.DefaultName = strings.TrimSpace(s.Project.DefaultName)
	s.Repository.URL = strings.TrimSpace(s.Repository.URL)
	s.Repository.Branch = strings.TrimSpace(s.Repository.Branch)
	s.Templates.Dir = resolvePath(base, s.Templates.Dir)
	s.Templates.Config = strings.TrimSpace(s.Templates.Config)
	for i := range s.Templates.Files {
		s.Templates.Files[i] = strings.TrimSpace(s.Templates.Files[i])
	}
	s.Render.Output = filepath.ToSlash(strings.TrimSpace(s.Render.Output))
	s.Runtime.DocsURL = strings.TrimSpace(s.Runtime.DocsURL)
	s.Log.Dir = resolvePath(base, s.Log.Dir)
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if s.Project.DefaultName == "" {
		return fmt.Errorf("project.default_name is required")
	}
	if s.Repository.URL == "" {
		return fmt.Errorf("repository.url is required")
	}
	if s.Repository.Branch == "" {
		return fmt.Errorf("repository.branch is required")
	}
	if s.Templates.Config == "" {
		return fmt.Errorf("templates.config is required")
	}
	if len(s.Templates.Files) == 0 {
		return fmt.Errorf("templates.files must list at least one file")
	}
	seen := make(map[string]bool, len(s.Templates.Files))
	for i, name := range s.Templates.Files {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("templates.files[%d]: %q is not a plain file name", i, name)
		}
		if seen[name] {
			return fmt.Errorf("templates.files[%d]: duplicate %q", i, name)
		}
		seen[name] = true
	}
	if s.Render.Output == "" || filepath.IsAbs(s.Render.Output) {
		return fmt.Errorf("render.output must be a path relative to the app directory")
	}
	if len(s.Install.Command) == 0 {
		return fmt.Errorf("install.command is required")
	}
	if len(s.Runtime.Command) == 0 {
		return fmt.Errorf("runtime.command is required")
	}
	if err := validateEnv("install.env", s.Install.Env); err != nil {
		return err
	}
	return validateEnv("runtime.env", s.Runtime.Env)
}

func validateEnv(field string, env map[string]string) error {
	for key := range env {
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "= ") {
			return fmt.Errorf("%s: %q is not a valid variable name", field, key)
		}
	}
	return nil
}

// DefaultProjectName is offered when the user leaves the name prompt blank.
func (c *Config) DefaultProjectName() string {
	return c.Settings.Project.DefaultName
}

// InstallCommand returns the dependency install argv for the configured host OS.
func (c *Config) InstallCommand() []string {
	return c.Settings.Install.forOS(c.Env.GOOS)
}

// InstallEnv returns the variables added to the install command's environment.
func (c *Config) InstallEnv() map[string]string {
	return copyEnv(c.Settings.Install.Env)
}

// RuntimeEnv returns the variables added to the runtime probe's environment.
func (c *Config) RuntimeEnv() map[string]string {
	return copyEnv(c.Settings.Runtime.Env)
}

// RuntimeCommand returns the runtime version probe argv for the configured host OS.
func (c *Config) RuntimeCommand() []string {
	return c.Settings.Runtime.forOS(c.Env.GOOS)
}

// LogPath returns the run journal location, empty when no cache dir is known.
func (c *Config) LogPath() string {
	dir := c.Settings.Log.Dir
	if dir == "" {
		if c.Env.CacheDir == "" {
			return ""
		}
		dir = filepath.Join(c.Env.CacheDir, AppName)
	}
	return filepath.Join(dir, logFileName)
}

func (cs CommandSettings) forOS(goos string) []string {
	argv := cs.Command
	if goos == "windows" && len(cs.WindowsCommand) > 0 {
		argv = cs.WindowsCommand
	}
	return append([]string(nil), argv...)
}

func copyEnv(env map[string]string) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
