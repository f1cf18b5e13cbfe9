// internal/workflow/workflow.go
//
// Defines the directory structure of a generated project.
//
// <project>/
// ├── app/   <- clone of the application repository
// │   └── src/main/resources/config.properties
// └── data/  <- JSON seed files the app reads at runtime

package workflow

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Directory names within a generated project
const (
	AppDir  = "app"
	DataDir = "data"
)

// Layout resolves every path a create run touches.
type Layout struct {
	// Base path to the project directory
	root string
	// root relative to the working directory
	rel string
}

// NewLayout places a project named name under workDir.
func NewLayout(workDir, name string) (*Layout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("workflow: project name is required")
	}
	base, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("workflow: resolve %s: %w", workDir, err)
	}
	// A leading separator is just part of the name, so the target stays under workDir.
	root := filepath.Join(base, name)
	rel, err := filepath.Rel(base, root)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("workflow: project name %q must name a directory inside %s", name, base)
	}
	return &Layout{root: root, rel: rel}, nil
}

// Rel returns the target directory relative to the working directory
func (l *Layout) Rel() string {
	return l.rel
}

// Root returns the target directory
func (l *Layout) Root() string {
	return l.root
}

// AppDir returns the path the repository is cloned into
func (l *Layout) AppDir() string {
	return filepath.Join(l.root, AppDir)
}

// DataDir returns the path holding the seed files
func (l *Layout) DataDir() string {
	return filepath.Join(l.root, DataDir)
}

// DataFile returns the absolute path of a seed file
func (l *Layout) DataFile(name string) string {
	return filepath.Join(l.DataDir(), name)
}

// AppFile resolves a slash-separated path relative to the app directory
func (l *Layout) AppFile(rel string) string {
	return filepath.Join(l.AppDir(), filepath.FromSlash(rel))
}
