// Package testutil builds throwaway project trees for integration-style
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project is a temporary project rooted in t.TempDir(). It is removed
// automatically when the test finishes.
type Project struct {
	t    *testing.T
	Root string
}

// NewProject creates an empty project directory.
func NewProject(t *testing.T) *Project {
	t.Helper()
	return &Project{t: t, Root: t.TempDir()}
}

// WriteFile writes content at the slash-separated relative path,
// creating parent directories as needed.
func (p *Project) WriteFile(rel, content string) *Project {
	p.t.Helper()
	abs := filepath.Join(p.Root, filepath.FromSlash(rel))
	require.NoError(p.t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(p.t, os.WriteFile(abs, []byte(content), 0o644))
	return p
}

// WriteManifest writes a pubspec.yaml at the project root.
func (p *Project) WriteManifest(content string) *Project {
	p.t.Helper()
	return p.WriteFile("pubspec.yaml", content)
}

// Mkdir creates an empty directory at the relative path.
func (p *Project) Mkdir(rel string) *Project {
	p.t.Helper()
	require.NoError(p.t, os.MkdirAll(filepath.Join(p.Root, filepath.FromSlash(rel)), 0o755))
	return p
}

// FlutterManifest is a minimal valid Flutter pubspec body.
func FlutterManifest(name string, deps map[string]string) string {
	body := "name: " + name + "\nversion: 1.0.0\nenvironment:\n  sdk: '>=3.0.0 <4.0.0'\n  flutter: '>=3.10.0'\ndependencies:\n  flutter:\n    sdk: flutter\n"
	names := make([]string, 0, len(deps))
	for dep := range deps {
		names = append(names, dep)
	}
	sort.Strings(names)
	for _, dep := range names {
		body += "  " + dep + ": " + deps[dep] + "\n"
	}
	return body
}
