package assembler_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plume "github.com/plumedev/plume"
	"github.com/plumedev/plume/internal/testing/testutil"
	"github.com/plumedev/plume/pkg/assembler"
)

const screenSrc = `class HomeScreen {
  void _unusedHandler() {
    helper();
  }

  void build() {
    render();
  }
}
`

func TestAssembleDefaults(t *testing.T) {
	p := testutil.NewProject(t).
		WriteManifest(testutil.FlutterManifest("demo", nil)).
		WriteFile("lib/main.dart", "void main() {\n  run();\n}\n").
		WriteFile("lib/features/home/home_screen.dart", screenSrc)

	doc, err := assembler.New().Assemble(context.Background(), p.Root, assembler.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "demo", doc.Project.Name)
	assert.Equal(t, "flutter", doc.Project.Type)
	assert.Equal(t, "1.0.0", doc.Project.Version)
	assert.Equal(t, plume.Version, doc.CLIVersion)
	assert.False(t, doc.ExportedAt.IsZero())

	// Dependencies and code are opt-in; architecture and suggestions
	// are on by default.
	assert.Nil(t, doc.Dependencies)
	assert.Nil(t, doc.Code)
	require.NotNil(t, doc.Architecture)
	assert.NotEmpty(t, doc.Suggestions)

	assert.Equal(t, 3, doc.Structure.Totals.FileCount)
}

func TestAssembleRootErrors(t *testing.T) {
	p := testutil.NewProject(t).WriteFile("plain.txt", "not a directory\n")

	_, err := assembler.New().Assemble(context.Background(), filepath.Join(p.Root, "plain.txt"), assembler.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	_, err = assembler.New().Assemble(context.Background(), filepath.Join(p.Root, "missing"), assembler.DefaultOptions())
	require.Error(t, err)
}

func TestAssembleEmptyProject(t *testing.T) {
	// A root holding only a manifest still yields a well-formed document
	// with every requested section present.
	p := testutil.NewProject(t).WriteManifest("name: bare\nversion: 0.1.0\n")

	opts := assembler.DefaultOptions()
	opts.IncludeCode = true
	opts.IncludeDependencies = true

	doc, err := assembler.New().Assemble(context.Background(), p.Root, opts)
	require.NoError(t, err)

	assert.Equal(t, "bare", doc.Project.Name)
	assert.Equal(t, "dart", doc.Project.Type)
	assert.Equal(t, 0, doc.Structure.SourceFileCount())

	require.NotNil(t, doc.Code)
	assert.Equal(t, 0, doc.Code.FilesAnalyzed)
	assert.Equal(t, 100, doc.Code.AverageScore)

	require.NotNil(t, doc.Architecture)
	assert.Empty(t, doc.Architecture.Patterns)

	data, err := doc.JSON()
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"project", "structure", "dependencies", "code", "architecture", "exported_at", "cli_version"} {
		assert.Contains(t, raw, key)
	}
}

func TestAssembleMalformedManifest(t *testing.T) {
	p := testutil.NewProject(t).
		WriteManifest("\t{{{:::\n\t!!!\n").
		WriteFile("lib/main.dart", "void main() {\n  run();\n}\n")

	doc, err := assembler.New().Assemble(context.Background(), p.Root, assembler.DefaultOptions())
	require.NoError(t, err)

	// The pipeline completes with a degraded identity and a surfaced
	// warning instead of failing.
	assert.Equal(t, "unknown", doc.Project.Name)
	assert.Equal(t, "0.0.0", doc.Project.Version)
	assert.NotEmpty(t, doc.Warnings)
	require.NotNil(t, doc.Architecture)
}

func TestAssembleCodeSection(t *testing.T) {
	p := testutil.NewProject(t).
		WriteManifest(testutil.FlutterManifest("scored", nil)).
		WriteFile("lib/features/home/home_screen.dart", screenSrc)

	opts := assembler.DefaultOptions()
	opts.IncludeCode = true

	doc, err := assembler.New().Assemble(context.Background(), p.Root, opts)
	require.NoError(t, err)

	require.NotNil(t, doc.Code)
	assert.Equal(t, 1, doc.Code.FilesAnalyzed)
	assert.Less(t, doc.Code.AverageScore, 100)
	require.NotEmpty(t, doc.Code.Issues)
	assert.Contains(t, doc.Code.Issues[0].Location, "home_screen.dart")
	require.Len(t, doc.Code.DeadCodeSymbols, 1)
	assert.Equal(t, "lib/features/home/home_screen.dart: _unusedHandler", doc.Code.DeadCodeSymbols[0])
}

func TestAssembleMaxFileSizeSkipsLargeFiles(t *testing.T) {
	p := testutil.NewProject(t).
		WriteManifest(testutil.FlutterManifest("bounded", nil)).
		WriteFile("lib/features/home/home_screen.dart", screenSrc)

	opts := assembler.DefaultOptions()
	opts.IncludeCode = true
	opts.MaxFileSize = 10 // below the screen file's size

	doc, err := assembler.New().Assemble(context.Background(), p.Root, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Code.FilesAnalyzed)
	assert.Equal(t, 100, doc.Code.AverageScore)
}

func TestAssembleSuggestionGating(t *testing.T) {
	manifest := testutil.FlutterManifest("plain", map[string]string{"dio": "^5.0.0"})
	p := testutil.NewProject(t).
		WriteManifest(manifest).
		WriteFile("lib/main.dart", "void main() {\n  run();\n}\n")

	// Without dependency analysis the state-management rule must not
	// fire, even though no such package is declared.
	doc, err := assembler.New().Assemble(context.Background(), p.Root, assembler.DefaultOptions())
	require.NoError(t, err)
	for _, s := range doc.Suggestions {
		assert.NotContains(t, s, "state management")
	}

	opts := assembler.DefaultOptions()
	opts.IncludeDependencies = true
	doc, err = assembler.New().Assemble(context.Background(), p.Root, opts)
	require.NoError(t, err)
	found := false
	for _, s := range doc.Suggestions {
		if strings.Contains(s, "state management") {
			found = true
		}
	}
	assert.True(t, found, "expected a state management suggestion")
}

func TestAssembleIdempotentModuloTimestamp(t *testing.T) {
	p := testutil.NewProject(t).
		WriteManifest(testutil.FlutterManifest("stable", map[string]string{"flutter_riverpod": "^2.0.0"})).
		WriteFile("lib/features/home/home_screen.dart", screenSrc).
		WriteFile("lib/main.dart", "void main() {\n  run();\n}\n")

	opts := assembler.DefaultOptions()
	opts.IncludeCode = true
	opts.IncludeDependencies = true

	at := func(sec int64) func() time.Time {
		return func() time.Time { return time.Unix(sec, 0) }
	}

	first, err := assembler.New().WithClock(at(1000)).Assemble(context.Background(), p.Root, opts)
	require.NoError(t, err)
	second, err := assembler.New().WithClock(at(2000)).Assemble(context.Background(), p.Root, opts)
	require.NoError(t, err)

	assert.NotEqual(t, first.ExportedAt, second.ExportedAt)

	second.ExportedAt = first.ExportedAt
	a, err := first.JSON()
	require.NoError(t, err)
	b, err := second.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAssembleCancelledContext(t *testing.T) {
	p := testutil.NewProject(t).
		WriteManifest(testutil.FlutterManifest("halted", nil)).
		WriteFile("lib/features/home/home_screen.dart", screenSrc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := assembler.DefaultOptions()
	opts.IncludeCode = true

	doc, err := assembler.New().Assemble(ctx, p.Root, opts)
	require.NoError(t, err)
	require.NotNil(t, doc.Code)
	assert.Equal(t, 0, doc.Code.FilesAnalyzed)
}
