package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumedev/plume/pkg/manifest"
)

func TestClassify_Categories(t *testing.T) {
	m := &manifest.Record{
		Dependencies: map[string]string{
			"flutter_riverpod": "^2.4.0",
			"dio":              "^5.3.0",
			"google_fonts":     "^6.0.0",
			"some_unknown_pkg": "^1.0.0",
		},
		DevDependencies: map[string]string{
			"flutter_test": "sdk: flutter",
			"build_runner": "^2.4.0",
		},
	}

	report := Classify(m)

	assert.Equal(t, []string{"flutter_riverpod"}, report.Categories[CategoryStateManagement])
	assert.Equal(t, []string{"dio"}, report.Categories[CategoryNetworking])
	assert.Equal(t, []string{"google_fonts"}, report.Categories[CategoryUI])
	assert.Equal(t, []string{"flutter_test"}, report.Categories[CategoryTesting])
	assert.Equal(t, []string{"build_runner"}, report.Categories[CategoryDevTooling])
	assert.Equal(t, []string{"some_unknown_pkg"}, report.Categories[CategoryOther])
}

// The union of all category lists must equal the declared dependency set,
// with no duplicates: an exhaustive partition.
func TestClassify_ExhaustivePartition(t *testing.T) {
	m := &manifest.Record{
		Dependencies: map[string]string{
			"flutter_riverpod": "1", "dio": "1", "lottie": "1",
			"shared_preferences": "1", "mystery_a": "1", "mystery_b": "1",
		},
		DevDependencies: map[string]string{
			"flutter_test": "1", "freezed": "1",
		},
	}

	report := Classify(m)

	seen := make(map[string]int)
	total := 0
	for _, pkgs := range report.Categories {
		for _, pkg := range pkgs {
			seen[pkg]++
			total++
		}
	}

	require.Equal(t, 8, total)
	for pkg, count := range seen {
		assert.Equalf(t, 1, count, "package %s appears %d times", pkg, count)
		assert.True(t, m.HasDependency(pkg))
	}
}

// Scenario A: riverpod + dio, no flutter_test in dev dependencies.
func TestClassify_MissingTestDependencyWarning(t *testing.T) {
	m := &manifest.Record{
		Dependencies: map[string]string{
			"flutter_riverpod": "^2.4.0",
			"dio":              "^5.3.0",
		},
		DevDependencies: map[string]string{},
	}

	report := Classify(m)

	assert.Equal(t, []string{"flutter_riverpod"}, report.Categories[CategoryStateManagement])
	assert.Equal(t, []string{"dio"}, report.Categories[CategoryNetworking])

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "flutter_test", report.Warnings[0].Package)
	assert.Equal(t, SeverityHigh, report.Warnings[0].Severity)
}

// Scenario B: two state management packages declared together.
func TestClassify_StateManagementConflict(t *testing.T) {
	m := &manifest.Record{
		Dependencies: map[string]string{
			"flutter_riverpod": "^2.4.0",
			"flutter_bloc":     "^8.1.0",
		},
		DevDependencies: map[string]string{"flutter_test": "sdk: flutter"},
	}

	report := Classify(m)

	require.Len(t, report.Conflicts, 1)
	assert.Contains(t, report.Conflicts[0], "flutter_riverpod")
	assert.Contains(t, report.Conflicts[0], "flutter_bloc")
}

func TestClassify_NoConflictForSingleMember(t *testing.T) {
	m := &manifest.Record{
		Dependencies:    map[string]string{"flutter_riverpod": "^2.4.0"},
		DevDependencies: map[string]string{"flutter_test": "sdk: flutter"},
	}

	report := Classify(m)
	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.Warnings)
}

func TestClassify_DeprecatedPackageWarning(t *testing.T) {
	m := &manifest.Record{
		Dependencies:    map[string]string{"moor": "^4.0.0"},
		DevDependencies: map[string]string{"flutter_test": "sdk: flutter"},
	}

	report := Classify(m)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "moor", report.Warnings[0].Package)
	assert.Equal(t, SeverityMedium, report.Warnings[0].Severity)
	assert.Contains(t, report.Warnings[0].Message, "drift")
}

func TestClassify_EmptyManifest(t *testing.T) {
	report := Classify(manifest.DefaultRecord())

	assert.Empty(t, report.Categories)
	assert.Empty(t, report.Conflicts)
	// Even an empty project gets nudged toward declaring tests.
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "flutter_test", report.Warnings[0].Package)
}

func TestClassify_Deterministic(t *testing.T) {
	m := &manifest.Record{
		Dependencies: map[string]string{
			"dio": "1", "http": "1", "chopper": "1", "zebra": "1", "alpha": "1",
		},
		DevDependencies: map[string]string{"flutter_test": "1"},
	}

	first := Classify(m)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(m))
	}

	// Category lists come out sorted.
	assert.Equal(t, []string{"chopper", "dio", "http"}, first.Categories[CategoryNetworking])
	assert.Equal(t, []string{"alpha", "zebra"}, first.Categories[CategoryOther])
}
