package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWalk_BasicTraversal(t *testing.T) {
	tmpDir := t.TempDir()

	dirs := []string{"lib", "lib/features", "test"}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}

	files := []string{"pubspec.yaml", "lib/main.dart", "lib/features/app.dart", "test/app_test.dart"}
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var visited []string
	err := Walk(tmpDir, WalkOptions{IgnoreDirs: []string{}}, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(tmpDir, path)
		if rel != "." {
			visited = append(visited, rel)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(visited) < 7 { // 3 dirs + 4 files
		t.Errorf("Walk() visited %d paths, want at least 7", len(visited))
	}
}

func TestWalk_IgnoreDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	for _, dir := range []string{".dart_tool", "build", ".git"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, dir, "cached.txt"), []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "keep.dart"), []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	var visited []string
	err := WalkWithDefaults(tmpDir, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(tmpDir, path)
		visited = append(visited, rel)
		return nil
	})

	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	for _, v := range visited {
		if strings.Contains(v, ".dart_tool") || strings.Contains(v, "build") || strings.Contains(v, ".git") {
			t.Errorf("Walk() visited ignored directory: %s", v)
		}
	}
}

func TestWalk_IgnorePatterns(t *testing.T) {
	tmpDir := t.TempDir()

	for _, file := range []string{"model.dart", "model.g.dart", "model.freezed.dart"} {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var visited []string
	err := Walk(tmpDir, WalkOptions{IgnorePatterns: []string{"*.g.dart", "*.freezed.dart"}}, func(path string, info os.FileInfo) error {
		if !info.IsDir() {
			visited = append(visited, info.Name())
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(visited) != 1 || visited[0] != "model.dart" {
		t.Errorf("Walk() visited %v, want only model.dart", visited)
	}
}

func TestWalk_HiddenSkipped(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ".hidden"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "visible.dart"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	var visited []string
	err := WalkWithDefaults(tmpDir, func(path string, info os.FileInfo) error {
		if !info.IsDir() {
			visited = append(visited, info.Name())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(visited) != 1 || visited[0] != "visible.dart" {
		t.Errorf("Walk() visited %v, want only visible.dart", visited)
	}
}
