package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plumedev/plume/pkg/logger"
)

// writeTree creates the given files (path -> content) under a temp root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestIndexer() *Indexer {
	return New().WithLogger(logger.NewSilent())
}

func TestIndex_ClassifiesFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pubspec.yaml":                         "name: demo\n",
		"lib/main.dart":                        "void main() {}\n",
		"lib/features/home/home_screen.dart":   "class HomeScreen {}\n",
		"lib/features/auth/auth_service.dart":  "class AuthService {}\n",
		"lib/core/utils/deep/nested/util.dart": "int x = 1;\n",
		"test/home_test.dart":                  "void main() {}\n",
	})

	idx := newTestIndexer().Index(context.Background(), root)

	tests := []struct {
		path       string
		wantType   FileType
		wantTier   Importance
	}{
		{"lib/main.dart", FileTypeMain, ImportanceHigh},
		{"lib/features/home/home_screen.dart", FileTypeScreen, ImportanceHigh},
		{"lib/features/auth/auth_service.dart", FileTypeService, ImportanceHigh},
		{"lib/core/utils/deep/nested/util.dart", FileTypeOther, ImportanceLow},
		{"test/home_test.dart", FileTypeTest, ImportanceLow},
		{"pubspec.yaml", FileTypeOther, ImportanceMedium},
	}

	for _, tt := range tests {
		rec, ok := idx.Files[tt.path]
		if !ok {
			t.Errorf("missing record for %s", tt.path)
			continue
		}
		if rec.Type != tt.wantType {
			t.Errorf("%s: type = %s, want %s", tt.path, rec.Type, tt.wantType)
		}
		if rec.Importance != tt.wantTier {
			t.Errorf("%s: importance = %s, want %s", tt.path, rec.Importance, tt.wantTier)
		}
	}
}

func TestIndex_Totals(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pubspec.yaml":  "name: demo\nversion: 1.0.0\n",
		"lib/main.dart": "line1\nline2\nline3\n",
		"lib/app.dart":  "line1\nline2",
	})

	idx := newTestIndexer().Index(context.Background(), root)

	if idx.Totals.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", idx.Totals.FileCount)
	}
	// 2 + 3 + 2 lines; app.dart lacks a trailing newline but still has 2 lines.
	if idx.Totals.LineCount != 7 {
		t.Errorf("LineCount = %d, want 7", idx.Totals.LineCount)
	}
	if idx.Totals.ByExtension[".dart"] != 2 {
		t.Errorf("ByExtension[.dart] = %d, want 2", idx.Totals.ByExtension[".dart"])
	}
	if idx.Totals.ByExtension[".yaml"] != 1 {
		t.Errorf("ByExtension[.yaml] = %d, want 1", idx.Totals.ByExtension[".yaml"])
	}
}

func TestIndex_DirectorySummariesImmediateChildrenOnly(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/a.dart":        "x\n",
		"lib/sub/b.dart":    "x\n",
		"lib/sub/c.dart":    "x\n",
		"lib/sub/deep/d.md": "x\n",
	})

	idx := newTestIndexer().Index(context.Background(), root)

	lib, ok := idx.Directories["lib"]
	if !ok {
		t.Fatal("lib directory not indexed")
	}
	if lib.FileCount != 1 {
		t.Errorf("lib.FileCount = %d, want 1 (no recursive double counting)", lib.FileCount)
	}
	if len(lib.SubdirNames) != 1 || lib.SubdirNames[0] != "sub" {
		t.Errorf("lib.SubdirNames = %v, want [sub]", lib.SubdirNames)
	}

	sub := idx.Directories["lib/sub"]
	if sub.FileCount != 2 {
		t.Errorf("lib/sub.FileCount = %d, want 2", sub.FileCount)
	}
	if sub.SourceFileCount != 2 {
		t.Errorf("lib/sub.SourceFileCount = %d, want 2", sub.SourceFileCount)
	}

	deep := idx.Directories["lib/sub/deep"]
	if deep.SourceFileCount != 0 {
		t.Errorf("lib/sub/deep.SourceFileCount = %d, want 0", deep.SourceFileCount)
	}
}

func TestIndex_EmptyProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pubspec.yaml": "name: empty\n",
	})

	idx := newTestIndexer().Index(context.Background(), root)

	if idx.SourceFileCount() != 0 {
		t.Errorf("SourceFileCount = %d, want 0", idx.SourceFileCount())
	}
	if idx.Totals.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", idx.Totals.FileCount)
	}
}

func TestIndex_NonexistentRootReturnsEmptyIndex(t *testing.T) {
	idx := newTestIndexer().Index(context.Background(), "/nonexistent/path/nowhere")

	if idx == nil {
		t.Fatal("Index returned nil for nonexistent root")
	}
	if idx.Totals.FileCount != 0 {
		t.Errorf("FileCount = %d, want 0", idx.Totals.FileCount)
	}
}

func TestIndex_CancelledContext(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/a.dart": "x\n",
		"lib/b.dart": "x\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := newTestIndexer().Index(ctx, root)
	if idx == nil {
		t.Fatal("Index returned nil for cancelled context")
	}
	// Partial (likely empty) index, but structurally valid.
	if idx.Files == nil || idx.Directories == nil {
		t.Error("cancelled index has nil maps")
	}
}

func TestIndex_StreamedLineCount(t *testing.T) {
	// Build a file just over the whole-read threshold.
	var b strings.Builder
	line := strings.Repeat("a", 127) + "\n"
	for b.Len() < wholeReadThreshold+4096 {
		b.WriteString(line)
	}
	wantLines := b.Len() / 128

	root := writeTree(t, map[string]string{"lib/big.dart": b.String()})

	idx := newTestIndexer().Index(context.Background(), root)
	rec := idx.Files["lib/big.dart"]
	if rec.LineCount != wantLines {
		t.Errorf("LineCount = %d, want %d", rec.LineCount, wantLines)
	}
}

func TestFilesByImportance_Sorted(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/features/b/b_screen.dart": "x\n",
		"lib/features/a/a_screen.dart": "x\n",
		"lib/main.dart":                "x\n",
	})

	idx := newTestIndexer().Index(context.Background(), root)
	high := idx.FilesByImportance(ImportanceHigh)

	if len(high) != 3 {
		t.Fatalf("high importance count = %d, want 3", len(high))
	}
	for i := 1; i < len(high); i++ {
		if high[i-1].Path >= high[i].Path {
			t.Errorf("high importance files not sorted: %s >= %s", high[i-1].Path, high[i].Path)
		}
	}
}
