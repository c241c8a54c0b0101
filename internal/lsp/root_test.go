package lsp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectProjectRootWithManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "lunar.toml"), []byte(""), 0o644); err != nil {
		t.Fatalf("write lunar.toml: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	filePath := filepath.Join(nested, "main.lua")
	if err := os.WriteFile(filePath, []byte("print(1)\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	gotRoot, gotMode := detectAnalysisScope(nested, filePath)
	if gotRoot != root {
		t.Fatalf("expected root %q, got %q", root, gotRoot)
	}
	if gotMode != modeProjectRoot {
		t.Fatalf("expected project mode, got %v", gotMode)
	}
}

func TestDetectFolderWithoutManifest(t *testing.T) {
	base := t.TempDir()
	gotRoot, gotMode := detectAnalysisScope(base, "")
	if gotRoot != base || gotMode != modeWorkspaceFolder {
		t.Fatalf("expected folder mode at %q, got %q/%v", base, gotRoot, gotMode)
	}
}

func TestDetectLooseFile(t *testing.T) {
	base := t.TempDir()
	rootA := filepath.Join(base, "rootA")
	rootB := filepath.Join(base, "rootB")
	for _, dir := range []string{rootA, rootB} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(rootA, "lunar.toml"), []byte(""), 0o644); err != nil {
		t.Fatalf("write lunar.toml: %v", err)
	}

	gotRoot, gotMode := detectAnalysisScope("", filepath.Join(rootA, "main.lua"))
	if gotRoot != rootA || gotMode != modeProjectRoot {
		t.Fatalf("expected project %q, got %q/%v", rootA, gotRoot, gotMode)
	}

	looseRoot, looseMode := detectAnalysisScope("", filepath.Join(rootB, "loose.lua"))
	if looseRoot != rootB {
		t.Fatalf("expected open-files root %q, got %q", rootB, looseRoot)
	}
	if looseMode != modeOpenFiles {
		t.Fatalf("expected open-files mode, got %v", looseMode)
	}
}
