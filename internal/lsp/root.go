package lsp

import (
	"os"
	"path/filepath"

	"lunar/internal/project"
)

type analysisMode uint8

const (
	// modeProjectRoot: a lunar.toml was found, its directory is indexed.
	modeProjectRoot analysisMode = iota
	// modeWorkspaceFolder: the client opened a folder without lunar.toml.
	modeWorkspaceFolder
	// modeOpenFiles: no folder at all, only open buffers are known.
	modeOpenFiles
)

func (m analysisMode) String() string {
	switch m {
	case modeProjectRoot:
		return "project"
	case modeWorkspaceFolder:
		return "folder"
	default:
		return "open-files"
	}
}

// detectAnalysisScope picks the directory to index and the lunar.toml to
// read. A manifest above the workspace folder wins; a loose file only finds
// a manifest above itself and is never indexed as a folder.
func detectAnalysisScope(workspaceRoot, firstFile string) (string, analysisMode) {
	if root := resolveStartDir(workspaceRoot); root != "" {
		if found, ok, err := project.FindProjectRoot(root); err == nil && ok {
			return found, modeProjectRoot
		}
		return root, modeWorkspaceFolder
	}
	if root := resolveStartDir(firstFile); root != "" {
		if found, ok, err := project.FindProjectRoot(root); err == nil && ok {
			return found, modeProjectRoot
		}
		return root, modeOpenFiles
	}
	return "", modeOpenFiles
}

func resolveStartDir(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
