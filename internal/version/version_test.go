package version

import (
	"strings"
	"testing"
)

func TestCurrentDefaults(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "  "
	if got := Current().Version; got != "dev" {
		t.Fatalf("empty Version should fall back to dev, got %q", got)
	}
}

func TestCurrentUsesOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.1.0", "0.1.0"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"dev", "dev"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in, false); got != tt.want {
			t.Errorf("Colored(%q, false) = %q, want %q", tt.in, got, tt.want)
		}
	}

	got := Colored("1.2.3-rc", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc") {
		t.Fatalf("expected colored numbers and a plain suffix, got %q", got)
	}
}
