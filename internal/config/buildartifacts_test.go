package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectBuildExclusionsFromManifests(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "package.json", `{"build": {"outDir": "lib"}}`)
	writeFile(t, dir, "tsconfig.json", `{"compilerOptions": {"outDir": "out"}}`)
	writeFile(t, dir, "Cargo.toml", "[profile.release]\ntarget-dir = \"my-target\"\n")
	writeFile(t, dir, "pyproject.toml", "[tool.poetry.build]\ntarget-dir = \"pybuild\"\n")

	patterns := DetectBuildExclusions(dir)

	want := map[string]bool{
		"**/lib/**":      false,
		"**/out/**":      false,
		"**/my-target/**": false,
		"**/pybuild/**":  false,
	}
	for _, p := range patterns {
		if _, ok := want[p]; ok {
			want[p] = true
		}
	}
	for p, found := range want {
		if !found {
			t.Fatalf("expected pattern %q among %v", p, patterns)
		}
	}
}

func TestDetectBuildExclusionsNoManifestsReturnsNil(t *testing.T) {
	dir := t.TempDir()
	if patterns := DetectBuildExclusions(dir); len(patterns) != 0 {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
