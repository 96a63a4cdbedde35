package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DetectBuildExclusions inspects well-known build manifests at root and
// returns glob patterns for any custom output directory they declare,
// adapted from the teacher's BuildArtifactDetector (standardbeagle/lci
// internal/config/build_artifact_detector.go). Trimmed to the
// structured-manifest cases a real parser can read reliably
// (package.json, tsconfig.json, Cargo.toml, pyproject.toml) — the
// teacher's substring-scanning heuristic over vite.config.js source text
// doesn't survive adaptation; grepping a JS file for "outDir" is exactly
// the kind of fragile guess this repo avoids everywhere else.
func DetectBuildExclusions(root string) []string {
	seen := map[string]bool{}
	var patterns []string
	add := func(dir string) {
		if dir == "" {
			return
		}
		p := "**/" + dir + "/**"
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	if pkg, ok := readJSONManifest(filepath.Join(root, "package.json")); ok {
		if build, ok := pkg["build"].(map[string]interface{}); ok {
			if outDir, ok := build["outDir"].(string); ok {
				add(outDir)
			}
		}
	}
	if tsconfig, ok := readJSONManifest(filepath.Join(root, "tsconfig.json")); ok {
		if opts, ok := tsconfig["compilerOptions"].(map[string]interface{}); ok {
			if outDir, ok := opts["outDir"].(string); ok {
				add(outDir)
			}
		}
	}
	if cargo, ok := readTOMLManifest(filepath.Join(root, "Cargo.toml")); ok {
		if profile, ok := cargo["profile"].(map[string]interface{}); ok {
			if release, ok := profile["release"].(map[string]interface{}); ok {
				if dir, ok := release["target-dir"].(string); ok {
					add(dir)
				}
			}
		}
	}
	if pyproject, ok := readTOMLManifest(filepath.Join(root, "pyproject.toml")); ok {
		if tool, ok := pyproject["tool"].(map[string]interface{}); ok {
			if poetry, ok := tool["poetry"].(map[string]interface{}); ok {
				if build, ok := poetry["build"].(map[string]interface{}); ok {
					if dir, ok := build["target-dir"].(string); ok {
						add(dir)
					}
				}
			}
		}
	}
	return patterns
}

func readJSONManifest(path string) (map[string]interface{}, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var m map[string]interface{}
	if json.Unmarshal(data, &m) != nil {
		return nil, false
	}
	return m, true
}

func readTOMLManifest(path string) (map[string]interface{}, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var m map[string]interface{}
	if toml.Unmarshal(data, &m) != nil {
		return nil, false
	}
	return m, true
}
