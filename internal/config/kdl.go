package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

// ConfigFileName is the project-relative path to the config document,
// spec §6's "configuration document enumerating the options".
const ConfigFileName = ".codegraph/config.kdl"

// Load reads <projectRoot>/.codegraph/config.kdl. A missing file is not an
// error: it returns Default(). Mirrors the teacher's LoadKDL
// (standardbeagle/lci internal/config/kdl_config.go), generalized to
// spec §6's option set.
func Load(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ConfigFileName)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, cgerrors.New(cgerrors.NotInitialized, "load_config", err).WithFile(path)
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config KDL: %w", err)
	}

	cfg := Default()
	for _, n := range doc.Nodes {
		switch kdlNodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "project_name":
			if s, ok := firstArg[string](n); ok {
				cfg.ProjectName = s
			}
		case "languages":
			cfg.Languages = stringArgs(n)
		case "include":
			cfg.Include = stringArgs(n)
		case "exclude":
			cfg.Exclude = stringArgs(n)
		case "frameworks":
			cfg.Frameworks = stringArgs(n)
		case "max_file_size":
			if v, ok := firstIntArg(n); ok {
				cfg.MaxFileSize = int64(v)
			}
		case "enable_embeddings":
			if b, ok := firstArg[bool](n); ok {
				cfg.EnableEmbeddings = b
			}
		}
	}
	return cfg, nil
}

// Save atomically writes cfg to <projectRoot>/.codegraph/config.kdl: it
// serializes to a temp file in the same directory, then renames over the
// target so a crash never leaves a corrupt or partial document (spec §6:
// "Config writes are atomic... No .tmp remnants on success").
func Save(projectRoot string, cfg *Config) error {
	dir := filepath.Join(projectRoot, ".codegraph")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cgerrors.New(cgerrors.StoreIntegrity, "save_config", err)
	}
	target := filepath.Join(dir, "config.kdl")

	tmp, err := os.CreateTemp(dir, "config-*.kdl.tmp")
	if err != nil {
		return cgerrors.New(cgerrors.StoreIntegrity, "save_config", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath) // no-op once renamed; cleans up on any early return
	}()

	if _, err := tmp.WriteString(render(cfg)); err != nil {
		_ = tmp.Close()
		return cgerrors.New(cgerrors.StoreIntegrity, "save_config", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return cgerrors.New(cgerrors.StoreIntegrity, "save_config", err)
	}
	if err := tmp.Close(); err != nil {
		return cgerrors.New(cgerrors.StoreIntegrity, "save_config", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return cgerrors.New(cgerrors.StoreIntegrity, "save_config", err)
	}
	return nil
}

func render(cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "version %d\n", cfg.Version)
	if cfg.ProjectName != "" {
		fmt.Fprintf(&b, "project_name %q\n", cfg.ProjectName)
	}
	writeStringList(&b, "languages", cfg.Languages)
	writeStringList(&b, "include", cfg.Include)
	writeStringList(&b, "exclude", cfg.Exclude)
	writeStringList(&b, "frameworks", cfg.Frameworks)
	fmt.Fprintf(&b, "max_file_size %d\n", cfg.MaxFileSize)
	fmt.Fprintf(&b, "enable_embeddings %t\n", cfg.EnableEmbeddings)
	return b.String()
}

func writeStringList(b *strings.Builder, name string, vals []string) {
	if len(vals) == 0 {
		return
	}
	b.WriteString(name)
	for _, v := range vals {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(v))
	}
	b.WriteByte('\n')
}

// --- KDL document helpers ---
//
// kdl-go types every Argument.Value as interface{}, so one generic cast
// (firstArg) covers string/bool access; firstIntArg stays a separate,
// non-generic accessor since it has to tolerate the parser producing
// either int64 or float64 for a bare integer literal.

func kdlNodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstArg[T any](n *document.Node) (T, bool) {
	var zero T
	if n == nil || len(n.Arguments) == 0 {
		return zero, false
	}
	v, ok := n.Arguments[0].Value.(T)
	return v, ok
}

func firstIntArg(n *document.Node) (int, bool) {
	if v, ok := firstArg[int64](n); ok {
		return int(v), true
	}
	if v, ok := firstArg[float64](n); ok {
		return int(v), true
	}
	return 0, false
}

func stringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
