package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/drafts/internal/paths"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

// testEnv is an isolated configuration and data directory pair.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// result is the outcome of one CLI invocation.
type result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv(envLogLevel, "")
	root := t.TempDir()
	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
}

// run executes drafts with the env's directories.
func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	full := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	return e.runRaw(full...)
}

// runRaw executes drafts with exactly args.
func (e *testEnv) runRaw(args ...string) result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(&stderr, err)
	}
	return result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode(err)}
}

func (e *testEnv) mustRun(args ...string) result {
	e.t.Helper()
	r := e.run(args...)
	require.Equal(e.t, exitSuccess, r.ExitCode, "drafts %v: %s", args, r.Stderr)
	return r
}

// listed is the JSON form of one listed object.
type listed struct {
	Handle string         `json:"handle"`
	Class  string         `json:"class"`
	Name   string         `json:"name"`
	Data   map[string]any `json:"data"`
}

func (e *testEnv) list(args ...string) []listed {
	e.t.Helper()
	r := e.mustRun(append([]string{"--json", "list"}, args...)...)
	var out []listed
	require.NoError(e.t, json.Unmarshal([]byte(r.Stdout), &out), r.Stdout)
	return out
}

func names(items []listed) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	r := env.runRaw("version")
	assert.Equal(t, exitSuccess, r.ExitCode)
	assert.Contains(t, r.Stdout, "drafts v")
	assert.Contains(t, r.Stdout, modulePath)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(env.runRaw("version", "--json").Stdout), &info))
	assert.Equal(t, modulePath, info.Module)
	assert.NotEmpty(t, info.Go)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	r := env.mustRun("init")
	assert.Contains(t, r.Stdout, "ready in "+env.DataDir)
	assert.FileExists(t, paths.ConfigFile(env.ConfigDir))
	assert.FileExists(t, filepath.Join(env.DataDir, "drawing.db"))

	cfg, err := os.ReadFile(paths.ConfigFile(env.ConfigDir))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: sqlite")
	assert.Contains(t, string(cfg), "data_dir: "+env.DataDir)

	// A second init keeps the drawing.
	var first, second map[string]string
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("--json", "init").Stdout), &first))
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("--json", "init").Stdout), &second))
	assert.NotEmpty(t, first["fingerprint"])
	assert.Equal(t, first["fingerprint"], second["fingerprint"])
}

func TestDataDirFromConfig(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")
	env.mustRun("add-layer", "walls")

	// Without --data-dir the store named in config.yaml is used.
	r := env.runRaw("--config-dir", env.ConfigDir, "count", "layers")
	require.Equal(t, exitSuccess, r.ExitCode, r.Stderr)
	assert.Equal(t, "2\n", r.Stdout)
}

func TestBadConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(paths.ConfigFile(env.ConfigDir), []byte("backend: postgres\n"), 0o644))

	r := env.run("count", "layers")
	assert.Equal(t, exitSysError, r.ExitCode)
	assert.Contains(t, r.Stderr, "postgres")
}

func TestCountSeeded(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	tests := []struct {
		container string
		want      string
	}{
		{"layers", "1"},
		{"blocks", "2"},
		{"linetypes", "3"},
		{"layouts", "2"},
		{"materials", "3"},
		{"modelspace", "0"},
		{"ViewPorts", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.container, func(t *testing.T) {
			r := env.mustRun("count", tt.container)
			assert.Equal(t, tt.want+"\n", r.Stdout)
		})
	}

	r := env.mustRun("--json", "count", "layers")
	assert.JSONEq(t, `{"container":"layers","count":1}`, r.Stdout)
}

func TestLayers(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	env.mustRun("add-layer", "walls", "--color", "1")
	env.mustRun("add-layer", "doors", "--color", "3", "--off")

	assert.Equal(t, []string{"0", "walls", "doors"}, names(env.list("layers")))
	assert.Equal(t, []string{"walls"}, names(env.list("layers", "--where", "color == 1")))
	assert.Equal(t, []string{"doors"}, names(env.list("layers", "--where", "is_off")))
	assert.Equal(t, []string{"0"}, names(env.list("layers", "--limit", "1")))

	r := env.mustRun("list", "layers")
	assert.Contains(t, r.Stdout, "\tDbLayerRecord\twalls\n")
}

func TestUserErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")
	env.mustRun("add-layer", "walls")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"duplicate layer", []string{"add-layer", "walls"}, "duplicate"},
		{"invalid layer name", []string{"add-layer", "a<b"}, "invalid entry name"},
		{"unknown linetype", []string{"add-layer", "x", "--linetype", "Dashed"}, "Dashed"},
		{"unknown container", []string{"list", "furniture"}, "unknown container"},
		{"bad expression", []string{"list", "layers", "--where", "color =="}, "compiling"},
		{"bad coordinate", []string{"add-line", "0", "0", "x", "1"}, "coordinate"},
		{"unknown layer", []string{"add-line", "0", "0", "1", "1", "--layer", "nope"}, "nope"},
		{"unknown space", []string{"add-line", "0", "0", "1", "1", "--space", "attic"}, "attic"},
		{"missing xref", []string{"xref", "bind", "nope"}, "not found"},
		{"not an xref", []string{"xref", "unload", "*Model_Space"}, "not an external reference"},
		{"wrong arg count", []string{"count"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.run(tt.args...)
			assert.Equal(t, exitUserError, r.ExitCode)
			assert.Contains(t, r.Stderr, tt.want)
		})
	}

	// Failed commands leave the drawing unchanged.
	assert.Equal(t, "2\n", env.mustRun("count", "layers").Stdout)
}

func TestAddLine(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")
	env.mustRun("add-layer", "walls")

	env.mustRun("add-line", "0", "0", "10", "0")
	env.mustRun("add-line", "0", "0", "0", "10", "--layer", "walls")
	env.mustRun("add-line", "1", "1", "2", "2", "--space", "paper")

	lines := env.list("modelspace")
	require.Len(t, lines, 2)
	assert.Equal(t, "DbLine", lines[0].Class)
	assert.Equal(t, "0", lines[0].Data["layer"])
	assert.Equal(t, "walls", lines[1].Data["layer"])

	assert.Len(t, env.list("modelspace", "--where", `layer == "walls"`), 1)
	assert.Equal(t, "1\n", env.mustRun("count", "paperspace").Stdout)
	assert.Equal(t, "2\n", env.mustRun("count", "currentspace").Stdout)
}

func TestXrefLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	r := env.mustRun("xref", "attach", "base.dwg", "base")
	assert.Equal(t, "base\tunresolved\tbase.dwg\n", r.Stdout)
	env.mustRun("xref", "attach", "grid.dwg", "grid", "--overlay")

	var infos []xrefInfo
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("--json", "xref", "list").Stdout), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "base", infos[0].Name)
	assert.False(t, infos[0].Overlay)
	assert.True(t, infos[1].Overlay)

	r = env.mustRun("xref", "reload", "base")
	assert.Contains(t, r.Stdout, "file-not-found")

	require.NoError(t, os.WriteFile(filepath.Join(env.DataDir, "base.dwg"), []byte("drawing"), 0o644))
	r = env.mustRun("xref", "reload", "base")
	assert.Contains(t, r.Stdout, "\tresolved\t")

	r = env.mustRun("xref", "unload", "base")
	assert.Contains(t, r.Stdout, "unloaded")

	env.mustRun("xref", "detach", "grid")
	env.mustRun("xref", "bind", "base")

	r = env.mustRun("--json", "xref", "list")
	assert.JSONEq(t, `[]`, r.Stdout)
	assert.Contains(t, names(env.list("blocks")), "base")
	assert.NotContains(t, names(env.list("blocks")), "grid")
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")
	env.mustRun("add-layer", "walls")
	file := filepath.Join(t.TempDir(), "drawing.jsonl")

	r := env.mustRun("export", file)
	assert.Contains(t, r.Stdout, "exported")
	assert.FileExists(t, file)

	env.mustRun("add-layer", "scratch")
	r = env.mustRun("import", file)
	assert.Contains(t, r.Stdout, "imported")
	assert.Equal(t, []string{"0", "walls"}, names(env.list("layers")))

	r = env.run("import", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.NotEqual(t, exitSuccess, r.ExitCode)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"user", fmt.Errorf("layer: %w", types.ErrNotFound), exitUserError},
		{"system", sysErr(errors.New("disk full")), exitSysError},
		{"wrapped system", fmt.Errorf("init: %w", sysErr(errors.New("disk full"))), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
	assert.NoError(t, sysErr(nil))
}
