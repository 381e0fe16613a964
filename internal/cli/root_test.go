package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickagliano/hookplayer/internal/config"
	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/registry"
	"github.com/nickagliano/hookplayer/internal/registry/registrytest"
	"github.com/nickagliano/hookplayer/internal/updater"
)

type played struct {
	path   string
	volume float64
}

type env struct {
	home       string
	configPath string
	plays      []played
}

// newEnv points HOME and the config file at a temp dir.
func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	e := &env{home: home, configPath: filepath.Join(home, "hp", "config.toml")}
	t.Setenv("HOME", home)
	t.Setenv("HOOKPLAYER_CONFIG", e.configPath)
	t.Setenv("HOOKPLAYER_SOUNDS_DIR", "")
	t.Setenv("HOOKPLAYER_MIRROR", "")
	t.Setenv("HOOKPLAYER_REGISTRY_URL", "")
	return e
}

func (e *env) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(e.configPath), 0755))
	require.NoError(t, os.WriteFile(e.configPath, []byte(content), 0644))
}

func (e *env) load(t *testing.T) config.Config {
	t.Helper()
	s, err := config.Load(e.configPath)
	require.NoError(t, err)
	return s.Config()
}

func (e *env) run(t *testing.T, args []string, opts ...Option) (string, string, error) {
	t.Helper()
	opts = append([]Option{
		WithLogSetup(func(int) {}),
		WithPlayer(func(_ context.Context, path string, volume float64) error {
			e.plays = append(e.plays, played{path, volume})
			return nil
		}),
	}, opts...)

	cmd := NewRootCmd(BuildInfo{Version: "1.0.0", Commit: "abc123", Date: "2026-01-02"}, opts...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func registryOpts(srv *registrytest.Server) Option {
	return WithRegistryOptions(
		registry.WithHTTPClient(srv.Client()),
		registry.WithIndexURL(srv.URL+registrytest.IndexPath),
		registry.WithContentBase(srv.URL+"/raw"),
	)
}

func TestPlay_ChoosesConfiguredSound(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, `sounds_dir = "/srv/sounds"
volume = 0.7

[events]
stop = ["peon/done.wav"]
`)

	_, stderr, err := e.run(t, []string{"stop"})
	require.NoError(t, err)
	assert.Empty(t, stderr)
	require.Len(t, e.plays, 1)
	assert.Equal(t, filepath.Join("/srv/sounds", "peon", "done.wav"), e.plays[0].path)
	assert.InDelta(t, 0.7, e.plays[0].volume, 1e-9)
}

func TestPlay_FallsBackToUnknown(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, `sounds_dir = "/srv/sounds"

[events]
unknown = ["peon/huh.wav"]
`)

	_, _, err := e.run(t, []string{"something-new"})
	require.NoError(t, err)
	require.Len(t, e.plays, 1)
	assert.Equal(t, filepath.Join("/srv/sounds", "peon", "huh.wav"), e.plays[0].path)

	_, _, err = e.run(t, nil)
	require.NoError(t, err)
	require.Len(t, e.plays, 2, "no arguments plays the unknown event")
}

func TestPlay_SoundsDirEnvOverride(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, `sounds_dir = "/srv/sounds"

[events]
stop = ["peon/done.wav"]
`)
	t.Setenv("HOOKPLAYER_SOUNDS_DIR", "~/elsewhere")

	_, _, err := e.run(t, []string{"stop"})
	require.NoError(t, err)
	require.Len(t, e.plays, 1)
	assert.Equal(t, filepath.Join(e.home, "elsewhere", "peon", "done.wav"), e.plays[0].path)
}

func TestPlay_NoSoundsForEventIsSilent(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "[events]\nstart = [\"peon/hi.wav\"]\n")

	stdout, stderr, err := e.run(t, []string{"stop"})
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.Empty(t, e.plays)
}

func TestPlay_EmptyConfigPrintsGuidance(t *testing.T) {
	e := newEnv(t)

	_, stderr, err := e.run(t, []string{"stop"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "no sounds configured")
	assert.Contains(t, stderr, "hookplayer use <pack>")
	assert.Empty(t, e.plays)
}

func TestPlay_PlaybackError(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "[events]\nstop = [\"peon/done.wav\"]\n")

	_, _, err := e.run(t, []string{"stop"}, WithPlayer(func(context.Context, string, float64) error {
		return errors.New(errors.ErrPlayback, "device busy")
	}))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrPlayback))
	assert.Contains(t, err.Error(), "playback error")
}

func TestList(t *testing.T) {
	e := newEnv(t)
	srv := registrytest.NewServer(t)
	srv.AddPack("peon", `{"categories": {}}`, nil)
	srv.AddPack("glados", `{"categories": {}}`, nil)

	stdout, _, err := e.run(t, []string{"list"}, registryOpts(srv))
	require.NoError(t, err)
	assert.Contains(t, stdout, "peon")
	assert.Contains(t, stdout, "Pack glados")
	assert.Contains(t, stdout, "2 packs available")
}

func TestList_RegistryURLFromEnv(t *testing.T) {
	e := newEnv(t)
	srv := registrytest.NewServer(t)
	srv.AddPack("peon", `{"categories": {}}`, nil)
	t.Setenv("HOOKPLAYER_REGISTRY_URL", srv.URL+registrytest.IndexPath)

	stdout, _, err := e.run(t, []string{"list"}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 packs available")
}

func TestList_RegistryDown(t *testing.T) {
	e := newEnv(t)
	srv := registrytest.NewServer(t)
	srv.FailPath(registrytest.IndexPath, http.StatusInternalServerError)

	_, _, err := e.run(t, []string{"list"}, registryOpts(srv))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNetwork))
}

func TestDownload(t *testing.T) {
	e := newEnv(t)
	soundsDir := filepath.Join(e.home, "sounds")
	e.writeConfig(t, `sounds_dir = "`+soundsDir+`"`+"\n")

	srv := registrytest.NewServer(t)
	srv.AddPack("peon",
		`{"categories": {"task.complete": {"sounds": [{"file": "sounds/done.wav"}, {"file": "sounds/ok.wav"}]}}}`,
		map[string]string{"done.wav": "DONE", "ok.wav": "OK"})

	stdout, _, err := e.run(t, []string{"download", "peon"}, registryOpts(srv))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Downloading 2 sounds into sounds/peon/")
	assert.Contains(t, stdout, "Done. Pack 'peon' installed.")

	data, err := os.ReadFile(filepath.Join(soundsDir, "peon", "done.wav"))
	require.NoError(t, err)
	assert.Equal(t, "DONE", string(data))

	stdout, _, err = e.run(t, []string{"packs"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "  peon\n")
	assert.Contains(t, stdout, "1 pack(s) installed")
}

func TestDownload_UnknownPack(t *testing.T) {
	e := newEnv(t)
	srv := registrytest.NewServer(t)
	srv.AddPack("peon", `{"categories": {}}`, nil)

	_, _, err := e.run(t, []string{"download", "nope"}, registryOpts(srv))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
	assert.Equal(t, []string{registrytest.IndexPath}, srv.Requests())
}

func TestUse_PersistsEvents(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "volume = 0.3\n\n[events]\nerror = [\"old/gone.wav\"]\n")

	srv := registrytest.NewServer(t)
	srv.AddPack("packA", `{"categories": {"task.complete": {"sounds": [{"file": "x/hello.mp3"}]}}}`, nil)
	srv.AddPack("packB", `{"categories": {"task.complete": {"sounds": [{"file": "y/world.mp3"}]}, "session.start": {"sounds": [{"file": "hi.mp3"}]}}}`, nil)

	stdout, _, err := e.run(t, []string{"use", "packA, packB"}, registryOpts(srv))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuring events from: packA, packB")
	assert.Contains(t, stdout, "Done. Config updated.")

	cfg := e.load(t)
	assert.Equal(t, map[string][]string{
		"stop":  {"packA/hello.mp3", "packB/world.mp3"},
		"start": {"packB/hi.mp3"},
	}, cfg.Events)
	assert.InDelta(t, 0.3, cfg.Volume, 1e-9)
}

func TestUse_CategoryOverrides(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "[categories]\n\"task.complete\" = \"notify\"\n")

	srv := registrytest.NewServer(t)
	srv.AddPack("peon", `{"categories": {"task.complete": {"sounds": [{"file": "done.wav"}]}}}`, nil)

	_, _, err := e.run(t, []string{"use", "peon"}, registryOpts(srv))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"notify": {"peon/done.wav"}}, e.load(t).Events)
}

func TestUse_FailureWritesNothing(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "[events]\nstop = [\"old/keep.wav\"]\n")

	srv := registrytest.NewServer(t)
	srv.AddPack("peon", `{"categories": {"task.complete": {"sounds": [{"file": "done.wav"}]}}}`, nil)

	_, _, err := e.run(t, []string{"use", "peon,missing"}, registryOpts(srv))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
	assert.Equal(t, map[string][]string{"stop": {"old/keep.wav"}}, e.load(t).Events)
}

func TestUse_NoNames(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run(t, []string{"use", " , "})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
}

func TestDirAndSetDir(t *testing.T) {
	e := newEnv(t)

	stdout, _, err := e.run(t, []string{"dir"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.home, ".config", "hookplayer", "sounds")+"\n", stdout)

	stdout, stderr, err := e.run(t, []string{"set-dir", "~/my-sounds"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "sounds_dir set to ~/my-sounds")
	assert.Contains(t, stderr, "directory does not exist yet")
	assert.Equal(t, "~/my-sounds", e.load(t).SoundsDir)

	require.NoError(t, os.MkdirAll(filepath.Join(e.home, "my-sounds"), 0755))
	stdout, stderr, err = e.run(t, []string{"set-dir", "~/my-sounds"})
	require.NoError(t, err)
	assert.Empty(t, stderr)

	stdout, _, err = e.run(t, []string{"dir"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.home, "my-sounds")+"\n", stdout)
}

func TestPacks_MissingDir(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, `sounds_dir = "`+filepath.Join(e.home, "nope")+`"`+"\n")

	_, _, err := e.run(t, []string{"packs"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrIO))
	assert.Contains(t, err.Error(), "could not read sounds dir")
}

func TestConfigCommands(t *testing.T) {
	e := newEnv(t)

	stdout, _, err := e.run(t, []string{"config", "path"})
	require.NoError(t, err)
	assert.Equal(t, e.configPath+"\n", stdout)

	_, _, err = e.run(t, []string{"config", "set", "volume", "0.9"})
	require.NoError(t, err)

	stdout, _, err = e.run(t, []string{"config", "get", "volume"})
	require.NoError(t, err)
	assert.Equal(t, "0.9\n", stdout)

	_, _, err = e.run(t, []string{"config", "set", "volume", "loud"})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
}

func TestVersion(t *testing.T) {
	e := newEnv(t)

	for _, flag := range []string{"--version", "-V"} {
		stdout, _, err := e.run(t, []string{flag})
		require.NoError(t, err)
		assert.Equal(t, "hookplayer 1.0.0\n", stdout)
		assert.Empty(t, e.plays)
	}

	stdout, _, err := e.run(t, []string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "hookplayer version 1.0.0 (commit: abc123, built: 2026-01-02)\n", stdout)

	stdout, _, err = e.run(t, []string{"version", "--short"})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", stdout)

	stdout, _, err = e.run(t, []string{"version", "--json"})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"commit": "abc123"`)
}

func newReleaseAPI(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/owner/tool/releases/latest",
			strings.HasPrefix(r.URL.Path, "/repos/owner/tool/releases/tags/"):
			w.Write([]byte(`{"tag_name": "` + tag + `"}`))
		case strings.HasSuffix(r.URL.Path, "/hookplayer-linux-x86_64"):
			w.Write([]byte("new binary"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func updaterOpts(srv *httptest.Server) Option {
	return WithUpdaterOptions(
		updater.WithHTTPClient(srv.Client()),
		updater.WithRepo("owner/tool"),
		updater.WithAPIBase(srv.URL),
		updater.WithDownloadBase(srv.URL),
		updater.WithPlatform("linux", "amd64"),
	)
}

func TestUpdate_Check(t *testing.T) {
	e := newEnv(t)
	srv := newReleaseAPI(t, "v1.1.0")

	stdout, _, err := e.run(t, []string{"update", "--check"}, updaterOpts(srv), WithExecutable(filepath.Join(e.home, "bin")))
	require.NoError(t, err)
	assert.Equal(t, "Update available: 1.0.0 -> 1.1.0\n", stdout)
}

func TestUpdate_UpToDate(t *testing.T) {
	e := newEnv(t)
	srv := newReleaseAPI(t, "v1.0.0")

	stdout, _, err := e.run(t, []string{"update"}, updaterOpts(srv), WithExecutable(filepath.Join(e.home, "bin")))
	require.NoError(t, err)
	assert.Equal(t, "You are on the latest version (1.0.0)\n", stdout)
}

func TestUpdate_ReplacesExecutable(t *testing.T) {
	e := newEnv(t)
	srv := newReleaseAPI(t, "v1.1.0")
	exe := filepath.Join(e.home, "hookplayer")
	require.NoError(t, os.WriteFile(exe, []byte("old binary"), 0755))

	stdout, _, err := e.run(t, []string{"update"}, updaterOpts(srv), WithExecutable(exe))
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated to 1.1.0\n", stdout)

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(data))
}

func TestUpdate_InvalidVersion(t *testing.T) {
	e := newEnv(t)
	srv := newReleaseAPI(t, "v1.1.0")

	_, _, err := e.run(t, []string{"update", "--version", "banana"}, updaterOpts(srv), WithExecutable(filepath.Join(e.home, "bin")))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
	assert.True(t, strings.HasPrefix(err.Error(), "update failed: "))
}

func TestSplitPackNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"peon", []string{"peon"}},
		{"peon,glados", []string{"peon", "glados"}},
		{" peon , glados ,", []string{"peon", "glados"}},
		{",,", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitPackNames(tt.in), tt.in)
	}
}
