package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hooks"
	"github.com/dsrosen6/hyprevents/internal/listener"
)

const sampleCfg = `
mode: cooperative
log:
  level: debug
log_events: [workspace, openwindow]
notify:
  app_name: hypr
hooks:
  - name: float-pavucontrol
    on: openwindow
    when: event.Class == "pavucontrol"
    dispatch: togglefloating address:${address}
`

func hookRule(on, exec, when string) hooks.Rule {
	return hooks.Rule{On: on, Exec: exec, When: when}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestInitConfig_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyprevents", "config.yaml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "blocking", cfg.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestInitConfig_ReadsFile(t *testing.T) {
	t.Setenv("HYPREVENTS_MODE", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, sampleCfg)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, listener.Cooperative, cfg.ListenMode())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "hypr", cfg.Notify.AppName)
	assert.Equal(t, []event.Kind{event.KindWorkspaceChanged, event.KindWindowOpened}, cfg.LoggedKinds())
	require.Len(t, cfg.Hooks, 1)
	assert.Equal(t, "togglefloating address:${address}", cfg.Hooks[0].Dispatch)
}

func TestInitConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"mode": "async", "log_events": []}`)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, listener.Cooperative, cfg.ListenMode())
	assert.Equal(t, event.Kinds(), cfg.LoggedKinds())
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HYPREVENTS_MODE", "blocking")
	t.Setenv("HYPREVENTS_LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, sampleCfg)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, listener.Blocking, cfg.ListenMode())
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := Default("x")
	cfg.Mode = "turbo"
	cfg.Log.Level = "loud"
	cfg.LogEvents = []string{"workspace", "bogus"}
	cfg.Hooks = append(cfg.Hooks,
		hookRule("nope", "true", ""),
		hookRule("workspace", "true", "event.Title"),
	)

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "5 errors occurred")
	assert.Contains(t, msg, `unknown listener mode "turbo"`)
	assert.Contains(t, msg, `unknown log level "loud"`)
	assert.Contains(t, msg, `log_events: unknown event "bogus"`)
	assert.Contains(t, msg, `unknown event "nope"`)
	assert.Contains(t, msg, "compiling condition")
}

func TestReload(t *testing.T) {
	t.Setenv("HYPREVENTS_MODE", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)

	writeFile(t, path, sampleCfg)
	require.NoError(t, cfg.Reload(0))
	assert.Equal(t, "cooperative", cfg.Mode)
	assert.Equal(t, path, cfg.Path())

	writeFile(t, path, "mode: turbo\n")
	assert.Error(t, cfg.Reload(0))
	assert.Equal(t, "cooperative", cfg.Mode, "invalid file must not replace current values")

	writeFile(t, path, "mode: [\n")
	assert.ErrorContains(t, cfg.Reload(1), "after 2 attempts")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "mode: blocking\n")
	cfg := Default(path)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 4)
	errc := make(chan error, 1)
	go func() { errc <- cfg.Watch(ctx, changed) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	writeFile(t, path, "mode: cooperative\n")

	select {
	case got := <-changed:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	require.NoError(t, <-errc)
}
