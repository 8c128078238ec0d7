package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at empty temp dirs
// so files on the developer machine do not leak into the test.
func isolate(t *testing.T) (home, cwd string) {
	t.Helper()
	home = t.TempDir()
	cwd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(cwd)
	return home, cwd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded YAML and DefaultConfig() differ:\nyaml: %+v\ncode: %+v", cfg, DefaultConfig())
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Physics.FlapImpulse != 25 || cfg.Physics.Gravity != 3 {
		t.Errorf("expected default physics, got %+v", cfg.Physics)
	}
	if cfg.Timing.SpawnInterval != 3 {
		t.Errorf("expected spawn interval 3, got %g", cfg.Timing.SpawnInterval)
	}
}

func TestLoadCustomPathOverridesFields(t *testing.T) {
	_, cwd := isolate(t)
	path := filepath.Join(cwd, "custom.yaml")
	writeFile(t, path, "physics:\n  gravity: 5\npolicy:\n  spawn_while_paused: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Physics.Gravity != 5 {
		t.Errorf("gravity = %g, expected 5", cfg.Physics.Gravity)
	}
	if cfg.Physics.FlapImpulse != 25 {
		t.Errorf("unset fields should keep defaults, flap_impulse = %g", cfg.Physics.FlapImpulse)
	}
	if !cfg.Policy.SpawnWhilePaused {
		t.Error("spawn_while_paused should be true")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, cwd := isolate(t)

	if _, err := Load(filepath.Join(cwd, "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(cwd, "bad.yaml")
	writeFile(t, bad, "scene: [not, a, map]\n")
	if _, err := Load(bad); err == nil {
		t.Error("malformed custom config should be an error")
	}

	invalid := filepath.Join(cwd, "invalid.yaml")
	writeFile(t, invalid, "timing:\n  spawn_interval: 0\n")
	if _, err := Load(invalid); err == nil {
		t.Error("invalid custom config should be an error")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, cwd := isolate(t)
	writeFile(t, filepath.Join(cwd, "configs", FileName), "physics:\n  gravity: 7\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Physics.Gravity != 7 {
		t.Errorf("local config should be used, gravity = %g", cfg.Physics.Gravity)
	}

	writeFile(t, filepath.Join(home, ".tucan", "configs", FileName), "physics:\n  gravity: 9\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Physics.Gravity != 9 {
		t.Errorf("user config should win over local config, gravity = %g", cfg.Physics.Gravity)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Width = 0
	cfg.Avatar.Mass = -1
	cfg.Obstacles.MinOffset = 20

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{"scene size", "avatar.mass", "min_offset"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestMarshalThenParseKeepsPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.ResetRestoresAvatar = true
	cfg.Scene.Width = 400

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("config changed through YAML:\ngot:  %+v\nwant: %+v", got, cfg)
	}
}
