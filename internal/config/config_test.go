package config

import (
	"os"
	"path/filepath"
	"testing"

	gs "github.com/db47h/gatesim"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.SaveDir != "./saves" || c.Store != StoreDir {
		t.Errorf("unexpected store defaults %q, %q", c.SaveDir, c.Store)
	}
	if c.Logging.Level != "info" {
		t.Errorf("expected level info, got %q", c.Logging.Level)
	}
	if c.DBPath() != filepath.Join("saves", "gatesim.db") {
		t.Errorf("unexpected db path %q", c.DBPath())
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	p := c.Policy()
	if r := p.Role(&gs.Gate{Type: gs.Toggle}); r != gs.InPort {
		t.Errorf("TOGGLE: expected InPort, got %v", r)
	}
	if r := p.Role(&gs.Gate{Type: gs.Light}); r != gs.OutPort {
		t.Errorf("LIGHT: expected OutPort, got %v", r)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gatesim.yaml")
	src := `
save_dir: /tmp/circuits
store: sqlite
logging:
  level: debug
chip:
  inputs: pulse
  outputs: light
engine:
  frames: 42
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.SaveDir != "/tmp/circuits" || c.Store != StoreSQLite || c.Logging.Level != "debug" || c.Engine.Frames != 42 {
		t.Errorf("unexpected config %+v", c)
	}
	if c.DBPath() != "/tmp/circuits/gatesim.db" {
		t.Errorf("unexpected db path %q", c.DBPath())
	}
	if r := c.Policy().Role(&gs.Gate{Type: gs.Pulse}); r != gs.InPort {
		t.Errorf("PULSE: expected InPort, got %v", r)
	}
	if err = c.Validate(); err != nil {
		t.Fatal(err)
	}

	if _, err = LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if err = os.WriteFile(path, []byte("store: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(DefaultFile, []byte("save_dir: fromfile\nstore: dir\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GATESIM_STORE", "SQLITE")
	t.Setenv("GATESIM_SQLITE_PATH", "/var/db/g.db")
	t.Setenv("GATESIM_LOG_LEVEL", "trace")
	t.Setenv("GATESIM_FRAMES", "7")
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.SaveDir != "fromfile" {
		t.Errorf("file not loaded: save_dir = %q", c.SaveDir)
	}
	if c.Store != StoreSQLite || c.DBPath() != "/var/db/g.db" || c.Logging.Level != "trace" || c.Engine.Frames != 7 {
		t.Errorf("env overrides not applied: %+v", c)
	}

	t.Setenv("GATESIM_SAVE_DIR", "fromenv")
	if c, err = Load(); err != nil {
		t.Fatal(err)
	}
	if c.SaveDir != "fromenv" {
		t.Errorf("expected save_dir from env, got %q", c.SaveDir)
	}
}

func TestValidate(t *testing.T) {
	td := []struct {
		name string
		mod  func(c *Config)
		ok   bool
	}{
		{"default", func(c *Config) {}, true},
		{"sqlite", func(c *Config) { c.Store = StoreSQLite }, true},
		{"bad_store", func(c *Config) { c.Store = "s3" }, false},
		{"no_save_dir", func(c *Config) { c.SaveDir = "" }, false},
		{"sqlite_no_save_dir", func(c *Config) { c.Store, c.SaveDir, c.SQLitePath = StoreSQLite, "", "x.db" }, true},
		{"bad_level", func(c *Config) { c.Logging.Level = "loud" }, false},
		{"empty_level", func(c *Config) { c.Logging.Level = "" }, true},
		{"bad_port_kind", func(c *Config) { c.Chip.Inputs = "SWITCH" }, false},
		{"same_port_kinds", func(c *Config) { c.Chip.Outputs = "toggle" }, false},
		{"negative_frames", func(c *Config) { c.Engine.Frames = -1 }, false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			c := Default()
			d.mod(c)
			if err := c.Validate(); (err == nil) != d.ok {
				t.Errorf("Validate() = %v, ok = %v", err, d.ok)
			}
		})
	}
}
