package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/pipeline"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[canvas]
width = 1920
height = 1080

[layout]
mode = "columns"
columns = 3

[server]
redis = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	opts := cfg.Options()
	if opts.Width != 1920 || opts.Height != 1080 || opts.Mode != pipeline.ModeColumns || opts.Columns != 3 {
		t.Errorf("Options() = %+v", opts)
	}
	if opts.Staves != pipeline.DefaultStaves {
		t.Errorf("unset staves = %d, want default", opts.Staves)
	}
	if cfg.Server.Redis != "localhost:6379" || cfg.Server.Addr == "" {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := LoadConfig(missing, false)
	if err != nil {
		t.Fatalf("implicit missing config should be ignored: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}

	if _, err := LoadConfig(missing, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[canvas\nwidth ="), 0o644)
	if _, err := LoadConfig(path, true); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadConfig() = %v, want INVALID_FORMAT", err)
	}
}

func TestOptionFlagsResolve(t *testing.T) {
	base := DefaultConfig().Options()

	tests := []struct {
		name  string
		args  []string
		check func(pipeline.Options) bool
	}{
		{"no flags keeps base", nil, func(o pipeline.Options) bool { return o == base }},
		{"width only", []string{"--width", "640"}, func(o pipeline.Options) bool {
			return o.Width == 640 && o.Height == base.Height && o.Mode == base.Mode
		}},
		{"columns implies mode", []string{"-c", "3"}, func(o pipeline.Options) bool {
			return o.Mode == pipeline.ModeColumns && o.Columns == 3
		}},
		{"zoom implies mode", []string{"--zoom", "0.5"}, func(o pipeline.Options) bool {
			return o.Mode == pipeline.ModeZoom && o.Zoom == 0.5
		}},
		{"explicit mode wins", []string{"-m", "staves", "-c", "3"}, func(o pipeline.Options) bool {
			return o.Mode == pipeline.ModeStaves && o.Columns == 3
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f optionFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			got, err := f.resolve(cmd, base)
			if err != nil {
				t.Fatalf("resolve() error: %v", err)
			}
			if !tt.check(got) {
				t.Errorf("resolve(%v) = %+v", tt.args, got)
			}
			if f.changed(cmd) != (len(tt.args) > 0) {
				t.Errorf("changed() = %v", f.changed(cmd))
			}
		})
	}
}

func TestOptionFlagsResolveInvalid(t *testing.T) {
	var f optionFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	cmd.ParseFlags([]string{"--mode", "fit"})
	if _, err := f.resolve(cmd, DefaultConfig().Options()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("resolve() = %v, want INVALID_INPUT", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func TestSessionDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	c := New(os.Stderr, LogInfo)
	dir, err := c.sessionDir()
	if err != nil || dir != filepath.Join("/tmp/cfg", appName, "sessions") {
		t.Errorf("sessionDir() = %q, %v", dir, err)
	}

	c.Config.Session.Dir = "/srv/sessions"
	if dir, _ := c.sessionDir(); dir != "/srv/sessions" {
		t.Errorf("configured sessionDir() = %q", dir)
	}
}
