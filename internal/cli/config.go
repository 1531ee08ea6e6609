package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scorepager/internal/server"
	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/pipeline"
)

// Config is the TOML config file.
//
//	[canvas]
//	width = 1920
//	height = 1080
//
//	[layout]
//	mode = "staves"
//	staves = 4
//
//	[server]
//	addr = "0.0.0.0:8080"
//	redis = "localhost:6379"
//
//	[session]
//	dir = "/var/lib/scorepager/sessions"
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Layout  LayoutConfig  `toml:"layout"`
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
}

// CanvasConfig is the target page size in pixels.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// LayoutConfig selects the sizing mode and its target.
type LayoutConfig struct {
	Mode    string  `toml:"mode"`
	Staves  int     `toml:"staves"`
	Columns int     `toml:"columns"`
	Zoom    float64 `toml:"zoom"`
}

// ServerConfig configures `scorepager serve`. An empty Redis address keeps
// sessions in memory.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	Redis         string `toml:"redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// SessionConfig configures the CLI's reading-position store.
type SessionConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight},
		Layout: LayoutConfig{
			Mode:    string(pipeline.DefaultMode),
			Staves:  pipeline.DefaultStaves,
			Columns: pipeline.DefaultColumns,
			Zoom:    pipeline.DefaultZoom,
		},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig. A
// missing file is only an error when the path was given explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config file %s", path)
	}
	return cfg, nil
}

// Options converts the config into pipeline options.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Width:   c.Canvas.Width,
		Height:  c.Canvas.Height,
		Mode:    pipeline.Mode(c.Layout.Mode),
		Zoom:    c.Layout.Zoom,
		Staves:  c.Layout.Staves,
		Columns: c.Layout.Columns,
	}
}

// =============================================================================
// Option Flags
// =============================================================================

// optionFlags are the layout flags shared by several commands. Only flags
// set on the command line override the config.
type optionFlags struct {
	width, height float64
	mode          string
	zoom          float64
	staves        int
	columns       int
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(pipeline.DefaultMode), "sizing mode: zoom, staves, columns")
	cmd.Flags().Float64VarP(&f.zoom, "zoom", "z", pipeline.DefaultZoom, "scale in zoom mode (canvas pixels per source pixel)")
	cmd.Flags().IntVarP(&f.staves, "staves", "s", pipeline.DefaultStaves, "staves per column in staves mode")
	cmd.Flags().IntVarP(&f.columns, "columns", "c", pipeline.DefaultColumns, "columns per page in columns mode")
}

// resolve overlays the flags the user set on base.
func (f *optionFlags) resolve(cmd *cobra.Command, base pipeline.Options) (pipeline.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		base.Width = f.width
	}
	if flags.Changed("height") {
		base.Height = f.height
	}
	if flags.Changed("mode") {
		base.Mode = pipeline.Mode(f.mode)
	}
	if flags.Changed("zoom") {
		base.Zoom = f.zoom
		if !flags.Changed("mode") {
			base.Mode = pipeline.ModeZoom
		}
	}
	if flags.Changed("staves") {
		base.Staves = f.staves
		if !flags.Changed("mode") {
			base.Mode = pipeline.ModeStaves
		}
	}
	if flags.Changed("columns") {
		base.Columns = f.columns
		if !flags.Changed("mode") {
			base.Mode = pipeline.ModeColumns
		}
	}
	base.SetDefaults()
	if err := base.Validate(); err != nil {
		return base, fmt.Errorf("invalid layout flags: %w", err)
	}
	return base, nil
}

// changed reports whether any layout flag was set on the command line.
func (f *optionFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"width", "height", "mode", "zoom", "staves", "columns"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
