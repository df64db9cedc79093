package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tendril/engine"
	"github.com/lixenwraith/tendril/input"
	"github.com/lixenwraith/tendril/render"
)

// ErrUnknownOption is returned by Set for option names no section recognizes
var ErrUnknownOption = errors.New("unknown option")

// Config holds tendril configuration
type Config struct {
	Sim     SimConfig         `toml:"sim"`
	Display DisplayConfig     `toml:"display"`
	Palette PaletteConfig     `toml:"palette"`
	Keys    map[string]string `toml:"keys"`
	Audio   AudioConfig       `toml:"audio"`
	Run     RunConfig         `toml:"run"`
}

// SimConfig holds relaxation tunables
type SimConfig struct {
	MinDistance        float64       `toml:"min_distance"`
	MaxDistance        float64       `toml:"max_distance"`
	RepulsionRadius    float64       `toml:"repulsion_radius"`
	AttractionForce    float64       `toml:"attraction_force"`
	RepulsionForce     float64       `toml:"repulsion_force"`
	AlignmentForce     float64       `toml:"alignment_force"`
	StepFraction       float64       `toml:"step_fraction"`
	Jitter             bool          `toml:"jitter"`
	JitterRange        float64       `toml:"jitter_range"`
	InjectionInterval  time.Duration `toml:"injection_interval"`
	InjectionMode      string        `toml:"injection_mode"` // "random", "curvature"
	CurvatureThreshold float64       `toml:"curvature_threshold"`
	MaxHistory         int           `toml:"max_history"`
}

// DisplayConfig holds startup render toggles
type DisplayConfig struct {
	Trace          bool `toml:"trace"`
	Inverted       bool `toml:"inverted"`
	Debug          bool `toml:"debug"`
	ShowNodes      bool `toml:"show_nodes"`
	Fill           bool `toml:"fill"`
	ShowHistory    bool `toml:"show_history"`
	DrawBounds     bool `toml:"draw_bounds"`
	DrawBackground bool `toml:"draw_background"`
}

// PaletteConfig holds colours as hex strings
type PaletteConfig struct {
	Background         string  `toml:"background"`
	Stroke             string  `toml:"stroke"`
	Fill               string  `toml:"fill"`
	InvertedBackground string  `toml:"inverted_background"`
	InvertedStroke     string  `toml:"inverted_stroke"`
	InvertedFill       string  `toml:"inverted_fill"`
	Bounds             string  `toml:"bounds"`
	Node               string  `toml:"node"`
	TraceAlpha         float64 `toml:"trace_alpha"`
	NodeRadius         float64 `toml:"node_radius"`
	StrokeWidth        float64 `toml:"stroke_width"` // 0 is a hairline
}

// AudioConfig controls sound cues
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0..1
}

// RunConfig controls the front ends
type RunConfig struct {
	FPS         int           `toml:"fps"`
	Layout      string        `toml:"layout"` // name or 1-based index
	Scene       string        `toml:"scene"`  // YAML scene file, overrides layout
	Seed        uint64        `toml:"seed"`   // 0 picks a time-based seed
	RestartHold time.Duration `toml:"restart_hold"`
	SnapshotDir string        `toml:"snapshot_dir"`

	// Headless world size and output
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Scale  float64 `toml:"scale"` // PNG pixels per world unit
	Ticks  int     `toml:"ticks"`
}

// Default returns the default configuration
func Default() *Config {
	s := engine.DefaultSettings()
	return &Config{
		Sim: SimConfig{
			MinDistance:        s.MinDistance,
			MaxDistance:        s.MaxDistance,
			RepulsionRadius:    s.RepulsionRadius,
			AttractionForce:    s.AttractionForce,
			RepulsionForce:     s.RepulsionForce,
			AlignmentForce:     s.AlignmentForce,
			StepFraction:       s.StepFraction,
			Jitter:             s.Jitter,
			JitterRange:        s.JitterRange,
			InjectionInterval:  s.InjectionInterval,
			InjectionMode:      s.InjectionMode.String(),
			CurvatureThreshold: s.CurvatureThreshold,
			MaxHistory:         s.MaxHistory,
		},
		Display: DisplayConfig{DrawBackground: true},
		Palette: PaletteConfig{
			Background:         "#000000",
			Stroke:             "#ffffff",
			Fill:               "#333333",
			InvertedBackground: "#ffffff",
			InvertedStroke:     "#000000",
			InvertedFill:       "#cccccc",
			Bounds:             "#555555",
			Node:               "#ff4455",
			TraceAlpha:         0.1,
			NodeRadius:         1.5,
		},
		Keys:  map[string]string{},
		Audio: AudioConfig{Enabled: false, Volume: 0.5},
		Run: RunConfig{
			FPS:         30,
			Layout:      "lines",
			RestartHold: 500 * time.Millisecond,
			SnapshotDir: ".",
			Width:       800,
			Height:      600,
			Scale:       1,
			Ticks:       300,
		},
	}
}

// ConfigDir returns the tendril config directory path
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tendril")
}

// DefaultPath returns the config file used when none is given
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads path over the defaults
// An empty path tries DefaultPath and falls back to defaults when it does not exist
// Unknown keys are logged, not rejected
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	for _, k := range md.Undecoded() {
		log.Printf("config %s: ignoring unknown key %s", path, k)
	}
	return cfg, nil
}

// Set applies one "section.key" override, value in TOML syntax or a bare string
func (c *Config) Set(option, value string) error {
	section, key, ok := strings.Cut(strings.TrimSpace(option), ".")
	if !ok || section == "" || key == "" {
		return fmt.Errorf("%q (want section.key): %w", option, ErrUnknownOption)
	}

	doc := fmt.Sprintf("[%s]\n%s = %s\n", section, strconv.Quote(key), tomlValue(value))
	md, err := toml.Decode(doc, c)
	if err != nil {
		return fmt.Errorf("option %s: %w", option, err)
	}
	if len(md.Undecoded()) > 0 {
		return fmt.Errorf("%q: %w", option, ErrUnknownOption)
	}
	return nil
}

// SetAll applies "section.key=value" overrides in order
func (c *Config) SetAll(overrides []string) error {
	for _, kv := range overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q: want section.key=value", kv)
		}
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// tomlValue passes through booleans, numbers and quoted strings, quoting anything else
func tomlValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "true" || v == "false" {
		return v
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v
	}
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v
	}
	return strconv.Quote(v)
}

// Options lists every recognized "section.key" name, sorted
func Options() []string {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return nil
	}
	var opts []string
	section := ""
	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "["):
			section = strings.Trim(line, "[]")
		case strings.Contains(line, "="):
			k, _, _ := strings.Cut(line, "=")
			opts = append(opts, section+"."+strings.TrimSpace(k))
		}
	}
	sort.Strings(opts)
	return opts
}

// Settings converts the [sim] section
func (c *Config) Settings() (engine.Settings, error) {
	mode, err := engine.ParseInjectionMode(c.Sim.InjectionMode)
	if err != nil {
		return engine.Settings{}, fmt.Errorf("sim.injection_mode: %w", err)
	}
	return engine.Settings{
		MinDistance:        c.Sim.MinDistance,
		MaxDistance:        c.Sim.MaxDistance,
		RepulsionRadius:    c.Sim.RepulsionRadius,
		AttractionForce:    c.Sim.AttractionForce,
		RepulsionForce:     c.Sim.RepulsionForce,
		AlignmentForce:     c.Sim.AlignmentForce,
		StepFraction:       c.Sim.StepFraction,
		Jitter:             c.Sim.Jitter,
		JitterRange:        c.Sim.JitterRange,
		InjectionInterval:  c.Sim.InjectionInterval,
		InjectionMode:      mode,
		CurvatureThreshold: c.Sim.CurvatureThreshold,
		MaxHistory:         c.Sim.MaxHistory,
	}, nil
}

// Toggles converts the [display] section
func (c *Config) Toggles() engine.Display {
	d := c.Display
	return engine.Display{
		Trace:          d.Trace,
		Inverted:       d.Inverted,
		Debug:          d.Debug,
		ShowNodes:      d.ShowNodes,
		Fill:           d.Fill,
		ShowHistory:    d.ShowHistory,
		DrawBounds:     d.DrawBounds,
		DrawBackground: d.DrawBackground,
	}
}

// Colors converts the [palette] section, parsing hex colours
func (c *Config) Colors() (engine.Palette, error) {
	p := c.Palette
	pal := engine.Palette{TraceAlpha: p.TraceAlpha, NodeRadius: p.NodeRadius, StrokeWidth: p.StrokeWidth}
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", p.Background, &pal.Background},
		{"stroke", p.Stroke, &pal.Stroke},
		{"fill", p.Fill, &pal.Fill},
		{"inverted_background", p.InvertedBackground, &pal.InvertedBackground},
		{"inverted_stroke", p.InvertedStroke, &pal.InvertedStroke},
		{"inverted_fill", p.InvertedFill, &pal.InvertedFill},
		{"bounds", p.Bounds, &pal.Bounds},
		{"node", p.Node, &pal.Node},
	}
	for _, f := range fields {
		col, err := render.ParseHex(f.hex)
		if err != nil {
			return engine.Palette{}, fmt.Errorf("palette.%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return pal, nil
}

// KeyTable merges [keys] over the default bindings
func (c *Config) KeyTable() (*input.KeyTable, error) {
	return input.LoadKeyTable(c.Keys)
}
