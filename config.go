package canopy

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds a Manager's capacities, scale breakpoints and tooltip timing.
// Zero capacities and sizes and negative timings fall back to DefaultConfig
// values.
type Config struct {
	Debug bool    `mapstructure:"debug"`
	DPI   float64 `mapstructure:"dpi"`

	ScreenWidth  int `mapstructure:"screen_width"`
	ScreenHeight int `mapstructure:"screen_height"`

	MaxMaterials  int `mapstructure:"max_materials"`
	MaxBatches    int `mapstructure:"max_batches"`
	MaxVertices   int `mapstructure:"max_vertices"`
	EventCapacity int `mapstructure:"event_capacity"`

	TooltipDelay float64 `mapstructure:"tooltip_delay"` // seconds
	TooltipFade  float64 `mapstructure:"tooltip_fade"`  // seconds

	ScreenshotDir string `mapstructure:"screenshot_dir"`

	ScreenScales []ScaleBreakpoint `mapstructure:"screen_scales"`
	DPIScales    []ScaleBreakpoint `mapstructure:"dpi_scales"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		DPI:           96,
		ScreenWidth:   1280,
		ScreenHeight:  720,
		MaxMaterials:  64,
		MaxBatches:    32,
		MaxVertices:   6 * 4096,
		EventCapacity: 8,
		TooltipDelay:  0.5,
		TooltipFade:   0.15,
		ScreenshotDir: "screenshots",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DPI <= 0 {
		c.DPI = d.DPI
	}
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = d.ScreenWidth
	}
	if c.ScreenHeight <= 0 {
		c.ScreenHeight = d.ScreenHeight
	}
	if c.MaxMaterials <= 0 {
		c.MaxMaterials = d.MaxMaterials
	}
	if c.MaxBatches <= 0 {
		c.MaxBatches = d.MaxBatches
	}
	if c.MaxVertices <= 0 {
		c.MaxVertices = d.MaxVertices
	}
	if c.EventCapacity <= 0 {
		c.EventCapacity = d.EventCapacity
	}
	if c.TooltipDelay < 0 {
		c.TooltipDelay = d.TooltipDelay
	}
	if c.TooltipFade < 0 {
		c.TooltipFade = d.TooltipFade
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	return c
}

// LoadConfig reads a configuration file (TOML, JSON or YAML, chosen by
// extension). Keys live at the top level or under a [ui] table.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return decodeConfig(v)
}

func setConfigDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("dpi", d.DPI)
	v.SetDefault("screen_width", d.ScreenWidth)
	v.SetDefault("screen_height", d.ScreenHeight)
	v.SetDefault("max_materials", d.MaxMaterials)
	v.SetDefault("max_batches", d.MaxBatches)
	v.SetDefault("max_vertices", d.MaxVertices)
	v.SetDefault("event_capacity", d.EventCapacity)
	v.SetDefault("tooltip_delay", d.TooltipDelay)
	v.SetDefault("tooltip_fade", d.TooltipFade)
	v.SetDefault("screenshot_dir", d.ScreenshotDir)
}

func decodeConfig(v *viper.Viper) (Config, error) {
	src := v
	if sub := v.Sub("ui"); sub != nil {
		setConfigDefaults(sub)
		src = sub
	}
	var cfg Config
	if err := src.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg.withDefaults(), nil
}
