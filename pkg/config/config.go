// Package config holds the settings for fetching, storing and plotting.
// Priority, lowest first: defaults, config file, NMRSTAR_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/andrew-torda/nmrstar/pkg/bmrb"
	"github.com/andrew-torda/nmrstar/pkg/logger"
)

const envPrefix = "NMRSTAR"

// Config is everything that can be set from a file or the environment.
type Config struct {
	BMRB   BMRBConfig   `yaml:"bmrb" mapstructure:"bmrb"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Plot   PlotConfig   `yaml:"plot" mapstructure:"plot"`
}

// BMRBConfig says where and how to download entries.
type BMRBConfig struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Progress bool          `yaml:"progress" mapstructure:"progress"` // show a progress bar
}

// OutputConfig is where downloaded files go.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// StoreConfig names the sqlite database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig is debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// PlotConfig is the size of plots in pixels.
type PlotConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BMRB: BMRBConfig{
			BaseURL:  bmrb.DefaultBaseURL,
			Timeout:  2 * time.Minute,
			Progress: false,
		},
		Output: OutputConfig{Dir: "."},
		Store:  StoreConfig{Path: "nmrstar.db"},
		Log:    LogConfig{Level: "info"},
		Plot:   PlotConfig{Width: 800, Height: 600},
	}
}

// Errors from Validate
var (
	ErrBadURL     = errors.New("invalid base url")
	ErrBadTimeout = errors.New("timeout must be positive")
	ErrBadSize    = errors.New("plot size must be positive")
	ErrEmptyPath  = errors.New("empty path")
)

// Validate checks values that would otherwise fail later and less clearly.
func Validate(cfg *Config) error {
	var errs []error
	if u, err := url.Parse(cfg.BMRB.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrBadURL, cfg.BMRB.BaseURL))
	}
	if cfg.BMRB.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrBadTimeout, cfg.BMRB.Timeout))
	}
	if cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrBadSize, cfg.Plot.Width, cfg.Plot.Height))
	}
	if cfg.Output.Dir == "" {
		errs = append(errs, fmt.Errorf("output.dir: %w", ErrEmptyPath))
	}
	if cfg.Store.Path == "" {
		errs = append(errs, fmt.Errorf("store.path: %w", ErrEmptyPath))
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("bmrb.base_url", d.BMRB.BaseURL)
	v.SetDefault("bmrb.timeout", d.BMRB.Timeout)
	v.SetDefault("bmrb.progress", d.BMRB.Progress)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)
}

// Load reads the configuration. If cfgFile is empty, we look for
// .nmrstar.yaml in the current directory and then the home directory,
// and it is not an error if there is none.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".nmrstar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range []string{"bmrb.base_url", "bmrb.timeout", "bmrb.progress", "output.dir",
		"store.path", "log.level", "plot.width", "plot.height"} {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
