package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. MDBOOK_FRONTMATTER_STRIP_RENDERERS.
const EnvPrefix = "MDBOOK_FRONTMATTER_STRIP"

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = 1

// DefaultRenderers lists the renderers supported when none are configured.
var DefaultRenderers = []string{"html"}

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Renderers lists the mdBook renderers the preprocessor reports as
	// supported to the `supports` probe.
	Renderers []string `mapstructure:"renderers" yaml:"renderers"`

	// LogFrontmatter logs every stripped block at debug level instead of trace.
	LogFrontmatter bool `mapstructure:"log_frontmatter" yaml:"log_frontmatter"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Version:   CurrentVersion,
		Renderers: append([]string(nil), DefaultRenderers...),
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", CurrentVersion)
	viper.SetDefault("renderers", DefaultRenderers)
	viper.SetDefault("log_frontmatter", false)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || isNotExist(err)
		switch {
		case missing && path == "":
			// Implicit load, defaults apply.
		case missing:
			return nil, errors.Wrapf(errors.Mark(err, errors.ErrNotFound), "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the file Load read, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
