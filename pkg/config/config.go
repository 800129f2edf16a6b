package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/expensu/pkg/store"
)

const (
	appName   = "expensu"
	envPrefix = "EXPENSU"
	dotEnv    = ".env"
)

// Config is the resolved configuration. Sources are applied in this order,
// later ones winning: defaults, config file, .env, environment, flags.
type Config struct {
	File  string `mapstructure:"file" yaml:"file"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`

	// ConfigFile is the config file that was read, empty when none was found.
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// Build loads the configuration. An explicit cfgFile must exist; otherwise
// config.yaml is looked up in the working directory and in
// $HOME/.config/expensu and is optional. Only flags the user actually set
// override other sources. Config files and the expense path are resolved on
// fsys, the filesystem the store will use.
func Build(fsys afero.Fs, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetDefault("file", store.DefaultPath)
	v.SetDefault("debug", false)

	if err := gotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for _, name := range []string{"file", "debug"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(fsys); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the resolved values against fsys.
func (c *Config) Validate(fsys afero.Fs) error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("invalid configuration: expense file path cannot be empty")
	}
	isDir, err := afero.IsDir(fsys, c.File)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("invalid configuration: cannot stat expense file %s: %w", c.File, err)
	}
	if isDir {
		return fmt.Errorf("invalid configuration: expense file %s is a directory", c.File)
	}
	return nil
}
