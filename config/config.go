// Package config loads CLI defaults from ~/.bolognese/config.yaml, a .env file
// and BOLOGNESE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeySandbox   = "sandbox"
	KeyTimeout   = "timeout"
	KeyRateLimit = "rate_limit"
	KeyUserAgent = "user_agent"
	KeyLogLevel  = "log_level"
	KeyFrom      = "from"
	KeyTo        = "to"

	envPrefix      = "BOLOGNESE"
	configFileName = "config"
	configFileType = "yaml"

	// DefaultDir holds config.yaml.
	DefaultDir = "~/.bolognese"
)

// Config is the decoded configuration.
type Config struct {
	Sandbox   bool
	Timeout   time.Duration
	RateLimit float64
	UserAgent string
	LogLevel  string
	From      string
	To        string
}

// New returns a viper instance with defaults and environment binding but no
// config file.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeySandbox, false)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRateLimit, 10.0)
	v.SetDefault(KeyUserAgent, "bolognese")
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyTo, "schemaorg")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads dir/config.yaml on top of the defaults. An empty dir means
// DefaultDir. envFiles are loaded into the environment first; with none, a
// .env in the working directory is tried. Missing files are not errors.
func Load(dir string, envFiles ...string) (*viper.Viper, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if dir == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", dir, err)
	}

	v := New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(expanded)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// Decode reads the known keys out of v.
func Decode(v *viper.Viper) Config {
	return Config{
		Sandbox:   v.GetBool(KeySandbox),
		Timeout:   v.GetDuration(KeyTimeout),
		RateLimit: v.GetFloat64(KeyRateLimit),
		UserAgent: v.GetString(KeyUserAgent),
		LogLevel:  strings.ToUpper(v.GetString(KeyLogLevel)),
		From:      v.GetString(KeyFrom),
		To:        v.GetString(KeyTo),
	}
}
