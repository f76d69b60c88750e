package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type APICfg struct {
	BaseURL    string
	TimeoutSec int
}

type LogCfg struct {
	Level string
}

type StateCfg struct {
	Path string
}

// Config is the runtime configuration of the CLI. Values come from an
// optional config.yaml plus SITETRACK_* environment variables; env wins.
type Config struct {
	API   APICfg
	Log   LogCfg
	State StateCfg
}

// Load reads configuration from ./config.yaml or ~/.sitetrack/config.yaml
// falling back to defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".sitetrack"))
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SITETRACK") // e.g. SITETRACK_API_BASEURL -> api.baseurl

	setDefaults(v)

	// Missing files are fine, we run on env + defaults then.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseurl", "http://localhost:5000/api")
	v.SetDefault("api.timeoutsec", 30)
	v.SetDefault("log.level", "warn")
	v.SetDefault("state.path", defaultStatePath())
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitetrack.db"
	}
	return filepath.Join(home, ".sitetrack", "state.db")
}
