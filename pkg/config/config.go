// Package config loads the launcher settings from the config file and
// environment, with sane defaults for everything.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const appName = "togglaunch"

type Config struct {
	// TogglPath is the external toggl executable.
	TogglPath string
	// MaxResults caps the rendered result list.
	MaxResults int
	// Workspace and DefaultProject are passed through to the tool when
	// set; zero means unset.
	Workspace      int
	DefaultProject int
	// Hints toggles the sigil usage tips appended to some flows.
	Hints bool
	// Keyword is the launcher keyword prefixed to query continuations.
	Keyword string

	// Dispatcher tuning.
	Threshold int
	Synonyms  map[string]string // alias -> canonical command name

	// Cache locations and lifetimes.
	CacheDir   string
	TrackerTTL time.Duration
	ProjectTTL time.Duration
}

// Load reads configuration from cfgFile (or the default location under
// the user config dir), environment variables prefixed TOGGLAUNCH_, and
// an optional .env file. A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	// explicit .env loading; absence is fine
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, appName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", v.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		return nil, err
	}

	cfg := &Config{
		TogglPath:      expandHome(v.GetString("toggl_path")),
		MaxResults:     v.GetInt("max_results"),
		Workspace:      v.GetInt("workspace"),
		DefaultProject: v.GetInt("default_project"),
		Hints:          v.GetBool("hints"),
		Keyword:        v.GetString("keyword"),
		Threshold:      v.GetInt("commands.threshold"),
		Synonyms:       v.GetStringMapString("commands.synonyms"),
		CacheDir:       expandHome(v.GetString("cache.dir")),
		TrackerTTL:     v.GetDuration("cache.tracker_ttl"),
		ProjectTTL:     v.GetDuration("cache.project_ttl"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("toggl_path", "~/.local/bin/toggl")
	v.SetDefault("max_results", 10)
	v.SetDefault("hints", true)
	v.SetDefault("keyword", "tgl")
	v.SetDefault("commands.threshold", 50)
	v.SetDefault("cache.tracker_ttl", "24h")
	v.SetDefault("cache.project_ttl", "336h")

	cacheDir := filepath.Join("~", ".cache", appName)
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, appName)
	}
	v.SetDefault("cache.dir", cacheDir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// TrackerCachePath and ProjectCachePath are the per-kind persistent
// slots under the cache directory.
func (c *Config) TrackerCachePath() string {
	return filepath.Join(c.CacheDir, "tracker_history.json")
}

func (c *Config) ProjectCachePath() string {
	return filepath.Join(c.CacheDir, "project_history.json")
}
