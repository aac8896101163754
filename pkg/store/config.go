package store

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/daybridge/pkg/eventkit"
)

// Config is the adapter-side configuration: where the local store lives,
// which backend serves the verbs, and which access scopes are granted.
type Config interface {
	BasePath() string
	Backend() string
	Granted(scope eventkit.Scope) bool
	CalDAV() CalDAVConfig
}

// CalDAVConfig carries credentials for the caldav backend.
type CalDAVConfig struct {
	URL      string
	Username string
	Password string
}

const (
	BackendLocal  = "local"
	BackendCalDAV = "caldav"
)

// LoadConfig reads the .daybridge config file (home or current directory, or
// DAYBRIDGE_CONFIG_PATH) merged with DAYBRIDGE_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.daybridge.db")
	v.SetDefault("backend", BackendLocal)
	v.SetDefault("access.calendars", true)
	v.SetDefault("access.reminders", true)
	v.SetConfigName(".daybridge") // .yaml is implicit
	v.SetEnvPrefix("DAYBRIDGE")
	v.AutomaticEnv()

	if override := os.Getenv("DAYBRIDGE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		path:            path,
		backend:         v.GetString("backend"),
		accessCalendars: v.GetBool("access.calendars"),
		accessReminders: v.GetBool("access.reminders"),
		caldav: CalDAVConfig{
			URL:      v.GetString("caldav.url"),
			Username: v.GetString("caldav.username"),
			Password: v.GetString("caldav.password"),
		},
	}, nil
}

type fileConfig struct {
	path            string
	backend         string
	accessCalendars bool
	accessReminders bool
	caldav          CalDAVConfig
}

func (f *fileConfig) BasePath() string { return f.path }
func (f *fileConfig) Backend() string  { return f.backend }

func (f *fileConfig) Granted(scope eventkit.Scope) bool {
	switch scope {
	case eventkit.ScopeReminders:
		return f.accessReminders
	default:
		return f.accessCalendars
	}
}

func (f *fileConfig) CalDAV() CalDAVConfig { return f.caldav }

// StaticConfig is a Config with fixed values, used by tests and by callers
// that already resolved their configuration.
type StaticConfig struct {
	Path           string
	BackendName    string
	DenyCalendars  bool
	DenyReminders  bool
	CalDAVSettings CalDAVConfig
}

func (s *StaticConfig) BasePath() string { return s.Path }

func (s *StaticConfig) Backend() string {
	if s.BackendName == "" {
		return BackendLocal
	}
	return s.BackendName
}

func (s *StaticConfig) Granted(scope eventkit.Scope) bool {
	switch scope {
	case eventkit.ScopeReminders:
		return !s.DenyReminders
	default:
		return !s.DenyCalendars
	}
}

func (s *StaticConfig) CalDAV() CalDAVConfig { return s.CalDAVSettings }
