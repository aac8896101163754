// Package settings persists the client-side configuration: note formatting,
// the default reminder list, per-calendar enable toggles, and the adapter
// binary override.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"tableflip.dev/daybridge/pkg/eventkit"
)

// CalendarToggle is a per-calendar enabled/disabled preference controlling
// agenda filtering.
type CalendarToggle struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Color   string `yaml:"color" json:"color"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Settings is the persisted client configuration, loaded over defaults and
// saved on every change.
type Settings struct {
	DateFormat          string           `yaml:"dateFormat" json:"dateFormat"`
	NoteFolderPath      string           `yaml:"noteFolderPath" json:"noteFolderPath"`
	TemplateFilePath    string           `yaml:"templateFilePath" json:"templateFilePath"`
	DefaultReminderList string           `yaml:"defaultReminderList" json:"defaultReminderList"`
	CalendarToggles     []CalendarToggle `yaml:"calendarToggles" json:"calendarToggles"`
	BridgePath          string           `yaml:"bridgePath" json:"bridgePath"`
	VaultPath           string           `yaml:"vaultPath" json:"vaultPath"`
}

// Defaults returns the baseline settings.
func Defaults() Settings {
	return Settings{
		DateFormat: "YYYY-MM-DD",
	}
}

// DefaultPath is where the settings file lives unless overridden.
func DefaultPath() string {
	path, err := homedir.Expand("~/.daybridge/settings.yaml")
	if err != nil {
		return ".daybridge-settings.yaml"
	}
	return path
}

// Load reads settings from path, merging the file over the defaults. A
// missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if s.DateFormat == "" {
		s.DateFormat = Defaults().DateFormat
	}
	return s, nil
}

// Save writes settings to path atomically, creating parent folders as
// needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: ensure folder: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// EnabledCalendarIDs returns the ids of enabled toggles. An empty result
// means the agenda is unfiltered.
func (s Settings) EnabledCalendarIDs() []string {
	ids := make([]string, 0, len(s.CalendarToggles))
	for _, t := range s.CalendarToggles {
		if t.Enabled {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// MergeToggles folds a freshly fetched calendar list into the existing
// toggles: new calendars default to enabled, existing preferences are
// preserved by id, and calendars that disappeared are dropped.
func MergeToggles(existing []CalendarToggle, calendars []eventkit.Calendar) []CalendarToggle {
	prior := make(map[string]bool, len(existing))
	for _, t := range existing {
		prior[t.ID] = t.Enabled
	}
	merged := make([]CalendarToggle, 0, len(calendars))
	for _, cal := range calendars {
		enabled, seen := prior[cal.ID]
		if !seen {
			enabled = true
		}
		merged = append(merged, CalendarToggle{
			ID:      cal.ID,
			Title:   cal.Title,
			Color:   cal.Color,
			Enabled: enabled,
		})
	}
	return merged
}

// CalendarSource is the slice of the bridge used to refresh toggles.
type CalendarSource interface {
	Calendars(ctx context.Context) ([]eventkit.Calendar, error)
}

// Refresh fetches the calendar list, merges it into the toggles, and saves.
func Refresh(ctx context.Context, src CalendarSource, path string, s *Settings) error {
	calendars, err := src.Calendars(ctx)
	if err != nil {
		return err
	}
	s.CalendarToggles = MergeToggles(s.CalendarToggles, calendars)
	return Save(path, *s)
}
