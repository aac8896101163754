// Package notes keeps markdown notes linked to calendar events and
// reminders through typed frontmatter. Lookup is a linear scan over the
// vault's markdown files; note counts are small and the cost model stays
// visible.
package notes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/timeutil"
)

// Manager creates and reconciles event-linked notes under a vault root.
type Manager struct {
	Root           string
	DateFormat     string // moment-style tokens, e.g. "YYYY-MM-DD"
	FolderTemplate string // date-token-expandable, empty means vault root
	TemplatePath   string // optional body template file
}

// FindNoteForEvent scans all markdown files for a frontmatter event-id
// match and returns the first hit. At most one note exists per event id;
// CreateOrOpenEventNote enforces that by scanning before it creates.
func (m *Manager) FindNoteForEvent(eventID string) (string, bool) {
	found := ""
	m.walkNotes(func(path string, fm Frontmatter) bool {
		if fm.EventID == eventID {
			found = path
			return false
		}
		return true
	})
	return found, found != ""
}

// LinkedEventIDs collects every event id referenced by a note, for marking
// agenda rows.
func (m *Manager) LinkedEventIDs() map[string]bool {
	ids := make(map[string]bool)
	m.walkNotes(func(path string, fm Frontmatter) bool {
		if fm.EventID != "" {
			ids[fm.EventID] = true
		}
		return true
	})
	return ids
}

// CreateOrOpenEventNote returns the path of the note linked to the event,
// creating it first when none exists. The second return reports whether a
// new note was created.
func (m *Manager) CreateOrOpenEventNote(ev eventkit.Event) (string, bool, error) {
	if existing, ok := m.FindNoteForEvent(ev.ID); ok {
		return existing, false, nil
	}

	rel := m.NotePath(ev)
	abs := filepath.Join(m.Root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", false, fmt.Errorf("notes: ensure folder: %w", err)
	}

	body := ExpandTemplate(loadTemplate(m.TemplatePath), m.templateVars(ev))
	content := m.eventFrontmatter(ev).render() + body
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("notes: create note: %w", err)
	}
	return rel, true, nil
}

// SyncNoteWithEvent refreshes the linked note's frontmatter and renames it
// when the computed path has drifted (for example after the event moved to
// another day). Returns the note's current path and whether a rename
// happened; a missing note is not an error.
func (m *Manager) SyncNoteWithEvent(ev eventkit.Event) (string, bool, error) {
	rel, ok := m.FindNoteForEvent(ev.ID)
	if !ok {
		return "", false, nil
	}
	if err := m.LinkNote(rel, ev); err != nil {
		return rel, false, err
	}
	return m.renameIfNeeded(rel, ev)
}

// LinkNote writes the event linkage into the note at rel.
func (m *Manager) LinkNote(rel string, ev eventkit.Event) error {
	return m.updateFrontmatter(rel, func(fm *Frontmatter) {
		target := m.eventFrontmatter(ev)
		fm.EventID = target.EventID
		fm.EventTitle = target.EventTitle
		fm.Calendar = target.Calendar
		fm.EventDate = target.EventDate
		fm.StartTime = target.StartTime
		fm.EndTime = target.EndTime
		fm.Location = target.Location
	})
}

// UnlinkNote clears the event linkage from the note at rel.
func (m *Manager) UnlinkNote(rel string) error {
	return m.updateFrontmatter(rel, func(fm *Frontmatter) {
		fm.EventID = ""
		fm.EventTitle = ""
		fm.Calendar = ""
		fm.EventDate = ""
		fm.StartTime = ""
		fm.EndTime = ""
		fm.Location = ""
	})
}

// LinkReminder writes reminder linkage into the note at rel.
func (m *Manager) LinkReminder(rel string, r eventkit.Reminder) error {
	return m.updateFrontmatter(rel, func(fm *Frontmatter) {
		fm.ReminderID = r.ID
		fm.ReminderTitle = r.Title
	})
}

// NotePath derives the vault-relative path for an event's note from the
// folder template and the "{date} - {title}" filename convention.
func (m *Manager) NotePath(ev eventkit.Event) string {
	start := ev.Start()
	folder := ""
	if m.FolderTemplate != "" {
		folder = timeutil.ExpandDateTokens(m.FolderTemplate, start)
	}
	prefix := timeutil.ExpandDateTokens(m.dateFormat(), start)
	filename := fmt.Sprintf("%s - %s.md", prefix, SanitizeFilename(ev.Title))
	if folder == "" {
		return filename
	}
	return filepath.Join(folder, filename)
}

// SanitizeFilename replaces path-breaking characters with "-".
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
}

func (m *Manager) dateFormat() string {
	if m.DateFormat == "" {
		return "YYYY-MM-DD"
	}
	return m.DateFormat
}

func (m *Manager) eventFrontmatter(ev eventkit.Event) Frontmatter {
	start := ev.Start()
	fm := Frontmatter{
		EventID:    ev.ID,
		EventTitle: ev.Title,
		Calendar:   ev.CalendarTitle,
		EventDate:  start.Format(timeutil.LayoutDay),
		Location:   ev.Location,
	}
	if !ev.IsAllDay {
		fm.StartTime = timeutil.FormatClock(ev.StartDate)
		fm.EndTime = timeutil.FormatClock(ev.EndDate)
	}
	return fm
}

func (m *Manager) templateVars(ev eventkit.Event) map[string]string {
	start := ev.Start()
	startTime, endTime := "", ""
	if ev.IsAllDay {
		startTime, endTime = "All day", "All day"
	} else {
		startTime = timeutil.FormatClock(ev.StartDate)
		endTime = timeutil.FormatClock(ev.EndDate)
	}
	return map[string]string{
		"title":     ev.Title,
		"date":      start.Format(timeutil.LayoutDay),
		"startTime": startTime,
		"endTime":   endTime,
		"calendar":  ev.CalendarTitle,
		"location":  ev.Location,
	}
}

// renameIfNeeded moves the note when its current path no longer matches the
// computed one, creating target folders on demand.
func (m *Manager) renameIfNeeded(rel string, ev eventkit.Event) (string, bool, error) {
	expected := m.NotePath(ev)
	if filepath.Clean(rel) == filepath.Clean(expected) {
		return rel, false, nil
	}
	absExpected := filepath.Join(m.Root, expected)
	if err := os.MkdirAll(filepath.Dir(absExpected), 0o755); err != nil {
		return rel, false, fmt.Errorf("notes: ensure folder: %w", err)
	}
	if err := os.Rename(filepath.Join(m.Root, rel), absExpected); err != nil {
		return rel, false, fmt.Errorf("notes: rename note: %w", err)
	}
	return expected, true, nil
}

func (m *Manager) updateFrontmatter(rel string, mutate func(*Frontmatter)) error {
	abs := filepath.Join(m.Root, rel)
	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("notes: read note: %w", err)
	}
	block, body, ok := splitFrontmatter(data)
	var fm Frontmatter
	if ok {
		fm, err = parseBlock(block)
		if err != nil {
			return fmt.Errorf("notes: parse frontmatter: %w", err)
		}
	} else {
		body = data
	}
	mutate(&fm)
	return os.WriteFile(abs, []byte(fm.render()+string(body)), 0o644)
}

// walkNotes visits every markdown file under the root in lexical order,
// stopping early when visit returns false.
func (m *Manager) walkNotes(visit func(rel string, fm Frontmatter) bool) {
	root := m.Root
	if root == "" {
		root = "."
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		fm, ok := ReadFrontmatter(path)
		if !ok {
			return nil
		}
		if !visit(rel, fm) {
			return fs.SkipAll
		}
		return nil
	})
}
