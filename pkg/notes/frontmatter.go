package notes

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the typed linkage block at the top of a note. Empty fields
// are absent from the file; presence is checked explicitly rather than
// duck-typed.
type Frontmatter struct {
	EventID       string `yaml:"event-id,omitempty"`
	EventTitle    string `yaml:"event-title,omitempty"`
	Calendar      string `yaml:"calendar,omitempty"`
	EventDate     string `yaml:"event-date,omitempty"`
	StartTime     string `yaml:"start-time,omitempty"`
	EndTime       string `yaml:"end-time,omitempty"`
	Location      string `yaml:"location,omitempty"`
	ReminderID    string `yaml:"reminder-id,omitempty"`
	ReminderTitle string `yaml:"reminder-title,omitempty"`
}

const fmDelimiter = "---"

// ReadFrontmatter parses the leading frontmatter block of the file at path.
// The second return is false when the file has no frontmatter.
func ReadFrontmatter(path string) (Frontmatter, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Frontmatter{}, false
	}
	block, _, ok := splitFrontmatter(data)
	if !ok {
		return Frontmatter{}, false
	}
	fm, err := parseBlock(block)
	if err != nil {
		return Frontmatter{}, false
	}
	return fm, true
}

func parseBlock(block []byte) (Frontmatter, error) {
	var fm Frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return Frontmatter{}, err
	}
	return fm, nil
}

// splitFrontmatter separates a note into its frontmatter block and body.
func splitFrontmatter(data []byte) (block, body []byte, ok bool) {
	content := string(data)
	if !strings.HasPrefix(content, fmDelimiter+"\n") {
		return nil, data, false
	}
	rest := content[len(fmDelimiter)+1:]
	idx := strings.Index(rest, "\n"+fmDelimiter+"\n")
	if idx < 0 {
		// Frontmatter closed at end of file without a trailing body.
		if strings.HasSuffix(rest, "\n"+fmDelimiter) {
			return []byte(rest[:len(rest)-len(fmDelimiter)-1]), nil, true
		}
		return nil, data, false
	}
	return []byte(rest[:idx]), []byte(rest[idx+len(fmDelimiter)+2:]), true
}

// render writes the frontmatter block with every present value quoted and
// double-quote-escaped.
func (fm Frontmatter) render() string {
	var b bytes.Buffer
	b.WriteString(fmDelimiter + "\n")
	writeField(&b, "event-id", fm.EventID)
	writeField(&b, "event-title", fm.EventTitle)
	writeField(&b, "calendar", fm.Calendar)
	writeField(&b, "event-date", fm.EventDate)
	writeField(&b, "start-time", fm.StartTime)
	writeField(&b, "end-time", fm.EndTime)
	writeField(&b, "location", fm.Location)
	writeField(&b, "reminder-id", fm.ReminderID)
	writeField(&b, "reminder-title", fm.ReminderTitle)
	b.WriteString(fmDelimiter + "\n")
	return b.String()
}

func writeField(b *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	fmt.Fprintf(b, "%s: \"%s\"\n", key, escaped)
}
