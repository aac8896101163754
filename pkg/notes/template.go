package notes

import (
	"os"
	"regexp"
)

// builtinTemplate is the note body used when no template file is configured.
const builtinTemplate = `# {{title}}

- Date: {{date}}
- Time: {{startTime}} - {{endTime}}
- Calendar: {{calendar}}
- Location: {{location}}

`

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ExpandTemplate substitutes {{name}} placeholders with values from vars,
// verbatim and unescaped. Unknown placeholders are left untouched, and the
// single pass means substituted values are never re-scanned, so expansion is
// deterministic.
func ExpandTemplate(body string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// loadTemplate reads the configured template file, falling back to the
// built-in body when the path is empty or unreadable.
func loadTemplate(path string) string {
	if path == "" {
		return builtinTemplate
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return builtinTemplate
	}
	return string(data)
}
