package workflow

import (
	"fmt"
	"strings"
)

// Script builds the bash run script of a job line by line.
type Script struct {
	lines []string
}

func NewScript() *Script {
	return &Script{}
}

// Line appends a raw line.
func (s *Script) Line(line string) *Script {
	s.lines = append(s.lines, line)
	return s
}

func (s *Script) Linef(format string, args ...any) *Script {
	return s.Line(fmt.Sprintf(format, args...))
}

func (s *Script) Blank() *Script {
	return s.Line("")
}

func (s *Script) Comment(format string, args ...any) *Script {
	return s.Line("# " + fmt.Sprintf(format, args...))
}

// Export exports a variable with a literal value.
func (s *Script) Export(key, value string) *Script {
	return s.Linef("export %s=%s", key, Quote(value))
}

// ExportRaw exports a variable whose value is expanded by the shell. value is
// placed inside double quotes unchanged: `$`, backticks and backslashes in it
// keep their shell meaning, and an unbalanced `"` or a trailing `\` breaks the
// line. Callers escape quotes themselves (see models.TagsToString).
func (s *Script) ExportRaw(key, value string) *Script {
	return s.Linef(`export %s="%s"`, key, value)
}

// Source sources a file if it exists. path is expanded by the shell.
func (s *Script) Source(path string) *Script {
	return s.Linef(`if [ -f "%s" ]; then source "%s"; fi`, path, path)
}

func (s *Script) Len() int {
	return len(s.lines)
}

func (s *Script) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}

// Quote single quotes a value for bash.
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
