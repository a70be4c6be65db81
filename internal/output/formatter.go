package output

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// Formatter renders a report to bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]func() Formatter{
	"console":  func() Formatter { return ConsoleFormatter{} },
	"json":     func() Formatter { return JSONFormatter{Pretty: true} },
	"csv":      func() Formatter { return CSVFormatter{} },
	"markdown": func() Formatter { return MarkdownFormatter{} },
	"pretty":   func() Formatter { return PrettyFormatter{} },
}

var formatAliases = map[string]string{
	"text":    "console",
	"table":   "console",
	"md":      "markdown",
	"glamour": "pretty",
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	if factory, ok := formatters[name]; ok {
		return factory()
	}
	return nil
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted format aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted formats a report and writes it to a timestamped file in the current
// directory, returning the filename
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("whatif_%s_%s.%s", report.Kind, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// Extension returns the usual file extension for a formatter
func Extension(f Formatter) string {
	switch f.Name() {
	case "json":
		return "json"
	case "csv":
		return "csv"
	case "markdown":
		return "md"
	default:
		return "txt"
	}
}
