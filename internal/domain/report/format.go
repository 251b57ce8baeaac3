// Where: internal/domain/report/format.go
// What: Output format names for rendered project contexts.
// Why: Validate user-supplied format names in one place.
package report

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ErrUnknownFormat is returned for format names outside Formats().
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatText}
}

// ParseFormat normalizes a format name. Empty input selects json and "yml"
// is accepted as an alias.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (want json, yaml, or text)", ErrUnknownFormat, value)
	}
}

// Extension returns the file extension conventionally used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatText:
		return ".txt"
	default:
		return ".json"
	}
}
