package transcript

import "fmt"

// Format selects one of the three output serializations.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
)

// ErrInvalidFormat is wrapped by every format parsing/rendering
// failure so callers can match it with errors.Is.
var ErrInvalidFormat = fmt.Errorf("invalid output format")

// ParseFormat accepts the menu digits of the interactive prompt
// ("1", "2", "3") as well as the format names used by flags and the
// config file. An unrecognized value is an error, never a default.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "1", "txt", "text":
		return FormatText, nil
	case "2", "json":
		return FormatJSON, nil
	case "3", "srt", "subtitle":
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("%w: %q (use txt, json, or srt)", ErrInvalidFormat, s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSRT:
		return true
	}
	return false
}
