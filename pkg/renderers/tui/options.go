package tui

import "log/slog"

// OutputFormat controls how Render serializes a snapshot.
type OutputFormat string

const (
	// OutputFormatJSON emits the submission payload as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded values.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a format name; empty selects JSON.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch OutputFormat(raw) {
	case "":
		return OutputFormatJSON, nil
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), nil
	default:
		return "", errUnknownFormat(raw)
	}
}

// Theme captures message prefixes applied by the session.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is supplied.
var DefaultTheme = Theme{InfoPrefix: "✔ ", ErrorPrefix: "✘ "}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
