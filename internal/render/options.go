// Package render turns markdown into styled terminal output.
package render

// Options configures the markdown renderer.
// Options is comparable and doubles as the renderer pool key.
type Options struct {
	// Width is the word-wrap column (default 80)
	Width int

	// Style is a glamour style name ("dark", "light", "notty", ...) or a path to a JSON style
	Style string

	// EnableEmoji converts :emoji: shortcodes
	EnableEmoji bool

	// PreserveNewLines keeps single line breaks, which prompts rely on
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
