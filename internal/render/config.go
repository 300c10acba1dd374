package render

import "os"

// EnvStyle overrides the markdown style, as glamour-based tools conventionally do.
const EnvStyle = "GLAMOUR_STYLE"

// OptionsFromEnv returns the default options with the style taken from
// GLAMOUR_STYLE when set, and the given wrap width.
func OptionsFromEnv(width int) Options {
	opts := DefaultOptions().WithWidth(width)
	if style := os.Getenv(EnvStyle); style != "" {
		opts.Style = style
	}
	return opts
}
