// Package export writes plots to files: an interactive HTML page, SVG, PNG
// and JSON data. Every writer implements viz.Display.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/nbodyvis/internal/viz"
)

var Formats = []string{"term", "html", "svg", "png", "json"}

// ForFormat returns the display for a format name. The terminal format
// prints width x height cells.
func ForFormat(format string, w io.Writer, width, height int) (viz.Display, error) {
	switch strings.ToLower(format) {
	case "term", "":
		return viz.NewTerminal(w, width, height), nil
	case "html":
		return NewHTML(w), nil
	case "svg":
		return NewSVG(w), nil
	case "png":
		return NewPNG(w), nil
	case "json":
		return NewJSON(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (available: %v)", format, Formats)
}

// FormatFromPath guesses a format from a file extension, falling back to def.
func FormatFromPath(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	case ".svg":
		return "svg"
	case ".png":
		return "png"
	case ".json":
		return "json"
	}
	return def
}
