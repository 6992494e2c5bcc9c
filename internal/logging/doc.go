// Package logging configures log/slog for sitesearch: JSON records written to
// a size-rotated file under ~/.sitesearch/logs/ and, outside of terminal UI
// and MCP modes, to stderr as well.
package logging
