package report

import "strings"

// SourceMap maps representative file paths to their source text.  It exists so
// diagnostics can be rendered with their offending source lines without
// re-reading files, and so that injected sources (eg. intercepted standard
// includes) can still be displayed.
type SourceMap struct {
	sources map[string]string
}

// NewSourceMap creates a new empty source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{sources: make(map[string]string)}
}

// Add registers the source text for the given path, replacing any previous
// registration.
func (sm *SourceMap) Add(path, text string) {
	sm.sources[path] = text
}

// Lines returns the lines of the registered source in the inclusive line
// range [start, end].  It returns nil if the path is unknown or the range is
// out of bounds.
func (sm *SourceMap) Lines(path string, start, end int) []string {
	text, ok := sm.sources[path]
	if !ok {
		return nil
	}

	lines := strings.Split(text, "\n")
	if start < 0 || end >= len(lines) || start > end {
		return nil
	}

	return lines[start : end+1]
}
